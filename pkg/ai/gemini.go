package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Upstream bodies are captured whole for extraction fallback; cap the read so
// a misbehaving provider cannot exhaust memory.
const maxResponseBytes = 4 << 20

// GeminiClient calls the Google AI Studio (Gemini) API. The response shape is
// treated as unreliable: the body is captured verbatim and the generated text
// is located by ExtractText rather than a fixed decode.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiClient constructs a client for the given API key and model.
// Timeouts are driven by the caller's context.
func NewGeminiClient(apiKey, model string) (*GeminiClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key required")
	}
	model = normalizeModel(model)
	if model == "" {
		return nil, fmt.Errorf("gemini model required")
	}
	return &GeminiClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultGeminiBaseURL,
		httpClient: &http.Client{},
	}, nil
}

// GenerateText sends the prompt and returns the extracted reply text along
// with the raw response body. A transport failure or non-success status is an
// error; an unexpectedly shaped success body is not, it just yields whatever
// ExtractText can recover.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (Reply, error) {
	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return Reply{}, err
	}
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Reply{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()
	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Reply{}, fmt.Errorf("read gemini response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return Reply{}, fmt.Errorf("gemini api error: status %d: %s", resp.StatusCode, truncate(string(rawBody), 1000))
	}

	var payload any
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		payload = string(rawBody)
	}
	return Reply{
		Text:    ExtractText(payload, string(rawBody)),
		RawBody: string(rawBody),
	}, nil
}

func normalizeModel(model string) string {
	model = strings.TrimSpace(model)
	return strings.TrimPrefix(model, "models/")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}
