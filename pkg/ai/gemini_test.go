package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*GeminiClient, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	client, err := NewGeminiClient("test-key", "gemini-1.5-flash")
	if err != nil {
		t.Fatalf("new gemini client: %v", err)
	}
	client.baseURL = srv.URL
	return client, srv.Close
}

func TestGenerateTextExtractsReply(t *testing.T) {
	client, closeSrv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"generated plan"}]}}]}`))
	})
	defer closeSrv()

	reply, err := client.GenerateText(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("generate text: %v", err)
	}
	if reply.Text != "generated plan" {
		t.Fatalf("text = %q, want %q", reply.Text, "generated plan")
	}
	if reply.RawBody == "" {
		t.Fatalf("raw body should be captured")
	}
}

func TestGenerateTextUnknownShapeFallsBackToBody(t *testing.T) {
	body := `{"totally":"new shape"}`
	client, closeSrv := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body))
	})
	defer closeSrv()

	reply, err := client.GenerateText(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("generate text: %v", err)
	}
	if reply.Text != body {
		t.Fatalf("text = %q, want raw body fallback", reply.Text)
	}
}

func TestGenerateTextUpstreamError(t *testing.T) {
	client, closeSrv := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})
	defer closeSrv()

	if _, err := client.GenerateText(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error on non-success status")
	}
}

func TestNewGeminiClientValidation(t *testing.T) {
	if _, err := NewGeminiClient("", "gemini-1.5-flash"); err == nil {
		t.Fatalf("expected error for empty api key")
	}
	if _, err := NewGeminiClient("key", "  "); err == nil {
		t.Fatalf("expected error for empty model")
	}
}
