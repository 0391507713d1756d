package ai

import "context"

// Reply carries the text extracted from a provider response together with
// the verbatim body it came from, so callers can fall back to the raw reply
// when nothing usable was extracted.
type Reply struct {
	Text    string
	RawBody string
}

// TextGenerator produces free-form text for an instruction prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (Reply, error)
}
