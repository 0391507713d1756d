package ai

import "strings"

// Candidate locations of the generated text inside a decoded provider
// response, in the order the shapes have been seen across provider versions.
// String segments are object keys, int segments are array indices.
var textPaths = [][]any{
	{"candidates", 0, "content", "parts", 0, "text"},
	{"candidates", 0, "content", "text"},
	{"candidates", 0, "message", "content", 0, "text"},
	{"outputText"},
	{"outputs", 0, "content", 0, "text"},
	{"responses", 0, "output", 0, "content", "text"},
	{"generated_text"},
}

// ExtractText locates the generated text inside an arbitrarily shaped
// response. Each candidate path is probed in order and the first non-empty
// string wins; a malformed intermediate shape never aborts the search. If no
// path matches, a string payload is returned as-is, then the raw body, then
// the empty string meaning "nothing generated". ExtractText never fails.
func ExtractText(payload any, rawBody string) string {
	for _, path := range textPaths {
		if text, ok := dig(payload, path...); ok && strings.TrimSpace(text) != "" {
			return text
		}
	}
	if s, ok := payload.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	if strings.TrimSpace(rawBody) != "" {
		return rawBody
	}
	return ""
}

// dig walks a decoded JSON tree by object keys and array indices, returning
// the string at the end of the path if every segment resolves.
func dig(v any, path ...any) (string, bool) {
	for _, seg := range path {
		switch key := seg.(type) {
		case string:
			obj, ok := v.(map[string]any)
			if !ok {
				return "", false
			}
			if v, ok = obj[key]; !ok {
				return "", false
			}
		case int:
			arr, ok := v.([]any)
			if !ok || key < 0 || key >= len(arr) {
				return "", false
			}
			v = arr[key]
		default:
			return "", false
		}
	}
	s, ok := v.(string)
	return s, ok
}
