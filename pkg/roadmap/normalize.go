package roadmap

import (
	"encoding/json"
	"regexp"
	"strings"

	"skilltrail/pkg/domain"
)

// Title given to steps the generator emitted without one.
const defaultStepTitle = "Untitled step"

var fenceRE = regexp.MustCompile("```(?:json)?\\s*\\n([\\s\\S]*?)```")

// Normalize converts a generator reply into the canonical roadmap document.
// It is a total function: text that cannot be parsed as a JSON object is
// preserved in the raw variant so the reply stays inspectable instead of
// being discarded.
func Normalize(text string) domain.Content {
	obj, ok := parseObject(stripFences(text))
	if !ok {
		return domain.Content{RawText: text}
	}
	return coerce(obj)
}

// stripFences unwraps a markdown code fence the model may have added despite
// being told not to.
func stripFences(text string) string {
	if m := fenceRE.FindStringSubmatch(text); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}

// parseObject tries the substring between the first "{" and the last "}",
// then the whole text.
func parseObject(text string) (map[string]any, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		if obj := tryUnmarshal(text[start : end+1]); obj != nil {
			return obj, true
		}
	}
	if obj := tryUnmarshal(text); obj != nil {
		return obj, true
	}
	return nil, false
}

func tryUnmarshal(s string) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil
	}
	return obj
}

// coerce maps a loosely typed parsed object onto the fixed content shape.
// Unknown fields are dropped, missing fields get safe defaults.
func coerce(obj map[string]any) domain.Content {
	content := domain.Content{
		Introduction: stringField(obj, "introduction"),
		Projects:     stringSlice(obj["projects"]),
		Tips:         stringSlice(obj["tips"]),
	}
	rawSteps, _ := obj["steps"].([]any)
	content.Steps = make([]domain.Step, 0, len(rawSteps))
	for _, raw := range rawSteps {
		content.Steps = append(content.Steps, coerceStep(raw))
	}
	return content
}

func coerceStep(raw any) domain.Step {
	// Completed stays false no matter what the source claims; only the
	// toggle operation may set it.
	step := domain.Step{Title: defaultStepTitle, Resources: []domain.Resource{}}
	fields, ok := raw.(map[string]any)
	if !ok {
		return step
	}
	if title := stringField(fields, "title"); title != "" {
		step.Title = title
	}
	step.Description = stringField(fields, "description")
	if resources, ok := fields["resources"].([]any); ok {
		for _, r := range resources {
			entry, ok := r.(map[string]any)
			if !ok {
				continue
			}
			step.Resources = append(step.Resources, domain.Resource{
				Type:  stringField(entry, "type"),
				Title: stringField(entry, "title"),
				URL:   stringField(entry, "url"),
			})
		}
	}
	return step
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
