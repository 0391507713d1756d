package roadmap

import "testing"

func TestNormalizeFencedJSON(t *testing.T) {
	text := "Here is your plan:\n```json\n{\"steps\":[{\"title\":\"Learn basics\"}]}\n```"
	content := Normalize(text)
	if content.IsRaw() {
		t.Fatalf("expected structured content, got raw variant")
	}
	if len(content.Steps) != 1 {
		t.Fatalf("steps = %d, want 1", len(content.Steps))
	}
	if content.Steps[0].Title != "Learn basics" {
		t.Fatalf("step title = %q, want %q", content.Steps[0].Title, "Learn basics")
	}
	if content.Steps[0].Completed {
		t.Fatalf("step completed = true, want false")
	}
}

func TestNormalizeSurroundingProse(t *testing.T) {
	text := "Sure! {\"introduction\":\"intro\",\"steps\":[{\"title\":\"A\"},{\"title\":\"B\"}]} hope that helps"
	content := Normalize(text)
	if content.Introduction != "intro" {
		t.Fatalf("introduction = %q, want %q", content.Introduction, "intro")
	}
	if len(content.Steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(content.Steps))
	}
}

func TestNormalizeForcesCompletedFalse(t *testing.T) {
	text := `{"steps":[{"title":"Done already","completed":true},{"title":"Other","completed":"yes"}]}`
	content := Normalize(text)
	for i, step := range content.Steps {
		if step.Completed {
			t.Fatalf("step %d completed = true, want false regardless of source", i)
		}
	}
}

func TestNormalizeStepDefaults(t *testing.T) {
	text := `{"steps":[{},{"title":"","description":"d","resources":"not-an-array"},"not-an-object"]}`
	content := Normalize(text)
	if len(content.Steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(content.Steps))
	}
	for i, step := range content.Steps {
		if step.Title != "Untitled step" {
			t.Fatalf("step %d title = %q, want placeholder", i, step.Title)
		}
		if step.Resources == nil || len(step.Resources) != 0 {
			t.Fatalf("step %d resources = %v, want empty slice", i, step.Resources)
		}
	}
	if content.Steps[1].Description != "d" {
		t.Fatalf("step 1 description = %q, want %q", content.Steps[1].Description, "d")
	}
}

func TestNormalizeResources(t *testing.T) {
	text := `{"steps":[{"title":"S","resources":[{"type":"course","title":"Go 101","url":"https://example.com"},42]}]}`
	content := Normalize(text)
	resources := content.Steps[0].Resources
	if len(resources) != 1 {
		t.Fatalf("resources = %d, want 1", len(resources))
	}
	if resources[0].Type != "course" || resources[0].Title != "Go 101" || resources[0].URL != "https://example.com" {
		t.Fatalf("resource = %+v", resources[0])
	}
}

func TestNormalizeProjectsAndTips(t *testing.T) {
	text := `{"projects":["p1",7,"p2"],"tips":"not-an-array","extra":"dropped"}`
	content := Normalize(text)
	if len(content.Projects) != 2 || content.Projects[0] != "p1" || content.Projects[1] != "p2" {
		t.Fatalf("projects = %v, want [p1 p2]", content.Projects)
	}
	if len(content.Tips) != 0 {
		t.Fatalf("tips = %v, want empty", content.Tips)
	}
	if len(content.Steps) != 0 {
		t.Fatalf("steps = %d, want 0", len(content.Steps))
	}
}

func TestNormalizeUnparseableFallsBackToRaw(t *testing.T) {
	text := "Sorry, I cannot help."
	content := Normalize(text)
	if !content.IsRaw() {
		t.Fatalf("expected raw variant for unparseable text")
	}
	if content.RawText != text {
		t.Fatalf("rawText = %q, want original text unmodified", content.RawText)
	}
	if len(content.Steps) != 0 {
		t.Fatalf("raw variant should carry no steps, got %d", len(content.Steps))
	}
}

func TestNormalizeBrokenJSONObjectFallsBackToRaw(t *testing.T) {
	text := `{"steps": [unterminated`
	content := Normalize(text)
	if !content.IsRaw() || content.RawText != text {
		t.Fatalf("expected raw variant preserving %q, got %+v", text, content)
	}
}

func TestNormalizeNonObjectJSONFallsBackToRaw(t *testing.T) {
	// A bare array or scalar has no place in the content shape.
	content := Normalize(`["a","b"]`)
	if !content.IsRaw() {
		t.Fatalf("expected raw variant for non-object JSON")
	}
}
