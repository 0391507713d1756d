package roadmap

import (
	"strings"
	"testing"
)

func TestBuildPromptEmbedsInputs(t *testing.T) {
	prompt := BuildPrompt("Rust", "beginner")
	if !strings.Contains(prompt, "Skill: Rust") {
		t.Fatalf("prompt missing skill title:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Proficiency: beginner") {
		t.Fatalf("prompt missing proficiency:\n%s", prompt)
	}
	if !strings.Contains(prompt, "ONLY valid JSON") {
		t.Fatalf("prompt missing JSON-only instruction:\n%s", prompt)
	}
	for _, field := range []string{"introduction", "steps", "resources", "projects", "tips"} {
		if !strings.Contains(prompt, field) {
			t.Fatalf("prompt schema missing %q field:\n%s", field, prompt)
		}
	}
}

func TestBuildPromptDefaultsProficiency(t *testing.T) {
	prompt := BuildPrompt("Rust", "")
	if !strings.Contains(prompt, "Proficiency: not specified") {
		t.Fatalf("blank proficiency should read %q:\n%s", "not specified", prompt)
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	if BuildPrompt("Go", "expert") != BuildPrompt("Go", "expert") {
		t.Fatalf("prompt is not deterministic")
	}
}
