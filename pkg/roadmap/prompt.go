package roadmap

import (
	"fmt"
	"strings"
)

const promptTemplate = `You are an expert roadmap generator dedicated to helping users learn new skills.
Return ONLY valid JSON (no explanations, no markdown).

Format must be:
{
  "introduction": "short intro",
  "steps": [
    {
      "title": "Step title",
      "description": "Explain what to do in this step",
      "resources": [
        { "type": "course", "title": "Course Name", "url": "https://..." },
        { "type": "article", "title": "Article Name", "url": "https://..." }
      ]
    }
  ],
  "projects": ["Project idea 1", "Project idea 2"],
  "tips": ["Tip 1", "Tip 2"]
}

Skill: %s
Proficiency: %s
`

// BuildPrompt returns the instruction text for a skill and proficiency level.
// Deterministic: the same inputs always produce the same prompt, and a
// missing proficiency is spelled out rather than omitted.
func BuildPrompt(title, proficiency string) string {
	if strings.TrimSpace(proficiency) == "" {
		proficiency = "not specified"
	}
	return fmt.Sprintf(promptTemplate, title, proficiency)
}
