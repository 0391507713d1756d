package domain

import "time"

// Resource is one learning reference attached to a step.
type Resource struct {
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Step is one ordered unit of a roadmap plan. Order is significant: it fixes
// both display order and the index used by the step toggle.
type Step struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Resources   []Resource `json:"resources"`
	Completed   bool       `json:"completed"`
}

// Content is the normalized roadmap document. It has two variants: the
// structured form (introduction, steps, projects, tips) produced when the
// generator reply parses, and the raw form that preserves an unparseable
// reply verbatim in RawText. IsRaw distinguishes them.
type Content struct {
	Introduction string   `json:"introduction,omitempty"`
	Steps        []Step   `json:"steps,omitempty"`
	Projects     []string `json:"projects,omitempty"`
	Tips         []string `json:"tips,omitempty"`
	RawText      string   `json:"rawText,omitempty"`
}

// IsRaw reports whether the content is the unparsed fallback variant.
func (c Content) IsRaw() bool {
	return c.RawText != ""
}

// Roadmap is the persisted learning plan for one owner and one skill.
// Progress is always derived from Content.Steps, never set independently.
type Roadmap struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	Content   Content   `json:"content"`
	Progress  int       `json:"progress"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
