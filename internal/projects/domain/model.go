package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// TemplateRef records which template seeded a project.
type TemplateRef struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// Project is a single stored project document. Timestamps are RFC-3339
// strings rather than time.Time so documents round-trip exactly and
// createdAt ordering stays a plain lexical comparison.
type Project struct {
	ID          string          `json:"id"`
	Template    TemplateRef     `json:"template"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Submitted   bool            `json:"submitted"`
	Published   bool            `json:"published"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
	Categories  json.RawMessage `json:"categories"`
}

// Template is a read-only seed document for new projects. Its categories
// are opaque to this service and copied into projects verbatim.
type Template struct {
	Title       string
	Description string
	Categories  json.RawMessage
}

// Patch carries the mutable project fields. Nil pointers mean "leave as is".
type Patch struct {
	Title       *string
	Description *string
	Submitted   *bool
	Published   *bool
}

// PatchFromMap extracts the mutable fields from a loose JSON object.
// Fields that are absent or of the wrong type are ignored rather than
// rejected. A title must be non-blank to count and is stored trimmed.
func PatchFromMap(input map[string]any) Patch {
	var p Patch
	if t, ok := input["title"].(string); ok && strings.TrimSpace(t) != "" {
		trimmed := strings.TrimSpace(t)
		p.Title = &trimmed
	}
	if d, ok := input["description"].(string); ok {
		p.Description = &d
	}
	if s, ok := input["submitted"].(bool); ok {
		p.Submitted = &s
	}
	if pub, ok := input["published"].(bool); ok {
		p.Published = &pub
	}
	return p
}

// Apply merges the patch into the project. It does not touch UpdatedAt;
// the store owns timestamp refreshes.
func (proj *Project) Apply(p Patch) {
	if p.Title != nil {
		proj.Title = *p.Title
	}
	if p.Description != nil {
		proj.Description = *p.Description
	}
	if p.Submitted != nil {
		proj.Submitted = *p.Submitted
	}
	if p.Published != nil {
		proj.Published = *p.Published
	}
}

// Now returns the current UTC time as an RFC-3339 string.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
