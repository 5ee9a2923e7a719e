package model

import (
	"encoding/json"
	"strings"
	"time"

	"creatorvault/pkg/httperr"
)

// Stage labels where an idea sits in the content pipeline. Transitions are
// not guarded; any stage may be set from any other.
type Stage string

const (
	StageIdea      Stage = "idea"
	StageOutline   Stage = "outline"
	StageDraft     Stage = "draft"
	StagePublished Stage = "published"
)

func (s Stage) Valid() bool {
	switch s {
	case StageIdea, StageOutline, StageDraft, StagePublished:
		return true
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

const (
	MaxTitleLen = 200
	MaxNotesLen = 5000
)

// Idea is the persistence record. Validation and normalization live in the
// pure functions below so the record itself stays a plain data struct.
type Idea struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	Notes     *string    `json:"notes"`
	Stage     Stage      `json:"stage"`
	Priority  Priority   `json:"priority"`
	Tags      []string   `json:"tags"`
	DueDate   *time.Time `json:"due_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IdeaPage is one slice of a larger result set.
type IdeaPage struct {
	Items   []Idea `json:"items"`
	Total   int    `json:"total"`
	Limit   int    `json:"limit"`
	Offset  int    `json:"offset"`
	HasMore bool   `json:"has_more"`
}

// CreateIdeaRequest is the body for POST and PUT. Omitted optional fields
// get their defaults as if creating fresh.
type CreateIdeaRequest struct {
	Title    string     `json:"title"`
	Notes    *string    `json:"notes"`
	Stage    Stage      `json:"stage"`
	Priority Priority   `json:"priority"`
	Tags     []string   `json:"tags"`
	DueDate  *time.Time `json:"due_date"`
}

// UpdateIdeaRequest is the PATCH body. Fields absent from the JSON are left
// untouched; an explicit null clears notes, due_date or tags. Which keys were
// present is recorded during unmarshalling so absent and null stay distinct.
type UpdateIdeaRequest struct {
	Title    *string    `json:"title"`
	Notes    *string    `json:"notes"`
	Stage    *Stage     `json:"stage"`
	Priority *Priority  `json:"priority"`
	Tags     *[]string  `json:"tags"`
	DueDate  *time.Time `json:"due_date"`

	present map[string]bool
}

func (r *UpdateIdeaRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateIdeaRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = UpdateIdeaRequest(p)
	r.present = make(map[string]bool, len(raw))
	for k := range raw {
		r.present[k] = true
	}
	return nil
}

// Has reports whether the field key appeared in the request body.
func (r *UpdateIdeaRequest) Has(field string) bool {
	return r.present[field]
}

// SetPresent marks fields as supplied. Tests use it to build patches without
// going through JSON.
func (r *UpdateIdeaRequest) SetPresent(fields ...string) {
	if r.present == nil {
		r.present = make(map[string]bool, len(fields))
	}
	for _, f := range fields {
		r.present[f] = true
	}
}

// Validate checks the patch shape before anything touches the store.
// Required fields cannot be null and enums must be known values; notes and
// due_date accept null to clear, tags accept null to reset.
func (r *UpdateIdeaRequest) Validate() error {
	if r.Has("title") {
		if r.Title == nil {
			return httperr.Validation("title cannot be null")
		}
		if _, err := NormalizeTitle(*r.Title); err != nil {
			return err
		}
	}
	if r.Has("notes") {
		if err := ValidateNotes(r.Notes); err != nil {
			return err
		}
	}
	if r.Has("stage") && (r.Stage == nil || !r.Stage.Valid()) {
		return httperr.Validation("stage must be one of idea, outline, draft, published")
	}
	if r.Has("priority") && (r.Priority == nil || !r.Priority.Valid()) {
		return httperr.Validation("priority must be one of high, medium, low")
	}
	return nil
}

// NormalizeTitle trims and validates a title.
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", httperr.Validation("title cannot be empty or whitespace only")
	}
	if len(title) > MaxTitleLen {
		return "", httperr.Validation("title cannot exceed 200 characters")
	}
	return title, nil
}

// ValidateNotes enforces the notes length cap. Nil notes are valid.
func ValidateNotes(notes *string) error {
	if notes != nil && len(*notes) > MaxNotesLen {
		return httperr.Validation("notes cannot exceed 5000 characters")
	}
	return nil
}

// NormalizeTags trims each tag and drops empties, preserving order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// TagsToString converts tags to the comma-separated storage form.
func TagsToString(tags []string) string {
	return strings.Join(NormalizeTags(tags), ",")
}

// TagsFromString converts the storage form back to a tag list. An empty
// column yields an empty list, never nil, so responses render [].
func TagsFromString(s string) []string {
	if s == "" {
		return []string{}
	}
	return NormalizeTags(strings.Split(s, ","))
}
