package domain

import (
	"encoding/json"
	"strconv"
)

// Tag labels tasks. Tags are board-scoped and many-to-many with tasks.
type Tag struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// IsPlaceholder reports whether the tag is a client-only fallback tag
// that has no server-side existence yet. Placeholders carry negative ids
// and must be materialized (created on the server) before first use.
func (t Tag) IsPlaceholder() bool { return t.ID < 0 }

// PlaceholderTags returns a fresh copy of the built-in fallback tag set,
// substituted when a board has no tags so the picker is never empty.
func PlaceholderTags() []Tag {
	return []Tag{
		{ID: -1, Name: "Important", Color: "#6366f1"},
		{ID: -2, Name: "Urgent", Color: "#f97316"},
		{ID: -3, Name: "In Progress", Color: "#3b82f6"},
		{ID: -4, Name: "Done", Color: "#22c55e"},
	}
}

// TagRef is a task-tag association record as returned by the API.
// The endpoint historically served two shapes: a bare tag object, or a
// wrapper row holding the nested tag. UnmarshalJSON accepts both; Tag()
// is the single normalizing accessor.
type TagRef struct {
	tag Tag
}

// Tag returns the referenced tag regardless of wire shape.
func (r TagRef) Tag() Tag { return r.tag }

// TagID returns the referenced tag's id.
func (r TagRef) TagID() int { return r.tag.ID }

func (r *TagRef) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		ID    int    `json:"id"`
		Tag   *Tag   `json:"tag"`
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	if wrapped.Tag != nil {
		r.tag = *wrapped.Tag
		return nil
	}
	r.tag = Tag{ID: wrapped.ID, Name: wrapped.Name, Color: wrapped.Color}
	return nil
}

func (r TagRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.tag)
}

// NewTagRef wraps a tag in a TagRef. Used by client-side optimistic updates.
func NewTagRef(t Tag) TagRef { return TagRef{tag: t} }

// ContrastColor picks a readable foreground (dark slate or white) for the
// given #rrggbb background using the 299/587/114 luma weights. Malformed
// input gets the dark default.
func ContrastColor(hex string) string {
	const dark, light = "#1e293b", "#ffffff"
	if len(hex) < 7 || hex[0] != '#' {
		return dark
	}
	r, err1 := strconv.ParseInt(hex[1:3], 16, 32)
	g, err2 := strconv.ParseInt(hex[3:5], 16, 32)
	b, err3 := strconv.ParseInt(hex[5:7], 16, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return dark
	}
	brightness := (r*299 + g*587 + b*114) / 1000
	if brightness > 128 {
		return dark
	}
	return light
}
