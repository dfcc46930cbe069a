package entity

import (
	"strings"
	"time"
)

// Label is a canonical annotation tag. Name is always stored normalized.
type Label struct {
	ID        string
	Name      string
	State     State
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeLabelName trims surrounding whitespace, replaces every space with an
// underscore and lowercases the result. "Hello World" and "hello_world" share a key.
func NormalizeLabelName(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
}

func NewLabel(id, name string) *Label {
	return &Label{ID: id, Name: NormalizeLabelName(name), State: Active}
}

// Rename overwrites the name with the normalized form of name, even when that is empty.
func (l *Label) Rename(name string) {
	l.Name = NormalizeLabelName(name)
}
