package entity

import "time"

// Template is a read-only catalog entry ordered by TemplateNo.
type Template struct {
	ID         string
	TemplateNo int
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
