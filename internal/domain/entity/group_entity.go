package entity

import (
	"slices"
	"time"
)

// Group collects labeling samples and the reviewers (user ids) assigned to them.
// Samples and Reviewers keep insertion order.
type Group struct {
	ID          string
	Name        string
	Description string
	State       State
	Samples     []string
	Reviewers   []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewGroup returns an active group with empty membership.
func NewGroup(id, name, description string) *Group {
	return &Group{
		ID:          id,
		Name:        name,
		Description: description,
		State:       Active,
		Samples:     []string{},
		Reviewers:   []string{},
	}
}

func (g *Group) Deactivate() error { return deactivate(&g.State) }

// AddReviewer appends userID unless it is already a reviewer. It reports whether the list changed.
func (g *Group) AddReviewer(userID string) bool {
	if slices.Contains(g.Reviewers, userID) {
		return false
	}
	g.Reviewers = append(g.Reviewers, userID)
	return true
}

func (g *Group) RemoveReviewer(userID string) bool {
	i := slices.Index(g.Reviewers, userID)
	if i < 0 {
		return false
	}
	g.Reviewers = slices.Delete(g.Reviewers, i, i+1)
	return true
}

func (g *Group) AddSample(sampleID string) bool {
	if slices.Contains(g.Samples, sampleID) {
		return false
	}
	g.Samples = append(g.Samples, sampleID)
	return true
}

func (g *Group) RemoveSample(sampleID string) bool {
	i := slices.Index(g.Samples, sampleID)
	if i < 0 {
		return false
	}
	g.Samples = slices.Delete(g.Samples, i, i+1)
	return true
}

// HasReviewer reports whether userID is a member of the group.
func (g *Group) HasReviewer(userID string) bool {
	return slices.Contains(g.Reviewers, userID)
}
