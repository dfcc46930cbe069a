package application

import (
	"time"

	"github.com/oksasatya/data-labeling-backend/internal/domain/entity"
)

// GroupResponse is the summary view of a group; membership is omitted.
type GroupResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type GroupDetailResponse struct {
	GroupResponse
	Samples   []string `json:"samples"`
	Reviewers []string `json:"reviewers"`
}

type LabelResponse struct {
	LabelID   string `json:"labelId"`
	LabelName string `json:"labelName"`
}

type TemplateResponse struct {
	ID         string `json:"id"`
	TemplateNo int    `json:"templateNo"`
	Template   string `json:"template"`
}

// UserResponse never carries the password hash. GroupIDs is filled per response.
type UserResponse struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Role      entity.Role `json:"role"`
	GroupIDs  []string    `json:"groupIds"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func toGroupResponse(g *entity.Group) GroupResponse {
	return GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func toGroupDetailResponse(g *entity.Group) *GroupDetailResponse {
	samples := append([]string{}, g.Samples...)
	reviewers := append([]string{}, g.Reviewers...)
	return &GroupDetailResponse{
		GroupResponse: toGroupResponse(g),
		Samples:       samples,
		Reviewers:     reviewers,
	}
}

func toLabelResponse(l *entity.Label) LabelResponse {
	return LabelResponse{LabelID: l.ID, LabelName: l.Name}
}

func toTemplateResponse(t *entity.Template) TemplateResponse {
	return TemplateResponse{ID: t.ID, TemplateNo: t.TemplateNo, Template: t.Content}
}
