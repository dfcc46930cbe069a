package application

import (
	"context"
	"fmt"

	repo "github.com/oksasatya/data-labeling-backend/internal/domain/repository"
)

// TemplateService exposes the read-only template catalog.
type TemplateService struct {
	Templates repo.TemplateRepository
}

func NewTemplateService(templates repo.TemplateRepository) *TemplateService {
	return &TemplateService{Templates: templates}
}

func (s *TemplateService) GetTemplateByID(ctx context.Context, id string) (*TemplateResponse, error) {
	t, err := s.Templates.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrTemplateNotFound, "find template")
	}
	res := toTemplateResponse(t)
	return &res, nil
}

func (s *TemplateService) GetAllTemplates(ctx context.Context) ([]TemplateResponse, error) {
	templates, err := s.Templates.FindAllOrderByTemplateNo(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	out := make([]TemplateResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, toTemplateResponse(t))
	}
	return out, nil
}
