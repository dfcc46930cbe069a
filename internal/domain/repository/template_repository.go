package repository

import (
	"context"

	"github.com/oksasatya/data-labeling-backend/internal/domain/entity"
)

type TemplateRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Template, error)
	// FindAllOrderByTemplateNo returns templates sorted by TemplateNo ascending.
	FindAllOrderByTemplateNo(ctx context.Context) ([]*entity.Template, error)
}
