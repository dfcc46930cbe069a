package repository

import (
	"context"

	"github.com/oksasatya/data-labeling-backend/internal/domain/entity"
)

type LabelRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Label, error)
	FindByName(ctx context.Context, name string) (*entity.Label, error)
	FindAll(ctx context.Context) ([]*entity.Label, error)
	// SaveAll inserts new labels, filling CreatedAt and UpdatedAt.
	SaveAll(ctx context.Context, labels []*entity.Label) error
	Save(ctx context.Context, l *entity.Label) error
}
