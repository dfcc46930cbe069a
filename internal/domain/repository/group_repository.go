package repository

import (
	"context"

	"github.com/oksasatya/data-labeling-backend/internal/domain/entity"
)

// GroupRepository defines persistence for groups and their membership lists.
type GroupRepository interface {
	Create(ctx context.Context, g *entity.Group) error
	// FindByID ignores the lifecycle state.
	FindByID(ctx context.Context, id string) (*entity.Group, error)
	// FindActiveByID returns ErrNotFound for inactive groups.
	FindActiveByID(ctx context.Context, id string) (*entity.Group, error)
	FindAll(ctx context.Context) ([]*entity.Group, error)
	// FindByUserID returns every group whose reviewers include userID.
	FindByUserID(ctx context.Context, userID string) ([]*entity.Group, error)
	// Save persists fields and membership and refreshes UpdatedAt.
	Save(ctx context.Context, g *entity.Group) error
}
