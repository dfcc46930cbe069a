package repository

import (
	"context"

	"github.com/oksasatya/data-labeling-backend/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	FindActiveByID(ctx context.Context, id string) (*entity.User, error)
	FindAllActive(ctx context.Context) ([]*entity.User, error)
	Save(ctx context.Context, u *entity.User) error
}
