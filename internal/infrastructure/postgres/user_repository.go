package postgres

import (
	"context"
	"fmt"

	"github.com/oksasatya/data-labeling-backend/internal/domain/entity"
	"github.com/oksasatya/data-labeling-backend/internal/domain/repository"
)

type UserRepository struct {
	db   DBTX
	lock bool
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row rowScanner) (*entity.User, error) {
	u := &entity.User{}
	var (
		role   string
		active bool
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &active,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	if !u.Role.Valid() {
		return nil, fmt.Errorf("user %s: unknown role %q", u.ID, role)
	}
	u.State = entity.StateFromActive(active)
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (id, username, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, u.ID, u.Username, u.PasswordHash, string(u.Role), u.State.IsActive())
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindActiveByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, username, password_hash, role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1 AND is_active = TRUE`+forUpdate(r.lock, "FOR UPDATE"), id)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (r *UserRepository) FindAllActive(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, username, password_hash, role, is_active, created_at, updated_at
		FROM users
		WHERE is_active = TRUE
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Save writes username, password hash and state. The role column is never updated.
func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET username = $2, password_hash = $3, is_active = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, u.ID, u.Username, u.PasswordHash, u.State.IsActive())
	if err := row.Scan(&u.UpdatedAt); err != nil {
		return notFound(err)
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
