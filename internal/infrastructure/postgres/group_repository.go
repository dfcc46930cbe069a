package postgres

import (
	"context"
	"fmt"

	"github.com/oksasatya/data-labeling-backend/internal/domain/entity"
	"github.com/oksasatya/data-labeling-backend/internal/domain/repository"
)

const groupColumns = `
	g.id, g.name, g.description, g.is_active, g.created_at, g.updated_at,
	COALESCE((SELECT array_agg(s.sample_id ORDER BY s.position) FROM group_samples s WHERE s.group_id = g.id), '{}'::text[]),
	COALESCE((SELECT array_agg(r.user_id ORDER BY r.position) FROM group_reviewers r WHERE r.group_id = g.id), '{}'::text[])`

type GroupRepository struct {
	db   DBTX
	lock bool
}

func NewGroupRepository(db DBTX) *GroupRepository {
	return &GroupRepository{db: db}
}

func scanGroup(row rowScanner) (*entity.Group, error) {
	g := &entity.Group{}
	var active bool
	if err := row.Scan(&g.ID, &g.Name, &g.Description, &active, &g.CreatedAt, &g.UpdatedAt,
		&g.Samples, &g.Reviewers); err != nil {
		return nil, err
	}
	g.State = entity.StateFromActive(active)
	if g.Samples == nil {
		g.Samples = []string{}
	}
	if g.Reviewers == nil {
		g.Reviewers = []string{}
	}
	return g, nil
}

func (r *GroupRepository) Create(ctx context.Context, g *entity.Group) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO groups (id, name, description, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, g.ID, g.Name, g.Description, g.State.IsActive())
	if err := row.Scan(&g.CreatedAt, &g.UpdatedAt); err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	return r.writeMembers(ctx, g)
}

func (r *GroupRepository) FindByID(ctx context.Context, id string) (*entity.Group, error) {
	row := r.db.QueryRow(ctx, `SELECT `+groupColumns+`
		FROM groups g
		WHERE g.id = $1`+forUpdate(r.lock, "FOR UPDATE OF g"), id)
	g, err := scanGroup(row)
	if err != nil {
		return nil, notFound(err)
	}
	return g, nil
}

func (r *GroupRepository) FindActiveByID(ctx context.Context, id string) (*entity.Group, error) {
	row := r.db.QueryRow(ctx, `SELECT `+groupColumns+`
		FROM groups g
		WHERE g.id = $1 AND g.is_active = TRUE`+forUpdate(r.lock, "FOR UPDATE OF g"), id)
	g, err := scanGroup(row)
	if err != nil {
		return nil, notFound(err)
	}
	return g, nil
}

func (r *GroupRepository) FindAll(ctx context.Context) ([]*entity.Group, error) {
	return r.list(ctx, `SELECT `+groupColumns+`
		FROM groups g
		ORDER BY g.created_at, g.id`)
}

func (r *GroupRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Group, error) {
	return r.list(ctx, `SELECT `+groupColumns+`
		FROM groups g
		WHERE EXISTS (SELECT 1 FROM group_reviewers m WHERE m.group_id = g.id AND m.user_id = $1)
		ORDER BY g.created_at, g.id`, userID)
}

func (r *GroupRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Group, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	groups := make([]*entity.Group, 0)
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *GroupRepository) Save(ctx context.Context, g *entity.Group) error {
	row := r.db.QueryRow(ctx, `
		UPDATE groups
		SET name = $2, description = $3, is_active = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, g.ID, g.Name, g.Description, g.State.IsActive())
	if err := row.Scan(&g.UpdatedAt); err != nil {
		return notFound(err)
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM group_samples WHERE group_id = $1`, g.ID); err != nil {
		return fmt.Errorf("clear group samples: %w", err)
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM group_reviewers WHERE group_id = $1`, g.ID); err != nil {
		return fmt.Errorf("clear group reviewers: %w", err)
	}
	return r.writeMembers(ctx, g)
}

// writeMembers inserts samples and reviewers keeping their slice order in position.
func (r *GroupRepository) writeMembers(ctx context.Context, g *entity.Group) error {
	if len(g.Samples) > 0 {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO group_samples (group_id, sample_id, position)
			SELECT $1, t.sample_id, t.position
			FROM unnest($2::text[]) WITH ORDINALITY AS t(sample_id, position)
		`, g.ID, g.Samples); err != nil {
			return fmt.Errorf("insert group samples: %w", err)
		}
	}
	if len(g.Reviewers) > 0 {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO group_reviewers (group_id, user_id, position)
			SELECT $1, t.user_id, t.position
			FROM unnest($2::text[]) WITH ORDINALITY AS t(user_id, position)
		`, g.ID, g.Reviewers); err != nil {
			return fmt.Errorf("insert group reviewers: %w", err)
		}
	}
	return nil
}

var _ repository.GroupRepository = (*GroupRepository)(nil)
