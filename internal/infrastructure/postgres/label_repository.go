package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/oksasatya/data-labeling-backend/internal/domain/entity"
	"github.com/oksasatya/data-labeling-backend/internal/domain/repository"
)

type LabelRepository struct {
	db   DBTX
	lock bool
}

func NewLabelRepository(db DBTX) *LabelRepository {
	return &LabelRepository{db: db}
}

func scanLabel(row rowScanner) (*entity.Label, error) {
	l := &entity.Label{}
	var active bool
	if err := row.Scan(&l.ID, &l.Name, &active, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.State = entity.StateFromActive(active)
	return l, nil
}

func (r *LabelRepository) FindByID(ctx context.Context, id string) (*entity.Label, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, is_active, created_at, updated_at
		FROM labels
		WHERE id = $1`+forUpdate(r.lock, "FOR UPDATE"), id)
	l, err := scanLabel(row)
	if err != nil {
		return nil, notFound(err)
	}
	return l, nil
}

func (r *LabelRepository) FindByName(ctx context.Context, name string) (*entity.Label, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, is_active, created_at, updated_at
		FROM labels
		WHERE name = $1`, name)
	l, err := scanLabel(row)
	if err != nil {
		return nil, notFound(err)
	}
	return l, nil
}

func (r *LabelRepository) FindAll(ctx context.Context) ([]*entity.Label, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, is_active, created_at, updated_at
		FROM labels
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query labels: %w", err)
	}
	defer rows.Close()

	labels := make([]*entity.Label, 0)
	for rows.Next() {
		l, err := scanLabel(rows)
		if err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

// SaveAll inserts the labels in one statement.
func (r *LabelRepository) SaveAll(ctx context.Context, labels []*entity.Label) error {
	if len(labels) == 0 {
		return nil
	}
	ids := make([]string, len(labels))
	names := make([]string, len(labels))
	active := make([]bool, len(labels))
	byID := make(map[string]*entity.Label, len(labels))
	for i, l := range labels {
		ids[i], names[i], active[i] = l.ID, l.Name, l.State.IsActive()
		byID[l.ID] = l
	}

	rows, err := r.db.Query(ctx, `
		INSERT INTO labels (id, name, is_active)
		SELECT * FROM unnest($1::text[], $2::text[], $3::bool[])
		RETURNING id, created_at, updated_at
	`, ids, names, active)
	if err != nil {
		return fmt.Errorf("insert labels: %w", conflict(err))
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                   string
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &createdAt, &updatedAt); err != nil {
			return err
		}
		if l, ok := byID[id]; ok {
			l.CreatedAt, l.UpdatedAt = createdAt, updatedAt
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("insert labels: %w", conflict(err))
	}
	return nil
}

func (r *LabelRepository) Save(ctx context.Context, l *entity.Label) error {
	row := r.db.QueryRow(ctx, `
		UPDATE labels
		SET name = $2, is_active = $3, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, l.ID, l.Name, l.State.IsActive())
	if err := row.Scan(&l.UpdatedAt); err != nil {
		return notFound(conflict(err))
	}
	return nil
}

var _ repository.LabelRepository = (*LabelRepository)(nil)
