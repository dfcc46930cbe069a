package postgres

import (
	"context"
	"fmt"

	"github.com/oksasatya/data-labeling-backend/internal/domain/entity"
	"github.com/oksasatya/data-labeling-backend/internal/domain/repository"
)

type TemplateRepository struct {
	db DBTX
}

func NewTemplateRepository(db DBTX) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) FindByID(ctx context.Context, id string) (*entity.Template, error) {
	t := &entity.Template{}
	row := r.db.QueryRow(ctx, `
		SELECT id, template_no, content, created_at, updated_at
		FROM templates
		WHERE id = $1
	`, id)
	if err := row.Scan(&t.ID, &t.TemplateNo, &t.Content, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (r *TemplateRepository) FindAllOrderByTemplateNo(ctx context.Context) ([]*entity.Template, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, template_no, content, created_at, updated_at
		FROM templates
		ORDER BY template_no ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer rows.Close()

	templates := make([]*entity.Template, 0)
	for rows.Next() {
		t := &entity.Template{}
		if err := rows.Scan(&t.ID, &t.TemplateNo, &t.Content, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

var _ repository.TemplateRepository = (*TemplateRepository)(nil)

// Upsert inserts a template or replaces the content of the one with the same
// number. Only cmd/seed writes templates.
func (r *TemplateRepository) Upsert(ctx context.Context, t *entity.Template) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO templates (id, template_no, content)
		VALUES ($1, $2, $3)
		ON CONFLICT (template_no) DO UPDATE
		SET content = EXCLUDED.content, updated_at = now()
		RETURNING id, created_at, updated_at
	`, t.ID, t.TemplateNo, t.Content).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert template %d: %w", t.TemplateNo, err)
	}
	return nil
}
