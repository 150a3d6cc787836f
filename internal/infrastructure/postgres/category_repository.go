package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Faraz011/virasat2/internal/domain/entity"
	"github.com/Faraz011/virasat2/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implements the CategoryRepository port over PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository builds the category persistence adapter. Pass a pool or a tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// List returns all categories ordered by name.
func (r *CategoryRepo) List() ([]*entity.Category, error) {
	query := `
		SELECT id, name, slug, description, region, image_url
		FROM categories ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Region, &c.ImageURL); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// GetBySlug fetches one category by slug.
func (r *CategoryRepo) GetBySlug(slug string) (*entity.Category, error) {
	query := `
		SELECT id, name, slug, description, region, image_url
		FROM categories WHERE slug = $1`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, slug).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Region, &c.ImageURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}
