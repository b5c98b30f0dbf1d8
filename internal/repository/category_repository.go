package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/domain"
)

func (r *Repository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug, sort_order, created_at FROM categories ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		c := &domain.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.SortOrder, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return categories, nil
}

func (r *Repository) CreateCategory(ctx context.Context, c *domain.Category) (int64, error) {
	if c.Slug == "" {
		c.Slug = strings.ToLower(strings.ReplaceAll(c.Name, " ", "-"))
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (name, slug, sort_order) VALUES ($1, $2, $3)`,
		c.Name, c.Slug, c.SortOrder)
	if err != nil {
		return 0, fmt.Errorf("failed to insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get category id: %w", err)
	}
	return id, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, c *domain.Category) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = $1, slug = $2, sort_order = $3 WHERE id = $4`,
		c.Name, c.Slug, c.SortOrder, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
