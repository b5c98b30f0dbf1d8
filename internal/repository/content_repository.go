package repository

import (
	"context"
	"fmt"
)

// GetAllContent loads the entire site_content table as a key/value map.
// There is deliberately no pagination or filtering; the table is small
// and the content store takes one full snapshot per load.
func (r *Repository) GetAllContent(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM site_content ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query site content: %w", err)
	}
	defer rows.Close()

	content := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan content row: %w", err)
		}
		content[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return content, nil
}

// UpsertContent writes the given key/value pairs, last write wins. All
// pairs go in one transaction so an admin save is all-or-nothing.
func (r *Repository) UpsertContent(ctx context.Context, entries map[string]string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO site_content (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for key, value := range entries {
		if _, err := stmt.ExecContext(ctx, key, value); err != nil {
			return fmt.Errorf("failed to upsert content key %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit content upsert: %w", err)
	}
	return nil
}
