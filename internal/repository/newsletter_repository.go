package repository

import (
	"context"
	"fmt"
	"strings"
)

// SubscribeEmail inserts a newsletter subscriber. A repeated email
// surfaces as ErrDuplicateEmail via the unique constraint.
func (r *Repository) SubscribeEmail(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO newsletter_subscribers (email) VALUES ($1)`, email)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert subscriber: %w", err)
	}
	return nil
}

func (r *Repository) ListSubscribers(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT email FROM newsletter_subscribers ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscribers: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		emails = append(emails, email)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return emails, nil
}
