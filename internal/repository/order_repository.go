package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/domain"
)

// OutboxEvent is one pending row of the transactional outbox. Payload is
// stored as the JSON that will go on the wire.
type OutboxEvent struct {
	ID          int64
	AggregateId string
	EventType   string
	Payload     json.RawMessage
	CreatedAt   time.Time
}

const orderCompletedEvent = "OrderCompleted"

// CreateOrderWithOutbox persists the order and its outbox event in one
// transaction, so an order row always has a publishable event and vice
// versa.
func (r *Repository) CreateOrderWithOutbox(ctx context.Context, order *domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}
	customerJSON, err := json.Marshal(order.Customer)
	if err != nil {
		return fmt.Errorf("failed to marshal customer: %w", err)
	}
	shippingJSON, err := json.Marshal(order.Shipping)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping: %w", err)
	}
	paymentJSON, err := json.Marshal(order.Payment)
	if err != nil {
		return fmt.Errorf("failed to marshal payment: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, order_number, session_id, items, customer, shipping, payment,
		                    subtotal, shipping_cost, tax, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		order.ID,
		order.OrderNumber,
		order.SessionID,
		itemsJSON,
		customerJSON,
		shippingJSON,
		paymentJSON,
		order.Totals.Subtotal,
		order.Totals.Shipping,
		order.Totals.Tax,
		order.Totals.Total,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	payload, err := json.Marshal(map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"items":        order.Items,
		"total":        order.Totals.Total,
		"completed_at": order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal outbox payload: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO outbox_events (aggregate_id, event_type, payload) VALUES ($1, $2, $3)`,
		order.ID, orderCompletedEvent, payload)
	if err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

func (r *Repository) GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	query := `
		SELECT id, order_number, session_id, items, customer, shipping, payment,
		       subtotal, shipping_cost, tax, total, created_at
		FROM orders WHERE order_number = $1
	`

	var order domain.Order
	var itemsJSON, customerJSON, shippingJSON, paymentJSON []byte
	err := r.db.QueryRowContext(ctx, query, orderNumber).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.SessionID,
		&itemsJSON,
		&customerJSON,
		&shippingJSON,
		&paymentJSON,
		&order.Totals.Subtotal,
		&order.Totals.Shipping,
		&order.Totals.Tax,
		&order.Totals.Total,
		&order.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by number: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	if err := json.Unmarshal(customerJSON, &order.Customer); err != nil {
		return nil, fmt.Errorf("unmarshal customer: %w", err)
	}
	if err := json.Unmarshal(shippingJSON, &order.Shipping); err != nil {
		return nil, fmt.Errorf("unmarshal shipping: %w", err)
	}
	if err := json.Unmarshal(paymentJSON, &order.Payment); err != nil {
		return nil, fmt.Errorf("unmarshal payment: %w", err)
	}

	return &order, nil
}

func (r *Repository) GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, aggregate_id, event_type, payload, created_at
		FROM outbox_events
		WHERE processed = 0
		ORDER BY id
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query outbox events: %w", err)
	}
	defer rows.Close()

	var events []*OutboxEvent
	for rows.Next() {
		ev := &OutboxEvent{}
		if err := rows.Scan(&ev.ID, &ev.AggregateId, &ev.EventType, &ev.Payload, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outbox event: %w", err)
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return events, nil
}

func (r *Repository) MarkEventAsProcessed(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE outbox_events SET processed = 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark event as processed: %w", err)
	}
	return nil
}
