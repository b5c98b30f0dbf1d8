package cache

import (
	"context"
	"errors"

	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/domain"
)

// CatalogCache holds the full product list so catalog reads skip the
// database on the hot path.
type CatalogCache interface {
	Get(ctx context.Context) ([]*domain.Product, error)
	Set(ctx context.Context, products []*domain.Product) error
	Delete(ctx context.Context) error
}

// LastOrderStore is the single-slot order snapshot behind the
// confirmation page: one order per session, overwritten by the next
// checkout, consumed exactly once.
type LastOrderStore interface {
	Put(ctx context.Context, sessionID string, order *domain.Order) error
	// Take returns and removes the session's order. ErrNoOrder when the
	// slot is empty or was already consumed.
	Take(ctx context.Context, sessionID string) (*domain.Order, error)
}

var (
	ErrCacheMiss = errors.New("cache miss")
	ErrNoOrder   = errors.New("no order found")
)
