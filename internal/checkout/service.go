package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/cache"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/domain"
	"github.com/google/uuid"
)

const (
	// ShippingFlatRate is charged on every order regardless of size.
	ShippingFlatRate = 15.00

	// TaxRate applies to the item subtotal only, not shipping.
	TaxRate = 0.08
)

var ErrEmptyCart = errors.New("cart is empty")

// ValidationError carries per-field messages for a rejected form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout validation failed: %d invalid fields", len(e.Fields))
}

// OrderRepository persists the order and its outbox event in one
// transaction.
type OrderRepository interface {
	CreateOrderWithOutbox(ctx context.Context, order *domain.Order) error
}

// CartStore is the slice of the session cart store checkout needs.
type CartStore interface {
	Items(sessionID string) []domain.CartItem
	Clear(sessionID string)
}

type Service struct {
	orders     OrderRepository
	lastOrders cache.LastOrderStore
	carts      CartStore

	// processingDelay simulates the payment gateway round trip.
	processingDelay time.Duration
}

func NewService(orders OrderRepository, lastOrders cache.LastOrderStore, carts CartStore, processingDelay time.Duration) *Service {
	return &Service{
		orders:          orders,
		lastOrders:      lastOrders,
		carts:           carts,
		processingDelay: processingDelay,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Totals prices a set of line items: subtotal, flat shipping, tax on the
// subtotal, and the sum.
func Totals(items []domain.CartItem) domain.OrderTotals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	tax := round2(subtotal * TaxRate)
	return domain.OrderTotals{
		Subtotal: round2(subtotal),
		Shipping: ShippingFlatRate,
		Tax:      tax,
		Total:    round2(subtotal + ShippingFlatRate + tax),
	}
}

// Submit validates the form, prices the session's cart, persists the
// order with its outbox event, parks a snapshot for the confirmation
// page and clears the cart. Returns ErrEmptyCart or *ValidationError
// for client mistakes.
func (s *Service) Submit(ctx context.Context, sessionID string, req *Request) (*domain.Order, error) {
	items := s.carts.Items(sessionID)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if fields := Validate(req); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if s.processingDelay > 0 {
		select {
		case <-time.After(s.processingDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	cardDigits := stripNonDigits(req.CardNumber)
	order := &domain.Order{
		ID:          uuid.New().String(),
		OrderNumber: fmt.Sprintf("ORD-%d", time.Now().UnixMilli()),
		SessionID:   sessionID,
		Items:       items,
		Customer: domain.CustomerInfo{
			Name:  req.FirstName + " " + req.LastName,
			Email: req.Email,
			Phone: req.Phone,
		},
		Shipping: domain.ShippingInfo{
			Address: req.Address,
			City:    req.City,
			State:   req.State,
			ZipCode: req.ZipCode,
			Country: req.Country,
		},
		Payment: domain.PaymentDisplay{
			CardLast4: cardDigits[len(cardDigits)-4:],
			CardName:  req.CardName,
		},
		Totals:    Totals(items),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.orders.CreateOrderWithOutbox(ctx, order); err != nil {
		return nil, fmt.Errorf("create order failed: %w", err)
	}

	// The order is persisted either way; a dead snapshot store only
	// costs the confirmation page.
	if err := s.lastOrders.Put(ctx, sessionID, order); err != nil {
		log.Printf("last order store put error: %v", err)
	}

	s.carts.Clear(sessionID)

	return order, nil
}

// Confirmation consumes the session's parked order. A second call
// returns cache.ErrNoOrder.
func (s *Service) Confirmation(ctx context.Context, sessionID string) (*domain.Order, error) {
	return s.lastOrders.Take(ctx, sessionID)
}
