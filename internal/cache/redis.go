package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

const catalogKey = "catalog:products"

func newBreaker(name string) *gobreaker.CircuitBreaker[[]byte] {
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}

// RedisCatalogCache caches the product list in Redis behind a circuit
// breaker, so a dead Redis degrades to database reads instead of adding
// a timeout to every request.
type RedisCatalogCache struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	baseTTL time.Duration
}

func NewRedisCatalogCache(client *redis.Client) *RedisCatalogCache {
	return &RedisCatalogCache{
		client:  client,
		breaker: newBreaker("catalog-cache"),
		baseTTL: 15 * time.Minute,
	}
}

func (r *RedisCatalogCache) Get(ctx context.Context) ([]*domain.Product, error) {
	data, err := r.breaker.Execute(func() ([]byte, error) {
		return r.client.Get(ctx, catalogKey).Bytes()
	})
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var products []*domain.Product
	if err2 := json.Unmarshal(data, &products); err2 != nil {
		return nil, fmt.Errorf("unmarshal products failed: %w", err2)
	}

	return products, nil
}

func (r *RedisCatalogCache) Set(ctx context.Context, products []*domain.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal products failed: %w", err)
	}

	// Jitter spreads expiry so all instances don't refill at once.
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	ttl := r.baseTTL + jitter
	_, err = r.breaker.Execute(func() ([]byte, error) {
		return nil, r.client.Set(ctx, catalogKey, data, ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCatalogCache) Delete(ctx context.Context) error {
	_, err := r.breaker.Execute(func() ([]byte, error) {
		return nil, r.client.Del(ctx, catalogKey).Err()
	})
	if err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// RedisLastOrderStore keeps the per-session order snapshot in Redis.
// GETDEL gives the read-exactly-once semantics of the confirmation page.
type RedisLastOrderStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLastOrderStore(client *redis.Client) *RedisLastOrderStore {
	return &RedisLastOrderStore{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func lastOrderKey(sessionID string) string {
	return fmt.Sprintf("lastorder:%s", sessionID)
}

func (r *RedisLastOrderStore) Put(ctx context.Context, sessionID string, order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order failed: %w", err)
	}

	// SET overwrites any prior order; the slot holds exactly one.
	if err := r.client.Set(ctx, lastOrderKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisLastOrderStore) Take(ctx context.Context, sessionID string) (*domain.Order, error) {
	data, err := r.client.GetDel(ctx, lastOrderKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoOrder
	}
	if err != nil {
		return nil, fmt.Errorf("redis getdel failed: %w", err)
	}

	var order domain.Order
	if err2 := json.Unmarshal(data, &order); err2 != nil {
		return nil, fmt.Errorf("unmarshal order failed: %w", err2)
	}

	return &order, nil
}
