package catalog

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/cache"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/domain"
	"golang.org/x/sync/singleflight"
)

// ScentTypes are the filterable fragrance families, in display order.
var ScentTypes = []string{"Floral", "Woody", "Fresh", "Oriental"}

// ProductRepository is the slice of the relational store the catalog
// needs.
type ProductRepository interface {
	GetAllProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

// Result is a filtered catalog page: the matching products, the total
// catalog size and the per-scent-type counts over the search-filtered
// set (the filter chips show these).
type Result struct {
	Products    []*domain.Product `json:"products"`
	Total       int               `json:"total"`
	FacetCounts map[string]int    `json:"facet_counts"`
}

type Service struct {
	repo  ProductRepository
	cache cache.CatalogCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewService(repo ProductRepository, c cache.CatalogCache) *Service {
	return &Service{repo: repo, cache: c}
}

// ListProducts returns the full catalog, read through the cache. Cache
// failures fall back to the database; only a database error is fatal.
func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	v, err, _ := s.sfg.Do("products", func() (interface{}, error) {
		products, err := s.cache.Get(ctx)
		if err == nil {
			return products, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("catalog cache get error: %v", err) // log cache error but continue
		}

		products, errGet := s.repo.GetAllProducts(ctx)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.cache.Set(ctx, products); errSet != nil {
				log.Printf("catalog cache set error: %v", errSet)
			}
		}()

		return products, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]*domain.Product), nil
}

// Filter narrows the catalog by a case-insensitive name substring and a
// set of scent types, and computes facet counts over the search-filtered
// set. Both predicates are optional; empty inputs match everything.
func (s *Service) Filter(ctx context.Context, query string, scentTypes []string) (*Result, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	searchFiltered := products
	if query != "" {
		q := strings.ToLower(query)
		searchFiltered = nil
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), q) {
				searchFiltered = append(searchFiltered, p)
			}
		}
	}

	counts := make(map[string]int, len(ScentTypes))
	for _, st := range ScentTypes {
		counts[st] = 0
	}
	for _, p := range searchFiltered {
		counts[p.ScentType]++
	}

	matched := searchFiltered
	if len(scentTypes) > 0 {
		wanted := make(map[string]bool, len(scentTypes))
		for _, st := range scentTypes {
			wanted[st] = true
		}
		matched = nil
		for _, p := range searchFiltered {
			if wanted[p.ScentType] {
				matched = append(matched, p)
			}
		}
	}

	if matched == nil {
		matched = []*domain.Product{}
	}

	return &Result{
		Products:    matched,
		Total:       len(products),
		FacetCounts: counts,
	}, nil
}

// FeaturedProducts returns the products flagged for the home page.
func (s *Service) FeaturedProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	var featured []*domain.Product
	for _, p := range products {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// RelatedProducts picks up to limit products sharing the scent type,
// excluding the product itself.
func (s *Service) RelatedProducts(ctx context.Context, id int64, limit int) ([]*domain.Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	var related []*domain.Product
	for _, p := range products {
		if p.ID == id || p.ScentType != product.ScentType {
			continue
		}
		related = append(related, p)
		if len(related) == limit {
			break
		}
	}
	return related, nil
}

// InvalidateCache drops the cached list; called after admin writes.
func (s *Service) InvalidateCache() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx); err != nil {
		log.Printf("catalog cache invalidate error: %v", err)
	}
}
