package catalog

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/cache"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	m        sync.RWMutex
	products []*domain.Product
	err      error
	calls    int
}

func (m *mockRepository) GetAllProducts(context.Context) ([]*domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockRepository) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("product not found")
}

type mockCache struct {
	m        sync.RWMutex
	products []*domain.Product
	err      error
}

func (m *mockCache) Get(context.Context) ([]*domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.products == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.products, nil
}

func (m *mockCache) Set(_ context.Context, products []*domain.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.products = products
	return nil
}

func (m *mockCache) Delete(context.Context) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.products = nil
	return nil
}

func (m *mockCache) getProducts() []*domain.Product {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.products
}

func catalogFixture() []*domain.Product {
	return []*domain.Product{
		{ID: 1, Name: "Midnight Rose Elegance", ScentType: "Floral", Price: 125, Featured: true},
		{ID: 2, Name: "Cedarwood Noir", ScentType: "Woody", Price: 145, Featured: true},
		{ID: 3, Name: "Ocean Breeze Aqua", ScentType: "Fresh", Price: 95},
		{ID: 4, Name: "White Gardenia Dream", ScentType: "Floral", Price: 120},
	}
}

func TestListProducts_CacheMissFillsCache(t *testing.T) {
	mockRepo := &mockRepository{products: catalogFixture()}
	mockC := &mockCache{}

	sut := NewService(mockRepo, mockC)
	products, err := sut.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 4)

	require.Eventually(t, func() bool {
		return mockC.getProducts() != nil
	}, 100*time.Millisecond, 10*time.Millisecond, "products were not set in cache")
}

func TestListProducts_CacheHitSkipsRepo(t *testing.T) {
	mockRepo := &mockRepository{products: nil} // repo should NOT be called
	mockC := &mockCache{products: catalogFixture()}

	sut := NewService(mockRepo, mockC)
	products, err := sut.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 4)
	assert.Equal(t, 0, mockRepo.calls)
}

func TestListProducts_CacheErrorFallsBackToRepo(t *testing.T) {
	mockRepo := &mockRepository{products: catalogFixture()}
	mockC := &mockCache{err: fmt.Errorf("redis down")}

	sut := NewService(mockRepo, mockC)
	products, err := sut.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 4)
}

func TestListProducts_RepoError(t *testing.T) {
	mockRepo := &mockRepository{err: fmt.Errorf("database error")}
	mockC := &mockCache{}

	sut := NewService(mockRepo, mockC)
	_, err := sut.ListProducts(context.Background())
	require.ErrorContains(t, err, "database error")
}

func TestFilter_SearchByNameSubstring(t *testing.T) {
	sut := NewService(&mockRepository{products: catalogFixture()}, &mockCache{})

	result, err := sut.Filter(context.Background(), "rose", nil)
	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "Midnight Rose Elegance", result.Products[0].Name)
	assert.Equal(t, 4, result.Total)
}

func TestFilter_ByScentType(t *testing.T) {
	sut := NewService(&mockRepository{products: catalogFixture()}, &mockCache{})

	result, err := sut.Filter(context.Background(), "", []string{"Floral"})
	require.NoError(t, err)
	assert.Len(t, result.Products, 2)
}

func TestFilter_FacetCountsIgnoreScentFilter(t *testing.T) {
	sut := NewService(&mockRepository{products: catalogFixture()}, &mockCache{})

	// Counts come from the search-filtered set, not the scent-filtered
	// one, so unselected chips still show how many they would match.
	result, err := sut.Filter(context.Background(), "", []string{"Woody"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.FacetCounts["Floral"])
	assert.Equal(t, 1, result.FacetCounts["Woody"])
	assert.Equal(t, 1, result.FacetCounts["Fresh"])
	assert.Equal(t, 0, result.FacetCounts["Oriental"])
}

func TestFilter_NoMatchesReturnsEmptySlice(t *testing.T) {
	sut := NewService(&mockRepository{products: catalogFixture()}, &mockCache{})

	result, err := sut.Filter(context.Background(), "no such perfume", nil)
	require.NoError(t, err)
	assert.NotNil(t, result.Products)
	assert.Empty(t, result.Products)
}

func TestFeaturedProducts(t *testing.T) {
	sut := NewService(&mockRepository{products: catalogFixture()}, &mockCache{})

	featured, err := sut.FeaturedProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, featured, 2)
}

func TestRelatedProducts_SameScentTypeExcludingSelf(t *testing.T) {
	sut := NewService(&mockRepository{products: catalogFixture()}, &mockCache{})

	related, err := sut.RelatedProducts(context.Background(), 1, 4)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, int64(4), related[0].ID)
}

func TestInvalidateCache(t *testing.T) {
	mockC := &mockCache{products: catalogFixture()}
	sut := NewService(&mockRepository{}, mockC)

	sut.InvalidateCache()
	assert.Nil(t, mockC.getProducts())
}
