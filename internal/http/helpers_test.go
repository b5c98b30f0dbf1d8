package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/cache"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/cart"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/catalog"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/checkout"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/content"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/domain"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type stubProductRepo struct {
	m        sync.RWMutex
	products []*domain.Product
}

func (s *stubProductRepo) GetAllProducts(context.Context) ([]*domain.Product, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	return s.products, nil
}

func (s *stubProductRepo) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

// stubCatalogCache always misses, so catalog reads hit the stub repo.
type stubCatalogCache struct{}

func (stubCatalogCache) Get(context.Context) ([]*domain.Product, error) { return nil, cache.ErrCacheMiss }
func (stubCatalogCache) Set(context.Context, []*domain.Product) error   { return nil }
func (stubCatalogCache) Delete(context.Context) error                   { return nil }

type stubOrderRepo struct {
	m      sync.Mutex
	orders []*domain.Order
}

func (s *stubOrderRepo) CreateOrderWithOutbox(_ context.Context, order *domain.Order) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.orders = append(s.orders, order)
	return nil
}

type stubLastOrderStore struct {
	m      sync.Mutex
	orders map[string]*domain.Order
}

func (s *stubLastOrderStore) Put(_ context.Context, sessionID string, order *domain.Order) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.orders[sessionID] = order
	return nil
}

func (s *stubLastOrderStore) Take(_ context.Context, sessionID string) (*domain.Order, error) {
	s.m.Lock()
	defer s.m.Unlock()
	order, ok := s.orders[sessionID]
	if !ok {
		return nil, cache.ErrNoOrder
	}
	delete(s.orders, sessionID)
	return order, nil
}

type stubContentRepo struct {
	m       sync.RWMutex
	entries map[string]string
	err     error
}

func (s *stubContentRepo) GetAllContent(context.Context) (map[string]string, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]string, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out, nil
}

func (s *stubContentRepo) UpsertContent(_ context.Context, entries map[string]string) error {
	s.m.Lock()
	defer s.m.Unlock()
	if s.err != nil {
		return s.err
	}
	for k, v := range entries {
		s.entries[k] = v
	}
	return nil
}

type stubNewsletterRepo struct {
	m      sync.Mutex
	emails map[string]bool
}

func (s *stubNewsletterRepo) SubscribeEmail(_ context.Context, email string) error {
	s.m.Lock()
	defer s.m.Unlock()
	if s.emails[email] {
		return repository.ErrDuplicateEmail
	}
	s.emails[email] = true
	return nil
}

type stubAdminRepo struct {
	*stubProductRepo
	m           sync.Mutex
	nextID       int64
	categories   []*domain.Category
	subscribers  []string
	placedOrders []*domain.Order
}

func (s *stubAdminRepo) CreateProduct(_ context.Context, p *domain.Product) (int64, error) {
	s.m.Lock()
	defer s.m.Unlock()
	s.nextID++
	p.ID = s.nextID
	s.stubProductRepo.m.Lock()
	s.products = append(s.products, p)
	s.stubProductRepo.m.Unlock()
	return p.ID, nil
}

func (s *stubAdminRepo) UpdateProduct(_ context.Context, p *domain.Product) error {
	s.stubProductRepo.m.Lock()
	defer s.stubProductRepo.m.Unlock()
	for i, existing := range s.products {
		if existing.ID == p.ID {
			s.products[i] = p
			return nil
		}
	}
	return repository.ErrProductNotFound
}

func (s *stubAdminRepo) DeleteProduct(_ context.Context, id int64) error {
	s.stubProductRepo.m.Lock()
	defer s.stubProductRepo.m.Unlock()
	for i, existing := range s.products {
		if existing.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrProductNotFound
}

func (s *stubAdminRepo) ListCategories(context.Context) ([]*domain.Category, error) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.categories, nil
}

func (s *stubAdminRepo) CreateCategory(_ context.Context, c *domain.Category) (int64, error) {
	s.m.Lock()
	defer s.m.Unlock()
	s.nextID++
	c.ID = s.nextID
	s.categories = append(s.categories, c)
	return c.ID, nil
}

func (s *stubAdminRepo) UpdateCategory(_ context.Context, c *domain.Category) error {
	s.m.Lock()
	defer s.m.Unlock()
	for i, existing := range s.categories {
		if existing.ID == c.ID {
			s.categories[i] = c
			return nil
		}
	}
	return repository.ErrCategoryNotFound
}

func (s *stubAdminRepo) DeleteCategory(_ context.Context, id int64) error {
	s.m.Lock()
	defer s.m.Unlock()
	for i, existing := range s.categories {
		if existing.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}
	return repository.ErrCategoryNotFound
}

func (s *stubAdminRepo) ListSubscribers(context.Context) ([]string, error) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.subscribers, nil
}

func (s *stubAdminRepo) GetOrderByNumber(_ context.Context, orderNumber string) (*domain.Order, error) {
	s.m.Lock()
	defer s.m.Unlock()
	for _, order := range s.placedOrders {
		if order.OrderNumber == orderNumber {
			return order, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func productFixture() []*domain.Product {
	return []*domain.Product{
		{
			ID: 1, Name: "Midnight Rose Elegance", ScentType: "Floral", Price: 125, Featured: true,
			Sizes: []domain.ProductSize{{VolumeML: 50, Price: 125}, {VolumeML: 100, Price: 185}},
		},
		{
			ID: 2, Name: "Cedarwood Noir", ScentType: "Woody", Price: 145,
			Sizes: []domain.ProductSize{{VolumeML: 50, Price: 145}},
		},
	}
}

type testApp struct {
	router      chi.Router
	carts       *cart.SessionStore
	orders      *stubOrderRepo
	contentRepo *stubContentRepo
	store       *content.Store
	admin       *stubAdminRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	productRepo := &stubProductRepo{products: productFixture()}
	catalogSvc := catalog.NewService(productRepo, stubCatalogCache{})

	carts := cart.NewSessionStore()
	t.Cleanup(func() { _ = carts.Close() })

	orders := &stubOrderRepo{}
	lastOrders := &stubLastOrderStore{orders: make(map[string]*domain.Order)}
	checkoutSvc := checkout.NewService(orders, lastOrders, carts, 0)

	contentRepo := &stubContentRepo{entries: make(map[string]string)}
	store := content.NewStore(contentRepo)
	require.NoError(t, store.Load(context.Background()))

	admin := &stubAdminRepo{
		stubProductRepo: productRepo,
		nextID:          100,
		categories:      []*domain.Category{{ID: 1, Name: "Floral", Slug: "floral", SortOrder: 1}},
	}

	router := NewRouter(Handlers{
		Content:    NewContentHandler(store),
		Products:   NewProductHandler(catalogSvc),
		Cart:       NewCartHandler(carts, catalogSvc),
		Checkout:   NewCheckoutHandler(checkoutSvc),
		Newsletter: NewNewsletterHandler(&stubNewsletterRepo{emails: make(map[string]bool)}),
		Admin:      NewAdminHandler(admin, store, catalogSvc),
	}, 30*time.Second)

	return &testApp{
		router:      router,
		carts:       carts,
		orders:      orders,
		contentRepo: contentRepo,
		store:       store,
		admin:       admin,
	}
}

const testSessionID = "test-session"

// do performs a request pinned to testSessionID so carts persist across
// calls within a test.
func (a *testApp) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	request := httptest.NewRequest(method, path, reader)
	request.AddCookie(&http.Cookie{Name: sessionCookieName, Value: testSessionID})
	recorder := httptest.NewRecorder()
	a.router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&v))
	return v
}
