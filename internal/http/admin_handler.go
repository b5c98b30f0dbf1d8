package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/catalog"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/content"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/domain"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/repository"
	"github.com/go-chi/chi/v5"
)

// AdminRepository is the persistence surface of the CMS endpoints.
type AdminRepository interface {
	GetAllProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) (int64, error)
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, c *domain.Category) (int64, error)
	UpdateCategory(ctx context.Context, c *domain.Category) error
	DeleteCategory(ctx context.Context, id int64) error

	ListSubscribers(ctx context.Context) ([]string, error)

	GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
}

type AdminHandler struct {
	repo    AdminRepository
	store   *content.Store
	catalog *catalog.Service
}

func NewAdminHandler(repo AdminRepository, store *content.Store, c *catalog.Service) *AdminHandler {
	return &AdminHandler{repo: repo, store: store, catalog: c}
}

// --- content ---

func (h *AdminHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.All())
}

// SaveContent bulk-upserts key/value overrides. Last write wins; the
// store snapshot is reloaded before responding so a following GET sees
// the new values.
func (h *AdminHandler) SaveContent(w http.ResponseWriter, r *http.Request) {
	var entries map[string]string
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if len(entries) == 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "no entries to save")
		return
	}

	if err := h.store.SaveAll(r.Context(), entries); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to save content")
		return
	}

	respondJSON(w, http.StatusOK, h.store.All())
}

// --- products ---

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.GetAllProducts(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *AdminHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	product, err := h.repo.GetProduct(r.Context(), id)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if p.Name == "" || p.Price <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product", "name and a positive price are required")
		return
	}

	id, err := h.repo.CreateProduct(r.Context(), &p)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create product")
		return
	}
	p.ID = id

	h.catalog.InvalidateCache()
	respondJSON(w, http.StatusCreated, &p)
}

// UpdateProduct replaces the product and all of its child rows (sizes,
// scent notes, occasions) with the submitted state.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	p.ID = id

	err := h.repo.UpdateProduct(r.Context(), &p)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update product")
		return
	}

	h.catalog.InvalidateCache()
	respondJSON(w, http.StatusOK, &p)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	err := h.repo.DeleteProduct(r.Context(), id)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete product")
		return
	}

	h.catalog.InvalidateCache()
	w.WriteHeader(http.StatusNoContent)
}

// --- categories ---

func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.ListCategories(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load categories")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var c domain.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if c.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_category", "name is required")
		return
	}

	id, err := h.repo.CreateCategory(r.Context(), &c)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create category")
		return
	}
	c.ID = id

	respondJSON(w, http.StatusCreated, &c)
}

func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var c domain.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	c.ID = id

	err := h.repo.UpdateCategory(r.Context(), &c)
	if errors.Is(err, repository.ErrCategoryNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "category not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update category")
		return
	}
	respondJSON(w, http.StatusOK, &c)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	err := h.repo.DeleteCategory(r.Context(), id)
	if errors.Is(err, repository.ErrCategoryNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "category not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- newsletter ---

func (h *AdminHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.repo.ListSubscribers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load subscribers")
		return
	}
	if subscribers == nil {
		subscribers = []string{}
	}
	respondJSON(w, http.StatusOK, subscribers)
}

// --- orders ---

func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")

	order, err := h.repo.GetOrderByNumber(r.Context(), orderNumber)
	if errors.Is(err, repository.ErrOrderNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load order")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return 0, false
	}
	return id, true
}
