package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/catalog"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/repository"
	"github.com/go-chi/chi/v5"
)

const relatedProductsLimit = 4

type ProductHandler struct {
	catalog *catalog.Service
}

func NewProductHandler(c *catalog.Service) *ProductHandler {
	return &ProductHandler{catalog: c}
}

// ListProducts serves the shop catalog. ?search= narrows by name
// substring, ?filters= is a comma-separated list of scent types.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")

	var scentTypes []string
	if raw := r.URL.Query().Get("filters"); raw != "" {
		for _, st := range strings.Split(raw, ",") {
			if st = strings.TrimSpace(st); st != "" {
				scentTypes = append(scentTypes, st)
			}
		}
	}

	result, err := h.catalog.Filter(r.Context(), query, scentTypes)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load products")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *ProductHandler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	featured, err := h.catalog.FeaturedProducts(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load products")
		return
	}
	respondJSON(w, http.StatusOK, featured)
}

// GetProduct serves the product detail page together with its related
// products, so the page renders from a single round trip.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a positive integer")
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load product")
		return
	}

	related, err := h.catalog.RelatedProducts(r.Context(), id, relatedProductsLimit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load product")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"product": product,
		"related": related,
	})
}
