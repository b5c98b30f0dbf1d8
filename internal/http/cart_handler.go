package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/cart"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/catalog"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/domain"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/repository"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	carts   *cart.SessionStore
	catalog *catalog.Service
}

func NewCartHandler(carts *cart.SessionStore, c *catalog.Service) *CartHandler {
	return &CartHandler{carts: carts, catalog: c}
}

type AddItemRequestDTO struct {
	ProductID int64  `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	respondJSON(w, http.StatusOK, h.carts.Get(sessionID))
}

// AddItem resolves the product and size server-side; the client never
// dictates the price. The size label selects the price tier.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity <= 0 || req.Quantity > cart.MaxQuantity {
		respondError(w, http.StatusBadRequest, "invalid_quantity",
			fmt.Sprintf("quantity must be between 1 and %d", cart.MaxQuantity))
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load product")
		return
	}

	price, ok := sizePrice(product, req.Size)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_size", "unknown size for this product")
		return
	}

	h.carts.AddItem(sessionID, domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		SizeLabel: req.Size,
		UnitPrice: price,
		ImageURL:  product.ImageURL,
		ImageAlt:  product.ImageAlt,
	}, req.Quantity)

	respondJSON(w, http.StatusCreated, h.carts.Get(sessionID))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())

	productID, sizeLabel, ok := cartLineParams(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// Zero and negative quantities remove the line.
	h.carts.UpdateQuantity(sessionID, productID, sizeLabel, req.Quantity)
	respondJSON(w, http.StatusOK, h.carts.Get(sessionID))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())

	productID, sizeLabel, ok := cartLineParams(w, r)
	if !ok {
		return
	}

	h.carts.RemoveItem(sessionID, productID, sizeLabel)
	respondJSON(w, http.StatusOK, h.carts.Get(sessionID))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	h.carts.Clear(sessionID)
	respondJSON(w, http.StatusOK, h.carts.Get(sessionID))
}

// cartLineParams parses the (product_id, size) pair addressing one cart
// line. Both parts are required; size alone distinguishes two bottles of
// the same perfume.
func cartLineParams(w http.ResponseWriter, r *http.Request) (int64, string, bool) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return 0, "", false
	}

	sizeLabel := chi.URLParam(r, "size")
	if sizeLabel == "" {
		respondError(w, http.StatusBadRequest, "invalid_size", "size is required")
		return 0, "", false
	}

	return productID, sizeLabel, true
}

// sizePrice maps a label like "50ml" to the product's price for that
// volume.
func sizePrice(product *domain.Product, label string) (float64, bool) {
	for _, size := range product.Sizes {
		if fmt.Sprintf("%dml", size.VolumeML) == label {
			return size.Price, true
		}
	}
	return 0, false
}
