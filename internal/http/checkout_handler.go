package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/cache"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/checkout"
)

type CheckoutHandler struct {
	checkout *checkout.Service
}

func NewCheckoutHandler(c *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: c}
}

func (h *CheckoutHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())

	var req checkout.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.checkout.Submit(r.Context(), sessionID, &req)
	if err != nil {
		var verr *checkout.ValidationError
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
		case errors.As(err, &verr):
			respondFieldErrors(w, http.StatusBadRequest, "validation_failed", "please correct the highlighted fields", verr.Fields)
		default:
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to place order")
		}
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// OrderConfirmation consumes the session's last order. Reloading the
// confirmation page therefore 404s, matching the one-shot snapshot.
func (h *CheckoutHandler) OrderConfirmation(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())

	order, err := h.checkout.Confirmation(r.Context(), sessionID)
	if errors.Is(err, cache.ErrNoOrder) {
		respondError(w, http.StatusNotFound, "no_order_found", "no order found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}
