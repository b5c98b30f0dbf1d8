package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/repository"
)

var newsletterEmailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NewsletterRepository persists subscriber emails.
type NewsletterRepository interface {
	SubscribeEmail(ctx context.Context, email string) error
}

type NewsletterHandler struct {
	repo NewsletterRepository
}

func NewNewsletterHandler(repo NewsletterRepository) *NewsletterHandler {
	return &NewsletterHandler{repo: repo}
}

type SubscribeRequestDTO struct {
	Email string `json:"email"`
}

func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !newsletterEmailRe.MatchString(email) {
		respondError(w, http.StatusBadRequest, "invalid_email", "please enter a valid email address")
		return
	}

	err := h.repo.SubscribeEmail(r.Context(), email)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		respondError(w, http.StatusConflict, "already_subscribed", "this email is already subscribed")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to subscribe")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "subscribed"})
}
