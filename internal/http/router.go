package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Content    *ContentHandler
	Products   *ProductHandler
	Cart       *CartHandler
	Checkout   *CheckoutHandler
	Newsletter *NewsletterHandler
	Admin      *AdminHandler
}

// NewRouter assembles the API surface with the global middleware stack.
func NewRouter(h Handlers, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/pages/content", h.Content.GetPageContent)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.ListProducts)
			r.Get("/featured", h.Products.FeaturedProducts)
			r.Get("/{id}", h.Products.GetProduct)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Delete("/", h.Cart.ClearCart)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items/{product_id}/{size}", h.Cart.UpdateQuantity)
			r.Delete("/items/{product_id}/{size}", h.Cart.RemoveItem)
		})

		r.Post("/checkout", h.Checkout.SubmitOrder)
		r.Get("/orders/confirmation", h.Checkout.OrderConfirmation)

		r.Post("/newsletter/subscribe", h.Newsletter.Subscribe)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/content", h.Admin.GetContent)
			r.Post("/content", h.Admin.SaveContent)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.Admin.ListProducts)
				r.Post("/", h.Admin.CreateProduct)
				r.Get("/{id}", h.Admin.GetProduct)
				r.Put("/{id}", h.Admin.UpdateProduct)
				r.Delete("/{id}", h.Admin.DeleteProduct)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.Admin.ListCategories)
				r.Post("/", h.Admin.CreateCategory)
				r.Put("/{id}", h.Admin.UpdateCategory)
				r.Delete("/{id}", h.Admin.DeleteCategory)
			})

			r.Get("/newsletter/subscribers", h.Admin.ListSubscribers)
			r.Get("/orders/{orderNumber}", h.Admin.GetOrder)
		})
	})

	return r
}
