package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// Handlers collects the HTTP handlers the router wires up.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Review   *handler.ReviewHandler
	Payment  *handler.PaymentHandler
}

// New creates a new HTTP router with all routes and middleware configured.
// The health check and the payment webhook stay outside the auth chain; the
// webhook authenticates via its signature instead.
func New(h Handlers, jwtSecret []byte, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	authed := middleware.Authenticate(jwtSecret, logger)
	adminOnly := func(hf http.HandlerFunc) http.Handler {
		return authed(middleware.RequireRole(logger, model.RoleAdmin)(hf))
	}
	userOnly := func(hf http.HandlerFunc) http.Handler {
		return authed(hf)
	}

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Auth
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.Handle("GET /api/auth/me", userOnly(h.Auth.Me))
	mux.HandleFunc("POST /api/auth/forgot-password", h.Auth.ForgotPassword)

	// Users
	mux.Handle("GET /api/users/profile", userOnly(h.User.GetProfile))
	mux.Handle("PUT /api/users/profile", userOnly(h.User.UpdateProfile))
	mux.Handle("PUT /api/users/password", userOnly(h.User.UpdatePassword))
	mux.Handle("POST /api/users/address", userOnly(h.User.AddAddress))
	mux.Handle("PUT /api/users/address/{id}", userOnly(h.User.UpdateAddress))
	mux.Handle("DELETE /api/users/address/{id}", userOnly(h.User.DeleteAddress))
	mux.Handle("GET /api/users", adminOnly(h.User.List))
	mux.Handle("GET /api/users/{id}", adminOnly(h.User.Get))
	mux.Handle("DELETE /api/users/{id}", adminOnly(h.User.Delete))

	// Products
	mux.HandleFunc("GET /api/products", h.Product.List)
	mux.HandleFunc("GET /api/products/{id}", h.Product.Get)
	mux.Handle("POST /api/products", adminOnly(h.Product.Create))
	mux.Handle("PUT /api/products/{id}", adminOnly(h.Product.Update))
	mux.Handle("DELETE /api/products/{id}", adminOnly(h.Product.Delete))

	// Categories
	mux.HandleFunc("GET /api/categories", h.Category.List)
	mux.HandleFunc("GET /api/categories/{id}", h.Category.Get)
	mux.Handle("POST /api/categories", adminOnly(h.Category.Create))
	mux.Handle("PUT /api/categories/{id}", adminOnly(h.Category.Update))
	mux.Handle("DELETE /api/categories/{id}", adminOnly(h.Category.Delete))

	// Cart
	mux.Handle("GET /api/cart", userOnly(h.Cart.Get))
	mux.Handle("POST /api/cart/items", userOnly(h.Cart.AddItem))
	mux.Handle("PUT /api/cart/items/{productId}", userOnly(h.Cart.UpdateItem))
	mux.Handle("DELETE /api/cart/items/{productId}", userOnly(h.Cart.RemoveItem))
	mux.Handle("DELETE /api/cart", userOnly(h.Cart.Clear))

	// Orders
	mux.Handle("POST /api/orders", userOnly(h.Order.Create))
	mux.Handle("GET /api/orders", userOnly(h.Order.List))
	mux.Handle("GET /api/orders/{id}", userOnly(h.Order.Get))
	mux.Handle("PUT /api/orders/{id}/status", adminOnly(h.Order.UpdateStatus))

	// Reviews
	mux.HandleFunc("GET /api/reviews/product/{productId}", h.Review.ListByProduct)
	mux.Handle("POST /api/reviews", userOnly(h.Review.Create))
	mux.Handle("PUT /api/reviews/{id}", userOnly(h.Review.Update))
	mux.Handle("DELETE /api/reviews/{id}", userOnly(h.Review.Delete))

	// Payments
	mux.Handle("POST /api/payments/create-intent", userOnly(h.Payment.CreateIntent))
	mux.HandleFunc("POST /api/payments/webhook", h.Payment.Webhook)
	mux.HandleFunc("GET /api/payments/config", h.Payment.Config)

	// Apply middleware in order: Recovery -> Logging -> CORS
	var root http.Handler = mux
	root = middleware.CORS(root)
	root = middleware.Logging(logger)(root)
	root = middleware.Recovery(logger)(root)

	return root
}
