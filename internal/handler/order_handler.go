package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles checkout and order HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.PlaceOrderInput
	if err := decodeBody(r, &in); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), middleware.UserID(r.Context()), in)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, order)
}

// List handles GET /api/orders. Users see their own orders; admins see all.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orders, err := h.service.ListOrders(ctx, middleware.UserID(ctx), middleware.Role(ctx))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, orders)
}

// Get handles GET /api/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	order, err := h.service.GetOrder(ctx, middleware.UserID(ctx), middleware.Role(ctx), r.PathValue("id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, order)
}

// UpdateStatus handles PUT /api/orders/{id}/status. Admin only.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var in model.UpdateOrderStatusInput
	if err := decodeBody(r, &in); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, order)
}
