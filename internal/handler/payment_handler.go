package handler

import (
	"io"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// maxWebhookBody bounds the raw payload read for signature verification.
const maxWebhookBody = 64 * 1024

// PaymentHandler handles payment processor HTTP requests.
type PaymentHandler struct {
	service service.PaymentService
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(service service.PaymentService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

// CreateIntent handles POST /api/payments/create-intent.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var in struct {
		OrderID string `json:"orderId"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	intent, err := h.service.CreateIntent(r.Context(), middleware.UserID(r.Context()), in.OrderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, intent)
}

// Webhook handles POST /api/payments/webhook. The signature is verified over
// the raw body, so the payload must not be decoded before verification.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeBadRequest(w, "Unable to read webhook payload")
		return
	}

	if err := h.service.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, map[string]bool{"received": true})
}

// Config handles GET /api/payments/config.
func (h *PaymentHandler) Config(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"publishableKey": h.service.PublishableKey()})
}
