package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"storefront/internal/config"
	"storefront/internal/model"
	"storefront/internal/payment"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v80"
)

// paymentService implements PaymentService.
type paymentService struct {
	orderRepo      repository.OrderRepository
	gateway        payment.Gateway
	publishableKey string
	logger         zerolog.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(orderRepo repository.OrderRepository, gateway payment.Gateway, cfg config.StripeConfig, logger zerolog.Logger) PaymentService {
	return &paymentService{
		orderRepo:      orderRepo,
		gateway:        gateway,
		publishableKey: cfg.PublishableKey,
		logger:         logger.With().Str("service", "payment").Logger(),
	}
}

// CreateIntent registers a payment intent for an order owned by the caller.
// The amount is the order total converted to minor units.
func (s *paymentService) CreateIntent(ctx context.Context, userID, orderID string) (*PaymentIntent, error) {
	oid, ok := parseObjectID(orderID)
	if !ok {
		return nil, model.ErrOrderNotFound
	}

	order, err := s.orderRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	if order.User.Hex() != userID {
		s.logger.Warn().Str("order_id", orderID).Str("user_id", userID).Msg("payment intent denied")
		return nil, model.ErrNotAuthorized
	}

	amount := int64(math.Round(order.Total * 100))
	intent, err := s.gateway.CreateIntent(ctx, amount, "usd", map[string]string{
		"orderId": order.ID.Hex(),
		"userId":  userID,
	})
	if err != nil {
		return nil, err
	}

	return &PaymentIntent{
		ClientSecret: intent.ClientSecret,
		Amount:       amount,
	}, nil
}

// HandleWebhook verifies the processor's signature over the raw payload and
// applies the event. A successful payment intent marks its order paid; the
// update is a plain overwrite, so replayed events are harmless. Event types
// without a handler are acknowledged and dropped.
func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.VerifyWebhook(payload, signature)
	if err != nil {
		return model.NewDomainError(model.ErrCodeValidationFailed, "Webhook signature verification failed")
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return model.NewDomainError(model.ErrCodeValidationFailed, "Malformed webhook payload")
		}
		return s.applyPaymentSucceeded(ctx, &intent)
	default:
		s.logger.Debug().Str("type", string(event.Type)).Msg("unhandled webhook event")
		return nil
	}
}

func (s *paymentService) applyPaymentSucceeded(ctx context.Context, intent *stripe.PaymentIntent) error {
	orderID, ok := intent.Metadata["orderId"]
	if !ok {
		s.logger.Warn().Str("intent_id", intent.ID).Msg("payment intent missing order metadata")
		return nil
	}

	oid, valid := parseObjectID(orderID)
	if !valid {
		s.logger.Warn().Str("intent_id", intent.ID).Str("order_id", orderID).Msg("payment intent has malformed order id")
		return nil
	}

	now := time.Now().UTC()
	result := model.PaymentResult{
		ID:         intent.ID,
		Status:     string(intent.Status),
		UpdateTime: now.Format(time.RFC3339),
	}

	if err := s.orderRepo.MarkPaid(ctx, oid, now, result); err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}

	s.logger.Info().Str("order_id", orderID).Str("intent_id", intent.ID).Msg("order marked paid")
	return nil
}

// PublishableKey returns the processor's client-side key.
func (s *paymentService) PublishableKey() string {
	return s.publishableKey
}
