// Package payment wraps the Stripe SDK behind a small gateway interface so
// the payment service can be tested without network calls.
package payment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
	"github.com/stripe/stripe-go/v80/webhook"
)

// Gateway is the payment provider surface the order flow depends on.
type Gateway interface {
	// CreateIntent registers a payment of the given amount (in the smallest
	// currency unit) and returns the provider's intent.
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*stripe.PaymentIntent, error)

	// VerifyWebhook checks the signature on a raw webhook payload and
	// returns the decoded event.
	VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error)
}

type stripeGateway struct {
	webhookSecret string
	logger        zerolog.Logger
}

// NewStripeGateway configures the Stripe SDK with the account's secret key
// and returns a gateway bound to the webhook signing secret.
func NewStripeGateway(secretKey, webhookSecret string, logger zerolog.Logger) Gateway {
	stripe.Key = secretKey
	return &stripeGateway{
		webhookSecret: webhookSecret,
		logger:        logger.With().Str("component", "stripe").Logger(),
	}
}

func (g *stripeGateway) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		g.logger.Error().Err(err).Int64("amount", amount).Msg("failed to create payment intent")
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	g.logger.Info().Str("intent_id", intent.ID).Int64("amount", amount).Msg("payment intent created")
	return intent, nil
}

func (g *stripeGateway) VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, g.webhookSecret)
	if err != nil {
		g.logger.Warn().Err(err).Msg("webhook signature verification failed")
		return stripe.Event{}, fmt.Errorf("webhook signature verification failed: %w", err)
	}
	return event, nil
}
