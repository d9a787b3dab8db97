package payment

import (
	"errors"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/webhook"
)

var ErrWebhookSecretMissing = errors.New("stripe webhook secret is not set")

type StripeService struct {
	secretKey     string
	webhookSecret string
	currency      string
}

func NewStripeService(secretKey, webhookSecret, currency string) *StripeService {
	stripe.Key = secretKey
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &StripeService{
		secretKey:     secretKey,
		webhookSecret: webhookSecret,
		currency:      currency,
	}
}

// CreatePaymentIntent asks Stripe for a card intent. amount is already in minor units.
func (s *StripeService) CreatePaymentIntent(amount int64, metadata map[string]string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(s.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	return paymentintent.New(params)
}

// ConstructEvent verifies the Stripe-Signature header against the raw request body.
func (s *StripeService) ConstructEvent(payload []byte, signature string) (stripe.Event, error) {
	if s.webhookSecret == "" {
		return stripe.Event{}, ErrWebhookSecretMissing
	}
	return webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
}
