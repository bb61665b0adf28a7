// Package payment integrates Stripe as the payment collaborator.
// Status changes come back through webhooks and are mapped onto the
// configuration's payment state machine.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/paymentintent"
	"github.com/stripe/stripe-go/v72/webhook"

	"github.com/salasintercc/expo-admin-api/internal/domain"
)

const metadataConfigID = "stand_config_id"

type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// StatusUpdate is a webhook event translated into domain terms.
type StatusUpdate struct {
	ConfigID uint
	Status   domain.PaymentStatus
}

type StripeClient struct {
	webhookSecret string
	currency      string
}

func NewStripeClient(apiKey, webhookSecret, currency string) *StripeClient {
	stripe.Key = apiKey
	if currency == "" {
		currency = "eur"
	}

	return &StripeClient{
		webhookSecret: webhookSecret,
		currency:      currency,
	}
}

// CreateIntent opens a payment intent for a submitted configuration.
// The config id rides along as metadata so the webhook can find its way
// back.
func (c *StripeClient) CreateIntent(ctx context.Context, cfg domain.StandConfig) (Intent, error) {
	if !cfg.IsSubmitted {
		return Intent{}, domain.ErrConfigNotSubmitted
	}

	amount := int64(math.Round(cfg.EffectiveTotal() * 100))

	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(c.currency),
	}
	params.AddMetadata(metadataConfigID, strconv.FormatUint(uint64(cfg.ID), 10))

	intent, err := paymentintent.New(params)
	if err != nil {
		return Intent{}, &domain.UpstreamUnavailableError{Upstream: "stripe", Err: err}
	}

	return Intent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     string(intent.Currency),
	}, nil
}

// ParseWebhook verifies the signature and maps the intent event onto a
// payment status. Events that do not concern payment intents, or carry
// no config id, return (nil, nil) and should be acknowledged without
// action.
func (c *StripeClient) ParseWebhook(payload []byte, signature string) (*StatusUpdate, error) {
	event, err := webhook.ConstructEvent(payload, signature, c.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("webhook.ConstructEvent -> %w", err)
	}

	var status domain.PaymentStatus
	switch event.Type {
	case "payment_intent.processing":
		status = domain.PaymentProcessing
	case "payment_intent.succeeded":
		status = domain.PaymentCompleted
	case "payment_intent.canceled", "payment_intent.payment_failed":
		status = domain.PaymentCancelled
	default:
		return nil, nil
	}

	var intent stripe.PaymentIntent
	if err = json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return nil, fmt.Errorf("json.Unmarshal -> %w", err)
	}

	raw, ok := intent.Metadata[metadataConfigID]
	if !ok {
		return nil, nil
	}

	configID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("strconv.ParseUint(%q) -> %w", raw, err)
	}

	return &StatusUpdate{
		ConfigID: uint(configID),
		Status:   status,
	}, nil
}
