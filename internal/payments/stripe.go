// Package payments adapts the external checkout provider behind a narrow
// interface so the payment service never sees provider types.
package payments

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"barangayconnect/api/internal/config"
)

type CheckoutInput struct {
	AmountCents int64
	Currency    string
	Description string
	SuccessURL  string
	CancelURL   string
	PaymentID   string
	UserID      string
}

type CheckoutSession struct {
	SessionID string
	URL       string
}

// Event is the subset of a webhook notification the service acts on.
type Event struct {
	Type      string
	SessionID string
}

type StripeProvider struct {
	api           *client.API
	webhookSecret string
}

func NewStripeProvider(cfg config.PaymentsConfig) *StripeProvider {
	api := &client.API{}
	api.Init(cfg.StripeAPIKey, nil)
	return &StripeProvider{
		api:           api,
		webhookSecret: cfg.StripeWebhookSecret,
	}
}

func (p *StripeProvider) CreateCheckout(ctx context.Context, input CheckoutInput) (CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
		Mode:   stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(input.Currency),
				UnitAmount: stripe.Int64(input.AmountCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(input.Description),
				},
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(input.SuccessURL),
		CancelURL:  stripe.String(input.CancelURL),
	}
	params.AddMetadata("payment_id", input.PaymentID)
	params.AddMetadata("user_id", input.UserID)

	session, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("create checkout session: %w", err)
	}

	return CheckoutSession{SessionID: session.ID, URL: session.URL}, nil
}

// VerifyEvent checks the webhook signature and extracts the checkout session
// id. Unverifiable payloads are rejected before anything is read from them.
func (p *StripeProvider) VerifyEvent(payload []byte, signatureHeader string) (Event, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, p.webhookSecret)
	if err != nil {
		return Event{}, fmt.Errorf("verify webhook: %w", err)
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return Event{}, fmt.Errorf("decode webhook object: %w", err)
	}

	return Event{Type: string(event.Type), SessionID: session.ID}, nil
}
