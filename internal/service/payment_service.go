package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"barangayconnect/api/internal/config"
	"barangayconnect/api/internal/ids"
	"barangayconnect/api/internal/models"
	"barangayconnect/api/internal/payments"
	"barangayconnect/api/internal/repository"
)

// CheckoutProvider is the external payment boundary. Implemented by
// payments.StripeProvider; faked in tests.
type CheckoutProvider interface {
	CreateCheckout(ctx context.Context, input payments.CheckoutInput) (payments.CheckoutSession, error)
	VerifyEvent(payload []byte, signatureHeader string) (payments.Event, error)
}

type PaymentService struct {
	payments      repository.PaymentStore
	notifications repository.NotificationStore
	provider      CheckoutProvider
	cfg           *config.AppConfig
	log           zerolog.Logger
}

func NewPaymentService(
	paymentStore repository.PaymentStore,
	notifications repository.NotificationStore,
	provider CheckoutProvider,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		payments:      paymentStore,
		notifications: notifications,
		provider:      provider,
		cfg:           cfg,
		log:           log,
	}
}

type CreatePaymentInput struct {
	User          models.User
	Amount        float64
	PaymentMethod models.PaymentMethod
	Description   string
	Metadata      map[string]string
	// HostURL is the request origin, used to build the success/cancel pages.
	HostURL string
}

type CreatePaymentResult struct {
	PaymentID   string
	Status      models.PaymentStatus
	CheckoutURL string
	SessionID   string
}

// CreatePayment records a pending dues payment. For the hosted-checkout
// method it also opens a provider session and stores the transaction id.
func (s *PaymentService) CreatePayment(ctx context.Context, input CreatePaymentInput) (CreatePaymentResult, error) {
	if input.Amount <= 0 {
		return CreatePaymentResult{}, fmt.Errorf("amount must be positive")
	}

	description := input.Description
	if description == "" {
		description = "HOA Dues Payment"
	}
	metadata := input.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}

	now := time.Now().UTC()
	payment := models.Payment{
		PaymentID:     ids.NewPrefixed("pay"),
		UserID:        input.User.UserID,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		Status:        models.PaymentStatusPending,
		Description:   description,
		Metadata:      metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.payments.Insert(ctx, payment); err != nil {
		return CreatePaymentResult{}, err
	}

	if input.PaymentMethod != models.PaymentMethodStripe {
		return CreatePaymentResult{PaymentID: payment.PaymentID, Status: payment.Status}, nil
	}

	session, err := s.provider.CreateCheckout(ctx, payments.CheckoutInput{
		AmountCents: int64(math.Round(input.Amount * 100)),
		Currency:    s.cfg.Payments.Currency,
		Description: description,
		SuccessURL:  input.HostURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   input.HostURL + "/payments",
		PaymentID:   payment.PaymentID,
		UserID:      input.User.UserID,
	})
	if err != nil {
		return CreatePaymentResult{}, fmt.Errorf("open checkout: %w", err)
	}

	if err := s.payments.UpdateFields(ctx, payment.PaymentID, bson.M{
		"transaction_id":        session.SessionID,
		"metadata.checkout_url": session.URL,
	}); err != nil {
		return CreatePaymentResult{}, err
	}

	return CreatePaymentResult{
		PaymentID:   payment.PaymentID,
		Status:      payment.Status,
		CheckoutURL: session.URL,
		SessionID:   session.SessionID,
	}, nil
}

// HandleWebhook verifies a provider notification and settles the matching
// payment. A completed checkout also drops a payment_success notification
// for the payer; that insert failing never fails the webhook.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := s.provider.VerifyEvent(payload, signatureHeader)
	if err != nil {
		return err
	}

	if event.Type != "checkout.session.completed" {
		return nil
	}

	payment, err := s.payments.SettleByTransaction(ctx, event.SessionID, models.PaymentStatusSuccessful)
	if err != nil {
		return fmt.Errorf("settle payment: %w", err)
	}

	notification := models.Notification{
		NotificationID: ids.NewPrefixed("notif"),
		Title:          "Payment received",
		Message:        fmt.Sprintf("Your dues payment of %.2f was received.", payment.Amount),
		Type:           models.NotificationPaymentSuccess,
		RecipientID:    payment.UserID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.notifications.Insert(ctx, notification); err != nil {
		s.log.Warn().Err(err).Str("payment_id", payment.PaymentID).Msg("payment notification insert failed")
	}

	return nil
}
