package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"barangayconnect/api/internal/config"
	"barangayconnect/api/internal/models"
	"barangayconnect/api/internal/payments"
	"barangayconnect/api/internal/repository"
)

type fakePaymentStore struct {
	byID map[string]models.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{byID: make(map[string]models.Payment)}
}

func (f *fakePaymentStore) Insert(_ context.Context, payment models.Payment) error {
	f.byID[payment.PaymentID] = payment
	return nil
}

func (f *fakePaymentStore) FindForUser(_ context.Context, paymentID, userID string) (models.Payment, error) {
	p, ok := f.byID[paymentID]
	if !ok || p.UserID != userID {
		return models.Payment{}, repository.ErrPaymentNotFound
	}
	return p, nil
}

func (f *fakePaymentStore) ListByUser(_ context.Context, userID string, _ int64) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range f.byID {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentStore) UpdateFields(_ context.Context, paymentID string, fields bson.M) error {
	p, ok := f.byID[paymentID]
	if !ok {
		return repository.ErrPaymentNotFound
	}
	if txn, ok := fields["transaction_id"].(string); ok {
		p.TransactionID = &txn
	}
	if url, ok := fields["metadata.checkout_url"].(string); ok {
		if p.Metadata == nil {
			p.Metadata = map[string]string{}
		}
		p.Metadata["checkout_url"] = url
	}
	f.byID[paymentID] = p
	return nil
}

func (f *fakePaymentStore) SettleByTransaction(_ context.Context, transactionID string, status models.PaymentStatus) (models.Payment, error) {
	for id, p := range f.byID {
		if p.TransactionID != nil && *p.TransactionID == transactionID {
			p.Status = status
			p.UpdatedAt = time.Now().UTC()
			f.byID[id] = p
			return p, nil
		}
	}
	return models.Payment{}, repository.ErrPaymentNotFound
}

func (f *fakePaymentStore) Count(context.Context) (int64, error) {
	return int64(len(f.byID)), nil
}

func (f *fakePaymentStore) CountByStatus(_ context.Context, status models.PaymentStatus) (int64, error) {
	var n int64
	for _, p := range f.byID {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakePaymentStore) SumByStatus(_ context.Context, status models.PaymentStatus) (float64, error) {
	var total float64
	for _, p := range f.byID {
		if p.Status == status {
			total += p.Amount
		}
	}
	return total, nil
}

type fakeNotificationStore struct {
	inserted []models.Notification
}

func (f *fakeNotificationStore) Insert(_ context.Context, n models.Notification) error {
	f.inserted = append(f.inserted, n)
	return nil
}

func (f *fakeNotificationStore) ListByRecipient(context.Context, string, int64) ([]models.Notification, error) {
	return f.inserted, nil
}

func (f *fakeNotificationStore) MarkRead(context.Context, string, string) error { return nil }

type fakeProvider struct {
	session    payments.CheckoutSession
	createErr  error
	event      payments.Event
	verifyErr  error
	lastInput  payments.CheckoutInput
	lastHeader string
}

func (f *fakeProvider) CreateCheckout(_ context.Context, input payments.CheckoutInput) (payments.CheckoutSession, error) {
	f.lastInput = input
	if f.createErr != nil {
		return payments.CheckoutSession{}, f.createErr
	}
	return f.session, nil
}

func (f *fakeProvider) VerifyEvent(_ []byte, signatureHeader string) (payments.Event, error) {
	f.lastHeader = signatureHeader
	if f.verifyErr != nil {
		return payments.Event{}, f.verifyErr
	}
	return f.event, nil
}

func newPaymentFixture() (*PaymentService, *fakePaymentStore, *fakeNotificationStore, *fakeProvider) {
	store := newFakePaymentStore()
	notifications := &fakeNotificationStore{}
	provider := &fakeProvider{}
	cfg := &config.AppConfig{
		Payments: config.PaymentsConfig{Currency: "php"},
	}
	svc := NewPaymentService(store, notifications, provider, cfg, zerolog.Nop())
	return svc, store, notifications, provider
}

func TestCreatePaymentStripeOpensCheckout(t *testing.T) {
	svc, store, _, provider := newPaymentFixture()
	provider.session = payments.CheckoutSession{
		SessionID: "cs_test_123",
		URL:       "https://checkout.stripe.com/pay/cs_test_123",
	}

	result, err := svc.CreatePayment(context.Background(), CreatePaymentInput{
		User:          models.User{UserID: "user_1"},
		Amount:        1500.50,
		PaymentMethod: models.PaymentMethodStripe,
		HostURL:       "https://hoa.example.com",
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if result.Status != models.PaymentStatusPending {
		t.Fatalf("status %q, want pending", result.Status)
	}
	if result.CheckoutURL != provider.session.URL {
		t.Fatalf("checkout url %q", result.CheckoutURL)
	}

	if provider.lastInput.AmountCents != 150050 {
		t.Fatalf("amount cents %d, want 150050", provider.lastInput.AmountCents)
	}
	if provider.lastInput.Currency != "php" {
		t.Fatalf("currency %q", provider.lastInput.Currency)
	}

	stored := store.byID[result.PaymentID]
	if stored.TransactionID == nil || *stored.TransactionID != "cs_test_123" {
		t.Fatal("transaction id not recorded")
	}
	if stored.Metadata["checkout_url"] != provider.session.URL {
		t.Fatal("checkout url not recorded in metadata")
	}
}

func TestCreatePaymentNonStripeSkipsProvider(t *testing.T) {
	svc, store, _, provider := newPaymentFixture()
	provider.createErr = errors.New("must not be called")

	result, err := svc.CreatePayment(context.Background(), CreatePaymentInput{
		User:          models.User{UserID: "user_1"},
		Amount:        500,
		PaymentMethod: models.PaymentMethodGCash,
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if result.CheckoutURL != "" {
		t.Fatal("no checkout expected for gcash")
	}
	if store.byID[result.PaymentID].Status != models.PaymentStatusPending {
		t.Fatal("payment not recorded as pending")
	}
}

func TestCreatePaymentRejectsNonPositiveAmount(t *testing.T) {
	svc, store, _, _ := newPaymentFixture()

	if _, err := svc.CreatePayment(context.Background(), CreatePaymentInput{
		User:          models.User{UserID: "user_1"},
		Amount:        0,
		PaymentMethod: models.PaymentMethodStripe,
	}); err == nil {
		t.Fatal("expected rejection of zero amount")
	}
	if len(store.byID) != 0 {
		t.Fatal("no payment row should exist")
	}
}

func TestHandleWebhookSettlesAndNotifies(t *testing.T) {
	svc, store, notifications, provider := newPaymentFixture()

	txn := "cs_test_456"
	store.byID["pay_1"] = models.Payment{
		PaymentID:     "pay_1",
		UserID:        "user_1",
		Amount:        1200,
		Status:        models.PaymentStatusPending,
		TransactionID: &txn,
	}
	provider.event = payments.Event{Type: "checkout.session.completed", SessionID: txn}

	if err := svc.HandleWebhook(context.Background(), []byte(`{}`), "sig-header"); err != nil {
		t.Fatalf("webhook: %v", err)
	}
	if provider.lastHeader != "sig-header" {
		t.Fatalf("signature header %q not passed through", provider.lastHeader)
	}
	if store.byID["pay_1"].Status != models.PaymentStatusSuccessful {
		t.Fatalf("status %q, want successful", store.byID["pay_1"].Status)
	}
	if len(notifications.inserted) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications.inserted))
	}
	if notifications.inserted[0].RecipientID != "user_1" {
		t.Fatalf("notification recipient %q", notifications.inserted[0].RecipientID)
	}
	if notifications.inserted[0].Type != models.NotificationPaymentSuccess {
		t.Fatalf("notification type %q", notifications.inserted[0].Type)
	}
}

func TestHandleWebhookIgnoresOtherEvents(t *testing.T) {
	svc, store, notifications, provider := newPaymentFixture()
	provider.event = payments.Event{Type: "charge.refunded", SessionID: "cs_x"}

	if err := svc.HandleWebhook(context.Background(), []byte(`{}`), "sig"); err != nil {
		t.Fatalf("webhook: %v", err)
	}
	if len(store.byID) != 0 || len(notifications.inserted) != 0 {
		t.Fatal("nothing should change for unrelated events")
	}
}

func TestHandleWebhookBadSignature(t *testing.T) {
	svc, _, _, provider := newPaymentFixture()
	provider.verifyErr = errors.New("signature mismatch")

	if err := svc.HandleWebhook(context.Background(), []byte(`{}`), "bad"); err == nil {
		t.Fatal("expected verification error")
	}
}
