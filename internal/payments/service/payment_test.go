package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"docportal/internal/payments/validator"
	"docportal/pkg/config"
	mongotx "docportal/pkg/db/mongo"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/logger"
	"docportal/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockPaymentRepo struct {
	insert func(ctx context.Context, payment *model.Payment) error
}

func (m *mockPaymentRepo) Insert(ctx context.Context, payment *model.Payment) error {
	return m.insert(ctx, payment)
}

func (m *mockPaymentRepo) ExecuteTransaction(_ context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockGateway struct {
	createIntent func(ctx context.Context, amount int64, currency string) (string, error)
}

func (m *mockGateway) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	return m.createIntent(ctx, amount, currency)
}

type mockBookingMarker struct {
	markPaid func(ctx context.Context, id, transactionID string) (*mongo.UpdateResult, error)
}

func (m *mockBookingMarker) MarkPaid(ctx context.Context, id, transactionID string) (*mongo.UpdateResult, error) {
	return m.markPaid(ctx, id, transactionID)
}

func testConfig() *config.Config {
	return &config.Config{
		StripeCurrency: "usd",
		Log:            logger.New(logger.Config{Output: io.Discard}),
	}
}

func newTestService(repo *mockPaymentRepo, bookings *mockBookingMarker, gateway *mockGateway) PaymentService {
	cfg := testConfig()
	return NewPaymentService(repo, bookings, gateway, validator.NewPaymentValidator(cfg.Log), nil, cfg)
}

func validPayment() *model.Payment {
	return &model.Payment{
		BookingID:     "64a5f0c2e4b0a1b2c3d4e5f6",
		Email:         "jordan@example.com",
		Price:         30,
		TransactionID: "pi_3MtwBwLkdIwHu7ix28a3tqPa",
	}
}

func TestCreateIntentConvertsToMinorUnits(t *testing.T) {
	var gotAmount int64
	var gotCurrency string
	gateway := &mockGateway{
		createIntent: func(ctx context.Context, amount int64, currency string) (string, error) {
			gotAmount = amount
			gotCurrency = currency
			return "pi_secret_123", nil
		},
	}

	intent, err := newTestService(&mockPaymentRepo{}, &mockBookingMarker{}, gateway).
		CreateIntent(context.Background(), 49.99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAmount != 4999 {
		t.Errorf("expected amount 4999, got %d", gotAmount)
	}
	if gotCurrency != "usd" {
		t.Errorf("expected currency usd, got %s", gotCurrency)
	}
	if intent.ClientSecret != "pi_secret_123" {
		t.Errorf("unexpected client secret: %s", intent.ClientSecret)
	}
}

func TestCreateIntentRejectsNonPositivePrice(t *testing.T) {
	svc := newTestService(&mockPaymentRepo{}, &mockBookingMarker{}, &mockGateway{})

	for _, price := range []float64{0, -10} {
		_, err := svc.CreateIntent(context.Background(), price)
		if err == nil {
			t.Fatalf("expected error for price %v", price)
		}
		if apperrors.AsAppError(err).HTTPStatus != http.StatusBadRequest {
			t.Errorf("expected 400 for price %v, got %d", price, apperrors.AsAppError(err).HTTPStatus)
		}
	}
}

func TestCreateIntentProcessorFailure(t *testing.T) {
	gateway := &mockGateway{
		createIntent: func(ctx context.Context, amount int64, currency string) (string, error) {
			return "", errors.New("stripe: connection refused")
		},
	}

	_, err := newTestService(&mockPaymentRepo{}, &mockBookingMarker{}, gateway).
		CreateIntent(context.Background(), 30)
	if err == nil {
		t.Fatal("expected processor error")
	}
	if apperrors.AsAppError(err).HTTPStatus != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", apperrors.AsAppError(err).HTTPStatus)
	}
}

func TestRecordMarksBookingPaid(t *testing.T) {
	var markedID, markedTxn string
	repo := &mockPaymentRepo{
		insert: func(ctx context.Context, payment *model.Payment) error {
			payment.ID = "64b6f0c2e4b0a1b2c3d4e5f7"
			return nil
		},
	}
	bookings := &mockBookingMarker{
		markPaid: func(ctx context.Context, id, transactionID string) (*mongo.UpdateResult, error) {
			markedID = id
			markedTxn = transactionID
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
	}

	payment := validPayment()
	result, err := newTestService(repo, bookings, &mockGateway{}).Record(context.Background(), payment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Acknowledged || result.InsertedID != "64b6f0c2e4b0a1b2c3d4e5f7" {
		t.Errorf("unexpected result: %+v", result)
	}
	if markedID != payment.BookingID {
		t.Errorf("expected booking %s marked, got %s", payment.BookingID, markedID)
	}
	if markedTxn != payment.TransactionID {
		t.Errorf("expected transaction %s, got %s", payment.TransactionID, markedTxn)
	}
}

func TestRecordMissingBookingStillRecords(t *testing.T) {
	repo := &mockPaymentRepo{
		insert: func(ctx context.Context, payment *model.Payment) error {
			return nil
		},
	}
	bookings := &mockBookingMarker{
		markPaid: func(ctx context.Context, id, transactionID string) (*mongo.UpdateResult, error) {
			return &mongo.UpdateResult{MatchedCount: 0}, nil
		},
	}

	result, err := newTestService(repo, bookings, &mockGateway{}).Record(context.Background(), validPayment())
	if err != nil {
		t.Fatalf("settled charge must still be recorded, got: %v", err)
	}
	if !result.Acknowledged {
		t.Error("expected acknowledged result")
	}
}

func TestRecordValidationFails(t *testing.T) {
	payment := validPayment()
	payment.BookingID = "not-an-object-id"

	_, err := newTestService(&mockPaymentRepo{}, &mockBookingMarker{}, &mockGateway{}).
		Record(context.Background(), payment)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Errorf("expected validation code, got %s", apperrors.AsAppError(err).Code)
	}
}

func TestRecordInsertFailureAbortsBookingUpdate(t *testing.T) {
	marked := false
	repo := &mockPaymentRepo{
		insert: func(ctx context.Context, payment *model.Payment) error {
			return errors.New("write conflict")
		},
	}
	bookings := &mockBookingMarker{
		markPaid: func(ctx context.Context, id, transactionID string) (*mongo.UpdateResult, error) {
			marked = true
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}

	_, err := newTestService(repo, bookings, &mockGateway{}).Record(context.Background(), validPayment())
	if err == nil {
		t.Fatal("expected error")
	}
	if marked {
		t.Error("booking must not be marked when the payment insert fails")
	}
}
