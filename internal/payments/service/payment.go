package service

import (
	"context"
	"errors"
	"math"
	"net/http"

	bookingserrors "docportal/internal/bookings/errors"
	"docportal/internal/payments/repository"
	"docportal/internal/payments/stripe"
	"docportal/internal/payments/validator"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/kafka"
	"docportal/pkg/model"
	"docportal/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingMarker is the slice of the bookings repository a payment recording
// needs to flip the booking to paid.
type BookingMarker interface {
	MarkPaid(ctx context.Context, id, transactionID string) (*mongo.UpdateResult, error)
}

type PaymentService interface {
	CreateIntent(ctx context.Context, price float64) (*model.PaymentIntent, error)
	Record(ctx context.Context, payment *model.Payment) (*model.InsertResult, error)
}

type paymentService struct {
	repo      repository.PaymentRepository
	bookings  BookingMarker
	gateway   stripe.Gateway
	validator *validator.PaymentValidator
	events    *kafka.Producer
	cfg       *config.Config
}

func NewPaymentService(
	repo repository.PaymentRepository,
	bookings BookingMarker,
	gateway stripe.Gateway,
	validator *validator.PaymentValidator,
	events *kafka.Producer,
	cfg *config.Config,
) PaymentService {
	return &paymentService{
		repo:      repo,
		bookings:  bookings,
		gateway:   gateway,
		validator: validator,
		events:    events,
		cfg:       cfg,
	}
}

// CreateIntent requests a card-only authorization for the price converted to
// minor currency units.
func (s *paymentService) CreateIntent(ctx context.Context, price float64) (*model.PaymentIntent, error) {
	if price <= 0 {
		return nil, apperrors.InvalidInput("Price must be greater than zero")
	}

	amount := int64(math.Round(price * 100))

	clientSecret, err := s.gateway.CreateIntent(ctx, amount, s.cfg.StripeCurrency)
	if err != nil {
		s.cfg.Log.Error("Payment processor call failed", "amount", amount, "error", err)
		return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "Payment processor is temporarily unavailable", http.StatusBadGateway)
	}

	return &model.PaymentIntent{ClientSecret: clientSecret}, nil
}

// Record persists the payment and marks the referenced booking paid in one
// transaction. A transaction id for a booking that no longer exists is still
// recorded; the missing booking is logged, not failed, since the charge has
// already settled.
func (s *paymentService) Record(ctx context.Context, payment *model.Payment) (*model.InsertResult, error) {
	payment.Email = sanitizer.NormalizeEmail(payment.Email)

	if err := s.validator.Validate(payment); err != nil {
		s.cfg.Log.Warn("Payment validation failed", "error", err)
		return nil, apperrors.Validation("Payment validation failed", map[string]any{"error": err.Error()})
	}

	var result *model.InsertResult
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Insert(sessCtx, payment); err != nil {
			return apperrors.Internal("Failed to record payment", err)
		}

		updateResult, err := s.bookings.MarkPaid(sessCtx, payment.BookingID, payment.TransactionID)
		if err != nil {
			if errors.Is(err, bookingserrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid booking ID format")
			}
			return apperrors.Internal("Failed to mark booking paid", err)
		}
		if updateResult.MatchedCount == 0 {
			s.cfg.Log.Warn("Payment recorded for missing booking",
				"booking_id", payment.BookingID,
				"transaction_id", payment.TransactionID,
			)
		}

		result = &model.InsertResult{
			Acknowledged: true,
			InsertedID:   payment.ID,
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to record payment", "booking_id", payment.BookingID, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Payment recorded",
		"id", payment.ID,
		"booking_id", payment.BookingID,
		"transaction_id", payment.TransactionID,
	)
	s.publishRecorded(ctx, payment)

	return result, nil
}

func (s *paymentService) publishRecorded(ctx context.Context, payment *model.Payment) {
	if s.events == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(payment.BookingID).
		WithValue(payment).
		WithEventType("payment.recorded").
		WithSource("portal-api").
		Build()

	if err := s.events.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish payment.recorded event",
			"payment_id", payment.ID,
			"error", err,
		)
	}
}
