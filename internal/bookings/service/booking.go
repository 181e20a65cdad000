package service

import (
	"context"
	"errors"
	"fmt"

	bookingserrors "docportal/internal/bookings/errors"
	"docportal/internal/bookings/repository"
	"docportal/internal/bookings/validator"
	"docportal/pkg/auth"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/kafka"
	"docportal/pkg/model"
	"docportal/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) (*model.InsertResult, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListForEmail(ctx context.Context, email string, claims *auth.Claims) ([]*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	events    *kafka.Producer
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	events *kafka.Producer,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validator,
		events:    events,
		cfg:       cfg,
	}
}

// Create persists a booking unless the patient already holds one for the
// same date and treatment. The check and the insert run in one transaction,
// and the unique index on (appointmentDate, email, treatment) backstops the
// race between two concurrent creates; both paths surface the same
// acknowledged:false body the frontend expects, never an error status.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) (*model.InsertResult, error) {
	s.sanitize(booking)
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	duplicateResult := &model.InsertResult{
		Acknowledged: false,
		Message:      fmt.Sprintf("You already have a booking on %s", booking.AppointmentDate),
	}

	var result *model.InsertResult
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		count, err := s.repo.CountByTriple(sessCtx, booking.AppointmentDate, booking.Email, booking.Treatment)
		if err != nil {
			return apperrors.Internal("Failed to check existing bookings", err)
		}
		if count > 0 {
			result = duplicateResult
			return nil
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			if errors.Is(err, bookingserrors.ErrDuplicate) {
				result = duplicateResult
				return nil
			}
			return apperrors.Internal("Failed to create booking", err)
		}

		result = &model.InsertResult{
			Acknowledged: true,
			InsertedID:   booking.ID,
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return nil, err
	}

	if result.Acknowledged {
		s.cfg.Log.Info("Booking created successfully",
			"id", booking.ID,
			"date", booking.AppointmentDate,
			"treatment", booking.Treatment,
			"slot", booking.Slot,
		)
		s.publishCreated(ctx, booking)
	}

	return result, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			// Absent bookings are a 200/null on the wire, not a 404.
			return nil, nil
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

// ListForEmail returns the caller's own bookings. The email being listed
// must match the verified token claim; patients cannot read each other's
// bookings. Both sides are normalized before comparing, and the query uses
// the normalized form bookings are stored under.
func (s *bookingService) ListForEmail(ctx context.Context, email string, claims *auth.Claims) ([]*model.Booking, error) {
	email = sanitizer.NormalizeEmail(email)
	if claims == nil || sanitizer.NormalizeEmail(claims.Email) != email {
		return nil, apperrors.Forbidden("Forbidden access!")
	}

	bookings, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "email", email, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return bookings, nil
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.AppointmentDate = sanitizer.TrimAndNormalize(b.AppointmentDate)
	b.Email = sanitizer.NormalizeEmail(b.Email)
	b.PatientName = sanitizer.NormalizeName(b.PatientName)
	b.Treatment = sanitizer.NormalizeTreatment(b.Treatment)
	b.Slot = sanitizer.NormalizeSlot(b.Slot)
}

func (s *bookingService) publishCreated(ctx context.Context, booking *model.Booking) {
	if s.events == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(booking.Email).
		WithValue(booking).
		WithEventType("booking.created").
		WithSource("portal-api").
		Build()

	if err := s.events.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish booking.created event",
			"booking_id", booking.ID,
			"error", err,
		)
	}
}
