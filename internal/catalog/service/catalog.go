package service

import (
	"context"
	"sync"

	"docportal/internal/catalog/repository"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/model"
)

// BookingFinder is the slice of the bookings repository the availability
// computation needs.
type BookingFinder interface {
	FindByDate(ctx context.Context, date string) ([]*model.Booking, error)
}

type CatalogService interface {
	Availability(ctx context.Context, date string) ([]*model.AppointmentOption, error)
	Specialties(ctx context.Context) ([]*model.SpecialtyOption, error)
}

type catalogService struct {
	repo     repository.CatalogRepository
	bookings BookingFinder
	cfg      *config.Config
}

func NewCatalogService(repo repository.CatalogRepository, bookings BookingFinder, cfg *config.Config) CatalogService {
	return &catalogService{
		repo:     repo,
		bookings: bookings,
		cfg:      cfg,
	}
}

// Availability returns the catalog for a date with already-booked slots
// removed. A date with no bookings yields the catalog untouched; a date
// nobody validated (empty string) matches no bookings, which mirrors the
// lenient baseline behavior. Catalog duplicates are deliberately not
// deduplicated.
func (s *catalogService) Availability(ctx context.Context, date string) ([]*model.AppointmentOption, error) {

	var catalog []*model.AppointmentOption
	var booked []*model.Booking
	var errCatalog, errBooked error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		catalog, errCatalog = s.repo.FindAll(ctx)
		if errCatalog != nil {
			s.cfg.Log.Error("Failed to load appointment options", "error", errCatalog)
			errCatalog = apperrors.Internal("Failed to retrieve appointment options", errCatalog)
		}
	}()

	go func() {
		defer wg.Done()
		booked, errBooked = s.bookings.FindByDate(ctx, date)
		if errBooked != nil {
			s.cfg.Log.Error("Failed to load bookings for date", "date", date, "error", errBooked)
			errBooked = apperrors.Internal("Failed to retrieve bookings", errBooked)
		}
	}()

	wg.Wait()
	if errCatalog != nil {
		return nil, errCatalog
	}
	if errBooked != nil {
		return nil, errBooked
	}

	for _, option := range catalog {
		option.Slots = remainingSlots(option, booked)
	}

	return catalog, nil
}

func (s *catalogService) Specialties(ctx context.Context) ([]*model.SpecialtyOption, error) {
	names, err := s.repo.FindNames(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to load specialty names", "error", err)
		return nil, apperrors.Internal("Failed to retrieve specialties", err)
	}

	return names, nil
}

func remainingSlots(option *model.AppointmentOption, booked []*model.Booking) []string {
	bookedSlots := make(map[string]struct{})
	for _, b := range booked {
		if b.Treatment == option.Name {
			bookedSlots[b.Slot] = struct{}{}
		}
	}

	remaining := make([]string, 0, len(option.Slots))
	for _, slot := range option.Slots {
		if _, taken := bookedSlots[slot]; !taken {
			remaining = append(remaining, slot)
		}
	}

	return remaining
}
