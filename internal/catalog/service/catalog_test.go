package service

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"

	"docportal/pkg/config"
	"docportal/pkg/logger"
	"docportal/pkg/model"
)

type mockCatalogRepo struct {
	findAll   func(ctx context.Context) ([]*model.AppointmentOption, error)
	findNames func(ctx context.Context) ([]*model.SpecialtyOption, error)
}

func (m *mockCatalogRepo) FindAll(ctx context.Context) ([]*model.AppointmentOption, error) {
	return m.findAll(ctx)
}

func (m *mockCatalogRepo) FindNames(ctx context.Context) ([]*model.SpecialtyOption, error) {
	return m.findNames(ctx)
}

type mockBookingFinder struct {
	findByDate func(ctx context.Context, date string) ([]*model.Booking, error)
}

func (m *mockBookingFinder) FindByDate(ctx context.Context, date string) ([]*model.Booking, error) {
	return m.findByDate(ctx, date)
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{Output: io.Discard}),
	}
}

func TestAvailabilityNoBookings(t *testing.T) {
	repo := &mockCatalogRepo{
		findAll: func(ctx context.Context) ([]*model.AppointmentOption, error) {
			return []*model.AppointmentOption{
				{Name: "Teeth Cleaning", Slots: []string{"8AM", "9AM", "10AM"}},
			}, nil
		},
	}
	bookings := &mockBookingFinder{
		findByDate: func(ctx context.Context, date string) ([]*model.Booking, error) {
			return nil, nil
		},
	}

	svc := NewCatalogService(repo, bookings, testConfig())

	options, err := svc.Availability(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(options))
	}
	want := []string{"8AM", "9AM", "10AM"}
	if !reflect.DeepEqual(options[0].Slots, want) {
		t.Errorf("expected slots %v, got %v", want, options[0].Slots)
	}
}

func TestAvailabilityExcludesBookedSlots(t *testing.T) {
	repo := &mockCatalogRepo{
		findAll: func(ctx context.Context) ([]*model.AppointmentOption, error) {
			return []*model.AppointmentOption{
				{Name: "Braces", Slots: []string{"9AM", "10AM"}},
				{Name: "Whitening", Slots: []string{"9AM", "10AM"}},
			}, nil
		},
	}
	bookings := &mockBookingFinder{
		findByDate: func(ctx context.Context, date string) ([]*model.Booking, error) {
			return []*model.Booking{
				{Treatment: "Braces", Slot: "9AM", AppointmentDate: date},
			}, nil
		},
	}

	svc := NewCatalogService(repo, bookings, testConfig())

	options, err := svc.Availability(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(options[0].Slots, []string{"10AM"}) {
		t.Errorf("expected Braces slots [10AM], got %v", options[0].Slots)
	}
	if !reflect.DeepEqual(options[1].Slots, []string{"9AM", "10AM"}) {
		t.Errorf("expected Whitening slots untouched, got %v", options[1].Slots)
	}
}

func TestAvailabilityAllSlotsBooked(t *testing.T) {
	repo := &mockCatalogRepo{
		findAll: func(ctx context.Context) ([]*model.AppointmentOption, error) {
			return []*model.AppointmentOption{
				{Name: "Braces", Slots: []string{"9AM", "10AM"}},
			}, nil
		},
	}
	bookings := &mockBookingFinder{
		findByDate: func(ctx context.Context, date string) ([]*model.Booking, error) {
			return []*model.Booking{
				{Treatment: "Braces", Slot: "9AM"},
				{Treatment: "Braces", Slot: "10AM"},
			}, nil
		},
	}

	svc := NewCatalogService(repo, bookings, testConfig())

	options, err := svc.Availability(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(options[0].Slots) != 0 {
		t.Errorf("expected no remaining slots, got %v", options[0].Slots)
	}
}

func TestAvailabilityKeepsDuplicateCatalogEntries(t *testing.T) {
	repo := &mockCatalogRepo{
		findAll: func(ctx context.Context) ([]*model.AppointmentOption, error) {
			return []*model.AppointmentOption{
				{Name: "Braces", Slots: []string{"9AM"}},
				{Name: "Braces", Slots: []string{"9AM", "10AM"}},
			}, nil
		},
	}
	bookings := &mockBookingFinder{
		findByDate: func(ctx context.Context, date string) ([]*model.Booking, error) {
			return []*model.Booking{
				{Treatment: "Braces", Slot: "9AM"},
			}, nil
		},
	}

	svc := NewCatalogService(repo, bookings, testConfig())

	options, err := svc.Availability(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(options) != 2 {
		t.Fatalf("expected duplicate entries preserved, got %d options", len(options))
	}
	if len(options[0].Slots) != 0 {
		t.Errorf("expected first entry emptied, got %v", options[0].Slots)
	}
	if !reflect.DeepEqual(options[1].Slots, []string{"10AM"}) {
		t.Errorf("expected second entry [10AM], got %v", options[1].Slots)
	}
}

func TestAvailabilityRepositoryError(t *testing.T) {
	repo := &mockCatalogRepo{
		findAll: func(ctx context.Context) ([]*model.AppointmentOption, error) {
			return nil, errors.New("connection reset")
		},
	}
	bookings := &mockBookingFinder{
		findByDate: func(ctx context.Context, date string) ([]*model.Booking, error) {
			return nil, nil
		},
	}

	svc := NewCatalogService(repo, bookings, testConfig())

	if _, err := svc.Availability(context.Background(), "2026-09-01"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestSpecialties(t *testing.T) {
	repo := &mockCatalogRepo{
		findNames: func(ctx context.Context) ([]*model.SpecialtyOption, error) {
			return []*model.SpecialtyOption{
				{ID: "1", Name: "Teeth Cleaning"},
				{ID: "2", Name: "Braces"},
			}, nil
		},
	}

	svc := NewCatalogService(repo, &mockBookingFinder{}, testConfig())

	names, err := svc.Specialties(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[1].Name != "Braces" {
		t.Errorf("unexpected specialties: %+v", names)
	}
}
