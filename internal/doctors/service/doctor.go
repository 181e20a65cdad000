package service

import (
	"context"
	"errors"

	doctorserrors "docportal/internal/doctors/errors"
	"docportal/internal/doctors/repository"
	"docportal/internal/doctors/validator"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/model"
	"docportal/pkg/sanitizer"
)

type DoctorService interface {
	List(ctx context.Context) ([]*model.Doctor, error)
	Create(ctx context.Context, doctor *model.Doctor) (*model.InsertResult, error)
	Delete(ctx context.Context, id string) (*model.DeleteResult, error)
}

type doctorService struct {
	repo      repository.DoctorRepository
	validator *validator.DoctorValidator
	cfg       *config.Config
}

func NewDoctorService(repo repository.DoctorRepository, validator *validator.DoctorValidator, cfg *config.Config) DoctorService {
	return &doctorService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *doctorService) List(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list doctors", "error", err)
		return nil, apperrors.Internal("Failed to retrieve doctors", err)
	}

	return doctors, nil
}

func (s *doctorService) Create(ctx context.Context, doctor *model.Doctor) (*model.InsertResult, error) {
	doctor.Email = sanitizer.NormalizeEmail(doctor.Email)
	doctor.Name = sanitizer.NormalizeName(doctor.Name)
	doctor.Specialty = sanitizer.NormalizeTreatment(doctor.Specialty)

	if err := s.validator.Validate(doctor); err != nil {
		s.cfg.Log.Warn("Doctor validation failed", "error", err)
		return nil, apperrors.Validation("Doctor validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Insert(ctx, doctor); err != nil {
		s.cfg.Log.Error("Failed to create doctor", "error", err)
		return nil, apperrors.Internal("Failed to create doctor", err)
	}

	s.cfg.Log.Info("Doctor created", "id", doctor.ID, "specialty", doctor.Specialty)

	return &model.InsertResult{
		Acknowledged: true,
		InsertedID:   doctor.ID,
	}, nil
}

func (s *doctorService) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	result, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, doctorserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid doctor ID format")
		}
		s.cfg.Log.Error("Failed to delete doctor", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to delete doctor", err)
	}

	s.cfg.Log.Info("Doctor deleted", "id", id, "deleted_count", result.DeletedCount)

	return result, nil
}
