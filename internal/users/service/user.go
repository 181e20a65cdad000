package service

import (
	"context"
	"errors"

	userserrors "docportal/internal/users/errors"
	"docportal/internal/users/repository"
	"docportal/internal/users/validator"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/model"
	"docportal/pkg/sanitizer"
)

type UserService interface {
	List(ctx context.Context) ([]*model.User, error)
	Create(ctx context.Context, user *model.User) (*model.InsertResult, error)
	Delete(ctx context.Context, id string) (*model.DeleteResult, error)
	Promote(ctx context.Context, id string) (*model.UpdateResult, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	Exists(ctx context.Context, email string) (bool, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	cfg       *config.Config
}

func NewUserService(repo repository.UserRepository, validator *validator.UserValidator, cfg *config.Config) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *userService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "error", err)
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}

	return users, nil
}

// Create inserts unconditionally. Social sign-in retries the upsert on the
// client side, so a duplicate email here is a data issue surfaced by the
// index, not a flow the API guards against.
func (s *userService) Create(ctx context.Context, user *model.User) (*model.InsertResult, error) {
	user.Email = sanitizer.NormalizeEmail(user.Email)
	user.Name = sanitizer.NormalizeName(user.Name)

	if err := s.validator.Validate(user); err != nil {
		s.cfg.Log.Warn("User validation failed", "error", err)
		return nil, apperrors.Validation("User validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		s.cfg.Log.Error("Failed to create user", "error", err)
		return nil, apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User created", "id", user.ID, "email", user.Email)

	return &model.InsertResult{
		Acknowledged: true,
		InsertedID:   user.ID,
	}, nil
}

func (s *userService) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	result, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		s.cfg.Log.Error("Failed to delete user", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to delete user", err)
	}

	s.cfg.Log.Info("User deleted", "id", id, "deleted_count", result.DeletedCount)

	return result, nil
}

func (s *userService) Promote(ctx context.Context, id string) (*model.UpdateResult, error) {
	result, err := s.repo.PromoteToAdmin(ctx, id)
	if err != nil {
		if errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		s.cfg.Log.Error("Failed to promote user", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to promote user", err)
	}

	s.cfg.Log.Info("User promoted to admin", "id", id, "matched", result.MatchedCount)

	return result, nil
}

// IsAdmin reports whether the user holds the admin role. An unknown email is
// simply not an admin, never an error. The lookup is normalized the same way
// Create normalizes before storing, so a mixed-case caller still matches.
func (s *userService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.FindByEmail(ctx, sanitizer.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return false, nil
		}
		return false, apperrors.Internal("Failed to check admin role", err)
	}

	return user.IsAdmin(), nil
}

func (s *userService) Exists(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.FindByEmail(ctx, sanitizer.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return false, nil
		}
		return false, apperrors.Internal("Failed to look up user", err)
	}

	return true, nil
}
