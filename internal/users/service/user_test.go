package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	userserrors "docportal/internal/users/errors"
	"docportal/internal/users/validator"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/logger"
	"docportal/pkg/model"
)

type mockUserRepo struct {
	findAll     func(ctx context.Context) ([]*model.User, error)
	findByEmail func(ctx context.Context, email string) (*model.User, error)
	insert      func(ctx context.Context, user *model.User) error
	delete      func(ctx context.Context, id string) (*model.DeleteResult, error)
	promote     func(ctx context.Context, id string) (*model.UpdateResult, error)
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]*model.User, error) {
	return m.findAll(ctx)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.findByEmail(ctx, email)
}

func (m *mockUserRepo) Insert(ctx context.Context, user *model.User) error {
	return m.insert(ctx, user)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	return m.delete(ctx, id)
}

func (m *mockUserRepo) PromoteToAdmin(ctx context.Context, id string) (*model.UpdateResult, error) {
	return m.promote(ctx, id)
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{Output: io.Discard}),
	}
}

func newTestService(repo *mockUserRepo) UserService {
	cfg := testConfig()
	return NewUserService(repo, validator.NewUserValidator(cfg.Log), cfg)
}

func TestIsAdminUnknownEmail(t *testing.T) {
	repo := &mockUserRepo{
		findByEmail: func(ctx context.Context, email string) (*model.User, error) {
			return nil, userserrors.ErrNotFound
		},
	}

	isAdmin, err := newTestService(repo).IsAdmin(context.Background(), "ghost@example.com")
	if err != nil {
		t.Fatalf("unknown email must not be an error, got: %v", err)
	}
	if isAdmin {
		t.Error("unknown email must not be admin")
	}
}

func TestIsAdminRegularUser(t *testing.T) {
	repo := &mockUserRepo{
		findByEmail: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{Email: email}, nil
		},
	}

	isAdmin, err := newTestService(repo).IsAdmin(context.Background(), "jordan@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if isAdmin {
		t.Error("user without role must not be admin")
	}
}

func TestIsAdminAdminUser(t *testing.T) {
	repo := &mockUserRepo{
		findByEmail: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{Email: email, Role: model.RoleAdmin}, nil
		},
	}

	isAdmin, err := newTestService(repo).IsAdmin(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isAdmin {
		t.Error("expected admin")
	}
}

func TestExists(t *testing.T) {
	repo := &mockUserRepo{
		findByEmail: func(ctx context.Context, email string) (*model.User, error) {
			if email == "jordan@example.com" {
				return &model.User{Email: email}, nil
			}
			return nil, userserrors.ErrNotFound
		},
	}

	svc := newTestService(repo)

	exists, err := svc.Exists(context.Background(), "jordan@example.com")
	if err != nil || !exists {
		t.Errorf("expected existing user, got exists=%v err=%v", exists, err)
	}

	exists, err = svc.Exists(context.Background(), "ghost@example.com")
	if err != nil || exists {
		t.Errorf("expected absent user, got exists=%v err=%v", exists, err)
	}
}

func TestCreateUser(t *testing.T) {
	repo := &mockUserRepo{
		insert: func(ctx context.Context, user *model.User) error {
			user.ID = "64a5f0c2e4b0a1b2c3d4e5f6"
			return nil
		},
	}

	result, err := newTestService(repo).Create(context.Background(), &model.User{
		Name:  "Jordan Smith",
		Email: " Jordan@Example.com ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Acknowledged || result.InsertedID == "" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestCreateUserValidationFails(t *testing.T) {
	_, err := newTestService(&mockUserRepo{}).Create(context.Background(), &model.User{
		Email: "not-an-email",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Errorf("expected validation code, got %s", apperrors.AsAppError(err).Code)
	}
}

func TestPromoteInvalidID(t *testing.T) {
	repo := &mockUserRepo{
		promote: func(ctx context.Context, id string) (*model.UpdateResult, error) {
			return nil, userserrors.ErrInvalidID
		},
	}

	_, err := newTestService(repo).Promote(context.Background(), "nonsense")
	if err == nil {
		t.Fatal("expected error")
	}
	if apperrors.AsAppError(err).HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", apperrors.AsAppError(err).HTTPStatus)
	}
}

func TestPromoteUpsertsAbsentUser(t *testing.T) {
	repo := &mockUserRepo{
		promote: func(ctx context.Context, id string) (*model.UpdateResult, error) {
			return &model.UpdateResult{
				Acknowledged: true,
				UpsertedID:   id,
			}, nil
		},
	}

	result, err := newTestService(repo).Promote(context.Background(), "64a5f0c2e4b0a1b2c3d4e5f6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.UpsertedID != "64a5f0c2e4b0a1b2c3d4e5f6" {
		t.Errorf("expected upserted id, got %+v", result)
	}
}

func TestDeleteUser(t *testing.T) {
	repo := &mockUserRepo{
		delete: func(ctx context.Context, id string) (*model.DeleteResult, error) {
			return &model.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		},
	}

	result, err := newTestService(repo).Delete(context.Background(), "64a5f0c2e4b0a1b2c3d4e5f6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.DeletedCount != 1 {
		t.Errorf("expected one deletion, got %+v", result)
	}
}

func TestLookupsMatchStoredEmailCase(t *testing.T) {
	store := make(map[string]*model.User)
	repo := &mockUserRepo{
		insert: func(ctx context.Context, user *model.User) error {
			user.ID = "64a5f0c2e4b0a1b2c3d4e5f6"
			store[user.Email] = user
			return nil
		},
		findByEmail: func(ctx context.Context, email string) (*model.User, error) {
			if user, ok := store[email]; ok {
				return user, nil
			}
			return nil, userserrors.ErrNotFound
		},
	}

	svc := newTestService(repo)

	if _, err := svc.Create(context.Background(), &model.User{
		Name:  "Jordan Smith",
		Email: "Jordan@Example.com",
		Role:  model.RoleAdmin,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exists, err := svc.Exists(context.Background(), "Jordan@Example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("user created with mixed-case email not found with the same string")
	}

	isAdmin, err := svc.IsAdmin(context.Background(), "JORDAN@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isAdmin {
		t.Error("admin lookup must be case-insensitive")
	}
}

func TestIsAdminRepositoryError(t *testing.T) {
	repo := &mockUserRepo{
		findByEmail: func(ctx context.Context, email string) (*model.User, error) {
			return nil, errors.New("connection reset")
		},
	}

	if _, err := newTestService(repo).IsAdmin(context.Background(), "jordan@example.com"); err == nil {
		t.Fatal("expected error")
	}
}
