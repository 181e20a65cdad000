package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"docportal/pkg/auth"

	"github.com/julienschmidt/httprouter"
)

type mockAdminChecker struct {
	isAdmin func(ctx context.Context, email string) (bool, error)
}

func (m *mockAdminChecker) IsAdmin(ctx context.Context, email string) (bool, error) {
	return m.isAdmin(ctx, email)
}

func passthrough(called *bool, gotClaims **auth.Claims) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		*called = true
		if gotClaims != nil {
			*gotClaims = ClaimsFromContext(r.Context())
		}
		w.WriteHeader(http.StatusOK)
	}
}

func TestRequireJWTMissingHeader(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Hour)
	called := false
	handle := RequireJWT(tm)(passthrough(&called, nil))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	handle(w, r, nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Unauthorized access!") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
	if called {
		t.Error("handler must not run without a token")
	}
}

func TestRequireJWTMalformedHeader(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Hour)
	called := false
	handle := RequireJWT(tm)(passthrough(&called, nil))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	r.Header.Set("Authorization", "Token abc123")
	handle(w, r, nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if called {
		t.Error("handler must not run")
	}
}

func TestRequireJWTBadToken(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Hour)
	called := false
	handle := RequireJWT(tm)(passthrough(&called, nil))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	r.Header.Set("Authorization", "Bearer not.a.valid.token")
	handle(w, r, nil)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Forbidden access!") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
	if called {
		t.Error("handler must not run")
	}
}

func TestRequireJWTValidToken(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Hour)
	token, err := tm.Issue("jordan@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	called := false
	var claims *auth.Claims
	handle := RequireJWT(tm)(passthrough(&called, &claims))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	handle(w, r, nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !called {
		t.Fatal("handler did not run")
	}
	if claims == nil || claims.Email != "jordan@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestRequireAdminWithoutClaims(t *testing.T) {
	admins := &mockAdminChecker{
		isAdmin: func(ctx context.Context, email string) (bool, error) { return true, nil },
	}
	called := false
	handle := RequireAdmin(admins)(passthrough(&called, nil))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/doctors", nil)
	handle(w, r, nil)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	if called {
		t.Error("handler must not run")
	}
}

func TestRequireAdminNonAdmin(t *testing.T) {
	admins := &mockAdminChecker{
		isAdmin: func(ctx context.Context, email string) (bool, error) { return false, nil },
	}
	called := false
	handle := RequireAdmin(admins)(passthrough(&called, nil))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/doctors", nil)
	ctx := context.WithValue(r.Context(), ClaimsKey, &auth.Claims{Email: "jordan@example.com"})
	handle(w, r.WithContext(ctx), nil)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	if called {
		t.Error("handler must not run")
	}
}

func TestRequireAdminCheckError(t *testing.T) {
	admins := &mockAdminChecker{
		isAdmin: func(ctx context.Context, email string) (bool, error) {
			return false, errors.New("connection reset")
		},
	}
	called := false
	handle := RequireAdmin(admins)(passthrough(&called, nil))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/doctors", nil)
	ctx := context.WithValue(r.Context(), ClaimsKey, &auth.Claims{Email: "jordan@example.com"})
	handle(w, r.WithContext(ctx), nil)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	if called {
		t.Error("handler must not run")
	}
}

func TestRequireAdminAllows(t *testing.T) {
	var gotEmail string
	admins := &mockAdminChecker{
		isAdmin: func(ctx context.Context, email string) (bool, error) {
			gotEmail = email
			return true, nil
		},
	}
	called := false
	handle := RequireAdmin(admins)(passthrough(&called, nil))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/doctors", nil)
	ctx := context.WithValue(r.Context(), ClaimsKey, &auth.Claims{Email: "admin@example.com"})
	handle(w, r.WithContext(ctx), nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !called {
		t.Error("handler did not run")
	}
	if gotEmail != "admin@example.com" {
		t.Errorf("admin check used wrong email: %s", gotEmail)
	}
}
