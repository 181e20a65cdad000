package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"docportal/pkg/auth"
	"docportal/pkg/logger"
)

type mockUserChecker struct {
	exists func(ctx context.Context, email string) (bool, error)
}

func (m *mockUserChecker) Exists(ctx context.Context, email string) (bool, error) {
	return m.exists(ctx, email)
}

func newTestHandler(users UserChecker) *TokenHandler {
	tm := auth.NewTokenManager("test-secret", time.Hour)
	log := logger.New(logger.Config{Output: io.Discard})
	return NewTokenHandler(tm, users, log)
}

func TestIssueKnownUser(t *testing.T) {
	h := newTestHandler(&mockUserChecker{
		exists: func(ctx context.Context, email string) (bool, error) { return true, nil },
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/jwt?email=jordan@example.com", nil)
	h.Issue(w, r, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body tokenResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.AccessToken == "" {
		t.Fatal("expected a token")
	}

	tm := auth.NewTokenManager("test-secret", time.Hour)
	claims, err := tm.Parse(body.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Email != "jordan@example.com" {
		t.Errorf("unexpected email claim: %s", claims.Email)
	}
}

func TestIssueUnknownUser(t *testing.T) {
	h := newTestHandler(&mockUserChecker{
		exists: func(ctx context.Context, email string) (bool, error) { return false, nil },
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/jwt?email=ghost@example.com", nil)
	h.Issue(w, r, nil)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	var body tokenResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.AccessToken != "" {
		t.Error("expected empty accessToken for unknown user")
	}
}
