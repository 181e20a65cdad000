package handler

import (
	"context"
	"net/http"

	"docportal/pkg/auth"
	httputil "docportal/pkg/http"
	"docportal/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

// UserChecker reports whether an account exists for an email. Tokens are
// only minted for known users.
type UserChecker interface {
	Exists(ctx context.Context, email string) (bool, error)
}

type TokenHandler struct {
	tokens *auth.TokenManager
	users  UserChecker
	log    *logger.Logger
}

func NewTokenHandler(tokens *auth.TokenManager, users UserChecker, log *logger.Logger) *TokenHandler {
	return &TokenHandler{
		tokens: tokens,
		users:  users,
		log:    log,
	}
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// Issue returns a signed token for a registered email. Unknown emails get a
// 403 with an empty accessToken, which is the shape the frontend checks.
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email := r.URL.Query().Get("email")

	exists, err := h.users.Exists(r.Context(), email)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Issue", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if !exists {
		if err := httputil.WriteJSON(w, http.StatusForbidden, tokenResponse{AccessToken: ""}); err != nil {
			h.log.Error("failed to write JSON response", "handler", "Issue", "operation", "WriteJSON", "error", err)
		}
		return
	}

	token, err := h.tokens.Issue(email)
	if err != nil {
		h.log.Error("failed to sign token", "email", email, "error", err)
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Issue", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, tokenResponse{AccessToken: token}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Issue", "operation", "WriteJSON", "error", err)
	}
}

func (h *TokenHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/jwt", h.Issue)
}
