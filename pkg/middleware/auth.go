package middleware

import (
	"context"
	"net/http"
	"strings"

	"docportal/pkg/auth"

	"github.com/julienschmidt/httprouter"
)

const ClaimsKey contextKey = "claims"

// AdminChecker reports whether the given email belongs to an admin user.
// Implemented by the users service.
type AdminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// RequireJWT wraps a route with bearer-token verification. A missing or
// malformed Authorization header is 401; a token that fails verification
// (bad signature, expired) is 403, matching the portal's auth contract.
func RequireJWT(tm *auth.TokenManager) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			authz := r.Header.Get("Authorization")
			if authz == "" {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized access!")
				return
			}

			raw, ok := strings.CutPrefix(authz, "Bearer ")
			if !ok || raw == "" {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized access!")
				return
			}

			claims, err := tm.Parse(raw)
			if err != nil {
				writeAuthError(w, http.StatusForbidden, "Forbidden access!")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next(w, r.WithContext(ctx), ps)
		}
	}
}

// RequireAdmin must run after RequireJWT. It re-reads the user record for
// the verified email on every request, so a revoked admin loses access
// immediately rather than at token expiry.
func RequireAdmin(admins AdminChecker) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				writeAuthError(w, http.StatusForbidden, "Forbidden access!")
				return
			}

			isAdmin, err := admins.IsAdmin(r.Context(), claims.Email)
			if err != nil || !isAdmin {
				writeAuthError(w, http.StatusForbidden, "Forbidden access!")
				return
			}

			next(w, r, ps)
		}
	}
}

func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(ClaimsKey).(*auth.Claims)
	return claims
}

func writeAuthError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(`{"message":"` + message + `"}`))
}
