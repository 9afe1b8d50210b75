package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/mediateam/internal/app/system/respond"
	"go.uber.org/zap"
)

// Verifier turns a raw bearer token into a principal.
type Verifier interface {
	Verify(raw string) (Principal, error)
}

// AccountChecker reports whether the account behind a principal may still
// act. It lets suspensions take effect before the token expires.
type AccountChecker interface {
	IsActive(ctx context.Context, p Principal) (bool, error)
}

// Middleware guards routes with bearer-token authentication.
type Middleware struct {
	Verifier Verifier
	Accounts AccountChecker // optional
	Log      *zap.Logger
}

// NewMiddleware constructs the authentication middleware.
func NewMiddleware(v Verifier, accounts AccountChecker, logger *zap.Logger) *Middleware {
	return &Middleware{Verifier: v, Accounts: accounts, Log: logger}
}

// RequireToken verifies the Authorization header and attaches the principal
// to the request context.
//
//	no token         → 401 "Not authorized, no token"
//	invalid/expired  → 401 "Not authorized, token failed"
//	verifier failure → 500
func (m *Middleware) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := BearerToken(r)
		if raw == "" {
			respond.Unauthorized(w, "Not authorized, no token")
			return
		}

		p, err := m.Verifier.Verify(raw)
		switch {
		case err == nil:
		case errors.Is(err, ErrNoToken):
			respond.Unauthorized(w, "Not authorized, no token")
			return
		case errors.Is(err, ErrInvalidToken):
			m.Log.Debug("token rejected", zap.Error(err), zap.String("path", r.URL.Path))
			respond.Unauthorized(w, "Not authorized, token failed")
			return
		default:
			respond.Internal(w, m.Log, "token verification failed", err)
			return
		}

		if m.Accounts != nil {
			active, err := m.Accounts.IsActive(r.Context(), p)
			if err != nil {
				respond.Internal(w, m.Log, "account lookup failed", err)
				return
			}
			if !active {
				respond.Unauthorized(w, "Not authorized, account inactive")
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// RequireAdmin allows only admin principals. It must run after RequireToken.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := CurrentPrincipal(r)
		if !ok {
			respond.Unauthorized(w, "Not authorized, no token")
			return
		}
		if !p.IsAdmin() {
			respond.Forbidden(w, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
