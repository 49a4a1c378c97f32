package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Deepak7704/100xSWE/internal/core"
)

// Discriminating codes carried in 401 bodies so clients can tell why a
// request was rejected without parsing prose.
const (
	CodeNoAuthHeader  = "NO_AUTHENTICATION_HEADER"
	CodeInvalidFormat = "INVALID_AUTHENTICATION_FORMAT"
	CodeNoToken       = "NO_TOKEN_PROVIDED"
	CodeInvalidToken  = "INVALID_OR_EXPIRED_TOKEN"
)

type userContextKey struct{}

// WithUser attaches the resolved identity to the context.
func WithUser(ctx context.Context, user *core.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFrom extracts the identity a passed Middleware attached.
func UserFrom(ctx context.Context) (*core.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*core.User)
	return user, ok
}

// Middleware guards an endpoint with Bearer authentication. On success the
// session's user view is attached to the request context; every failure is
// a 401 carrying one of the codes above.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			m.deny(w, CodeNoAuthHeader, "authorization header is required")
			return
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			m.deny(w, CodeInvalidFormat, "authorization header must use the Bearer scheme")
			return
		}

		token = strings.TrimSpace(token)
		if token == "" {
			m.deny(w, CodeNoToken, "bearer token is empty")
			return
		}

		sessionID, err := m.parseToken(token)
		if err != nil {
			m.logger.Debug("rejected session token", "error", err)
			m.deny(w, CodeInvalidToken, "token is invalid or expired")
			return
		}

		session, err := m.sessions.GetSession(r.Context(), sessionID)
		if err != nil {
			m.logger.Debug("session not found for token", "session_id", sessionID, "error", err)
			m.deny(w, CodeInvalidToken, "token is invalid or expired")
			return
		}

		ctx := WithUser(r.Context(), core.UserFromSession(session))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Manager) deny(w http.ResponseWriter, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
		"code":  code,
	})
}
