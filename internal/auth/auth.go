// Package auth issues and verifies the Bearer tokens protecting the
// authenticated API surface. A token embeds a session id that is resolved
// against the session store on every request, so deleting the session
// invalidates every token minted for it.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/Deepak7704/100xSWE/internal/core"
	"github.com/Deepak7704/100xSWE/internal/storage"
)

// Claims is the JWT payload. Only the session id is carried in the token;
// everything else about the user lives in the store.
type Claims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// Profile is the identity a session is started from.
type Profile struct {
	UserID            string
	Username          string
	Email             string
	Name              string
	Avatar            string
	ProfileURL        string
	GitHubAccessToken string
}

// Manager creates sessions and signs and verifies their tokens.
type Manager struct {
	secret   []byte
	ttl      time.Duration
	sessions storage.SessionStore
	logger   *slog.Logger
}

// NewManager wires the session boundary. The config layer guarantees the
// signing secret is non-empty before the server starts.
func NewManager(secret string, ttl time.Duration, sessions storage.SessionStore, logger *slog.Logger) *Manager {
	if sessions == nil {
		panic("session store cannot be nil")
	}
	return &Manager{
		secret:   []byte(secret),
		ttl:      ttl,
		sessions: sessions,
		logger:   logger,
	}
}

// StartSession persists a new session for the profile and returns it along
// with a signed Bearer token for it.
func (m *Manager) StartSession(ctx context.Context, profile Profile) (*core.Session, string, error) {
	now := time.Now().UTC()
	session := &core.Session{
		ID:                uuid.NewString(),
		UserID:            profile.UserID,
		Username:          profile.Username,
		Email:             profile.Email,
		Name:              profile.Name,
		Avatar:            profile.Avatar,
		ProfileURL:        profile.ProfileURL,
		GitHubAccessToken: profile.GitHubAccessToken,
		CreatedAt:         now,
		ExpiredAt:         now.Add(m.ttl),
	}
	if err := m.sessions.SaveSession(ctx, session); err != nil {
		return nil, "", fmt.Errorf("failed to save session: %w", err)
	}

	token, err := m.IssueToken(session)
	if err != nil {
		return nil, "", err
	}

	m.logger.Info("session started", "session_id", session.ID, "username", session.Username)
	return session, token, nil
}

// IssueToken signs a token for an existing session. The token expires when
// the session does.
func (m *Manager) IssueToken(session *core.Session) (string, error) {
	claims := Claims{
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(session.ExpiredAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// parseToken verifies the signature and lifetime of a token and extracts
// the session id.
func (m *Manager) parseToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", errors.New("invalid token claims")
	}
	if claims.SessionID == "" {
		return "", errors.New("token carries no session id")
	}
	return claims.SessionID, nil
}
