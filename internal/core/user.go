package core

import "time"

// Session is a stored login session, created at sign-in and resolved on
// every authenticated request via the session id embedded in the token.
type Session struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	Avatar            string    `json:"avatar"`
	ProfileURL        string    `json:"profileUrl"`
	GitHubAccessToken string    `json:"githubAccessToken"`
	CreatedAt         time.Time `json:"createdAt"`
	ExpiredAt         time.Time `json:"expiredAt"`
}

// Expired reports whether the session's deadline has passed.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiredAt)
}

// User is the request-scoped identity attached to the context after a
// Bearer token resolves to a session.
type User struct {
	UserID            string    `json:"userId"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	Avatar            string    `json:"avatar"`
	ProfileURL        string    `json:"profileUrl"`
	SessionID         string    `json:"sessionId"`
	GitHubAccessToken string    `json:"-"`
	CreatedAt         time.Time `json:"createdAt"`
	ExpiredAt         time.Time `json:"expiredAt"`
}

// UserFromSession builds the request-scoped identity view of a session.
func UserFromSession(s *Session) *User {
	return &User{
		UserID:            s.UserID,
		Username:          s.Username,
		Email:             s.Email,
		Name:              s.Name,
		Avatar:            s.Avatar,
		ProfileURL:        s.ProfileURL,
		SessionID:         s.ID,
		GitHubAccessToken: s.GitHubAccessToken,
		CreatedAt:         s.CreatedAt,
		ExpiredAt:         s.ExpiredAt,
	}
}
