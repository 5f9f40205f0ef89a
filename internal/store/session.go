package store

import "github.com/mssd/mssd-console/internal/model"

// Session tracks the authenticated back-office user. A nil user means
// logged out; admin routes check it before rendering.
type Session struct {
	user *Value[*model.User]
}

// NewSession starts logged out.
func NewSession() *Session {
	return &Session{user: NewValue[*model.User](nil)}
}

// Login records the authenticated user.
func (s *Session) Login(u *model.User) { s.user.Set(u) }

// Logout clears the session.
func (s *Session) Logout() { s.user.Set(nil) }

// User returns the current user, nil when logged out.
func (s *Session) User() *model.User { return s.user.Get() }

// LoggedIn reports whether a user is authenticated.
func (s *Session) LoggedIn() bool { return s.user.Get() != nil }

// Subscribe registers for login/logout changes.
func (s *Session) Subscribe(fn func(*model.User)) func() {
	return s.user.Subscribe(fn)
}
