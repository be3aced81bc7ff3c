// Package auth is the desktop's view of who is playing. It only answers
// "is someone logged in" and performs the opaque login/logout actions.
package auth

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrEmptyUsername is returned by Login for a blank name.
var ErrEmptyUsername = errors.New("username must not be empty")

// User is the logged-in player.
type User struct {
	ID       string
	Username string
}

// Session holds the authentication state of one desktop.
type Session struct {
	mu       sync.RWMutex
	user     *User
	onChange []func(authenticated bool)
}

// NewSession returns a logged-out session.
func NewSession() *Session {
	return &Session{}
}

// OnChange registers fn to run after every login or logout.
func (s *Session) OnChange(fn func(authenticated bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// IsAuthenticated reports whether a user is logged in.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// User returns the logged-in user.
func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Login signs username in, replacing any current user.
func (s *Session) Login(username string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, ErrEmptyUsername
	}

	u := User{ID: uuid.NewString(), Username: username}
	s.mu.Lock()
	s.user = &u
	fns := s.onChange
	s.mu.Unlock()

	for _, fn := range fns {
		fn(true)
	}
	return u, nil
}

// Logout signs the current user out. It is a no-op when nobody is logged in.
func (s *Session) Logout() {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}
	s.user = nil
	fns := s.onChange
	s.mu.Unlock()

	for _, fn := range fns {
		fn(false)
	}
}
