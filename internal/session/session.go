// Package session holds who is signed in and tells screens when that ends.
package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/observable"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/tokenstore"
)

const ReasonSignedOut = "signed out"

// State is published on every sign-in and sign-out.
type State struct {
	Authenticated bool
	User          user.User
	Reason        string // why the session ended; empty while signed in
}

type Session struct {
	store  tokenstore.Store
	logger *slog.Logger
	now    func() time.Time
	hub    *observable.Hub[State]

	mu     sync.RWMutex
	token  string
	user   user.User
	authed bool
	done   chan struct{}
}

type Option func(*Session)

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func New(store tokenstore.Store, logger *slog.Logger, opts ...Option) *Session {
	if store == nil {
		store = tokenstore.NewMemory()
	}
	if logger == nil {
		logger = slog.Default()
	}
	done := make(chan struct{})
	close(done)

	s := &Session{
		store:  store,
		logger: logger.With(slog.String("component", "session")),
		now:    time.Now,
		hub:    observable.NewHub[State](),
		done:   done,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Establish signs in with a login response and persists it.
func (s *Session) Establish(resp auth.AuthResponse) error {
	if resp.Token == "" {
		return auth.ErrInvalidToken
	}
	claims, err := jwt.ParseClaims(resp.Token)
	if err != nil {
		return errors.Join(auth.ErrInvalidToken, err)
	}
	if claims.Expired(s.now()) {
		return auth.ErrTokenExpired
	}

	u := resp.User()
	if u.Role == "" {
		u.Role = claims.Role
	}
	if err := s.store.Save(tokenstore.Record{Token: resp.Token, User: u}); err != nil {
		s.logger.Warn("Failed to persist session", "error", err)
	}

	s.signIn(resp.Token, u)
	s.logger.Info("Signed in", "user_id", u.ID, "role", string(u.Role))
	return nil
}

// Resume restores a persisted session. It reports false when nothing usable
// was stored; expired or unreadable records are discarded.
func (s *Session) Resume() (bool, error) {
	rec, err := s.store.Load()
	if errors.Is(err, tokenstore.ErrEmpty) {
		return false, nil
	}
	if err != nil {
		s.logger.Warn("Discarding unreadable session", "error", err)
		return false, s.store.Clear()
	}

	claims, err := jwt.ParseClaims(rec.Token)
	if err != nil || claims.Expired(s.now()) {
		s.logger.Info("Discarding expired session")
		return false, s.store.Clear()
	}

	s.signIn(rec.Token, rec.User)
	s.logger.Info("Session resumed", "user_id", rec.User.ID)
	return true, nil
}

// Refresh replaces the profile of the signed-in user, keeping the token.
func (s *Session) Refresh(u user.User) {
	s.mu.Lock()
	if !s.authed {
		s.mu.Unlock()
		return
	}
	s.user = u
	token := s.token
	s.mu.Unlock()

	if err := s.store.Save(tokenstore.Record{Token: token, User: u}); err != nil {
		s.logger.Warn("Failed to persist session", "error", err)
	}
	s.hub.Publish(State{Authenticated: true, User: u})
}

func (s *Session) signIn(token string, u user.User) {
	s.mu.Lock()
	s.token = token
	s.user = u
	if !s.authed {
		s.done = make(chan struct{})
	}
	s.authed = true
	s.mu.Unlock()

	s.hub.Publish(State{Authenticated: true, User: u})
}

// Invalidate ends the session, clears the stored token and closes Done.
// Calling it while signed out does nothing.
func (s *Session) Invalidate(reason string) {
	s.mu.Lock()
	if !s.authed {
		s.mu.Unlock()
		return
	}
	s.authed = false
	s.token = ""
	s.user = user.User{}
	close(s.done)
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		s.logger.Warn("Failed to clear stored session", "error", err)
	}
	s.logger.Info("Session ended", "reason", reason)
	s.hub.Publish(State{Reason: reason})
}

func (s *Session) Logout() {
	s.Invalidate(ReasonSignedOut)
}

// Token returns the bearer token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authed
}

// Done is closed when the current session ends. It is already closed while
// signed out.
func (s *Session) Done() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.done
}

func (s *Session) CurrentRole() user.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Role
}

func (s *Session) User() (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.authed
}

// Capabilities computes a screen's capabilities once from the current role.
func (s *Session) Capabilities(g user.Grant) user.Capabilities {
	return user.CapabilitiesFor(s.CurrentRole(), g)
}

func (s *Session) Subscribe() (<-chan State, func()) {
	s.mu.RLock()
	current := State{Authenticated: s.authed, User: s.user}
	s.mu.RUnlock()
	return s.hub.Subscribe(current)
}
