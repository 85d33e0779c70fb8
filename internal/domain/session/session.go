// Package session holds the authenticated state of one client: the bearer
// token, the user it belongs to, and the persisted copy used to rehydrate.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/jan-translator/internal/domain/apperr"
	"github.com/janhq/jan-translator/internal/domain/auth"
)

// ErrNotAuthenticated is returned by operations that need a logged-in session.
var ErrNotAuthenticated = apperr.New(apperr.KindAuth, "not logged in")

// Backend is the subset of the API client the session drives.
type Backend interface {
	SetAuthToken(token string)
	Login(ctx context.Context, username, password string) (auth.Token, error)
	CurrentUser(ctx context.Context) (auth.User, error)
}

// TokenStore persists the bearer token between runs.
type TokenStore interface {
	// Load returns the stored token, or "" when none is stored.
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Session is the explicitly scoped authentication context injected into views.
type Session struct {
	backend Backend
	store   TokenStore
	log     zerolog.Logger
	now     func() time.Time

	mu          sync.RWMutex
	token       string
	user        *auth.User
	initialized bool
}

// New creates a logged-out session. Call Initialize to rehydrate.
func New(backend Backend, store TokenStore, log zerolog.Logger) *Session {
	return &Session{
		backend: backend,
		store:   store,
		log:     log.With().Str("component", "session").Logger(),
		now:     time.Now,
	}
}

// Initialize loads the persisted token and checks the current user with it.
// A token that is expired or rejected is discarded silently and the session
// stays logged out; only token store failures are returned.
func (s *Session) Initialize(ctx context.Context) error {
	token, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("load stored token: %w", err)
	}
	token = strings.TrimSpace(token)

	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()

	if token == "" {
		s.reset()
		return nil
	}

	if tokenExpired(token, s.now()) {
		s.log.Debug().Msg("stored token expired, discarding")
		return s.discard()
	}

	s.backend.SetAuthToken(token)
	user, err := s.backend.CurrentUser(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("current user check failed, discarding stored token")
		return s.discard()
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Login exchanges credentials for a token, confirms it with a current user
// check and persists it.
func (s *Session) Login(ctx context.Context, username, password string) (auth.User, error) {
	token, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return auth.User{}, err
	}

	s.backend.SetAuthToken(token.AccessToken)
	user, err := s.backend.CurrentUser(ctx)
	if err != nil {
		if discardErr := s.discard(); discardErr != nil {
			s.log.Warn().Err(discardErr).Msg("clear token after failed check")
		}
		return auth.User{}, err
	}

	if err := s.store.Save(token.AccessToken); err != nil {
		s.log.Warn().Err(err).Msg("persist token failed, session will not survive restart")
	}

	s.mu.Lock()
	s.token = token.AccessToken
	s.user = &user
	s.initialized = true
	s.mu.Unlock()
	return user, nil
}

// Logout clears the token from memory, the persisted store and the
// Authorization header of subsequent calls.
func (s *Session) Logout() error {
	return s.discard()
}

// HandleAuthFailure logs the session out when err is an authentication
// failure and reports whether it did.
func (s *Session) HandleAuthFailure(err error) bool {
	if !apperr.Is(err, apperr.KindAuth) || errors.Is(err, ErrNotAuthenticated) {
		return false
	}
	if logoutErr := s.Logout(); logoutErr != nil {
		s.log.Warn().Err(logoutErr).Msg("forced logout failed to clear stored token")
	}
	return true
}

// Close tears the session down for this process. The persisted token is kept
// so the next run can rehydrate.
func (s *Session) Close() error {
	s.reset()
	return nil
}

// SetUser replaces the cached user, e.g. after a password change.
func (s *Session) SetUser(user auth.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" {
		s.user = &user
	}
}

// Token returns the current bearer token, "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current user.
func (s *Session) User() (auth.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return auth.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a token is held.
func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// Initialized reports whether Initialize or Login has completed.
func (s *Session) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Require returns ErrNotAuthenticated when the session is logged out.
func (s *Session) Require() error {
	if !s.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

func (s *Session) reset() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	s.backend.SetAuthToken("")
}

func (s *Session) discard() error {
	s.reset()
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clear stored token: %w", err)
	}
	return nil
}
