// Package session owns the client's bearer credentials: the in-memory
// token pair, its durable copy, and the derived authenticated flag.
package session

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-shortlink-client/model"
)

// Store is the single authority over the current session. All mutating
// operations keep the durable copy and the in-memory copy consistent, and
// always move both tokens together - no observer ever sees an access token
// from one pair next to the refresh token of another.
type Store struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	user         *model.User

	repo    Repo
	nowFunc func() time.Time
}

// StoreOption modifies a Store during construction.
type StoreOption func(*Store)

// WithNowFunc sets the clock used for liveness checks (primarily for testing).
func WithNowFunc(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowFunc = now
	}
}

// NewStore seeds the in-memory state from the durable copy. A persisted
// token that has expired since it was written still loads, but the derived
// authenticated flag reads false for it.
func NewStore(repo Repo, options ...StoreOption) (*Store, error) {
	if repo == nil {
		return nil, errors.New("[NewStore] repo is required")
	}

	s := &Store{
		repo:    repo,
		nowFunc: time.Now,
	}

	for _, opt := range options {
		opt(s)
	}

	access, refresh, err := repo.Load()
	if err != nil {
		return nil, errors.Wrap(err, "[NewStore] repo.Load")
	}
	s.accessToken = access
	s.refreshToken = refresh

	return s, nil
}

// SetCredentials unconditionally overwrites both tokens and persists them.
// A non-nil user also replaces the cached profile; nil leaves it alone.
// Token well-formedness is not checked here - liveness is computed at read
// time by IsAuthenticated.
func (s *Store) SetCredentials(accessToken, refreshToken string, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(accessToken, refreshToken); err != nil {
		return errors.Wrap(err, "[Store.SetCredentials] repo.Save")
	}

	s.accessToken = accessToken
	s.refreshToken = refreshToken
	if user != nil {
		s.user = user
	}
	return nil
}

// SetUser replaces the cached profile without touching tokens.
func (s *Store) SetUser(user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// Clear removes both tokens, the profile, and the durable copies.
// Clearing an already cleared store is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(); err != nil {
		return errors.Wrap(err, "[Store.Clear] repo.Delete")
	}

	s.accessToken = ""
	s.refreshToken = ""
	s.user = nil
	return nil
}

// AccessToken returns the current access token, empty when signed out.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token, empty when signed out.
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// User returns the cached profile, nil until a profile fetch populated it.
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated is recomputed from the access token's expiry claim on
// every read, so it can never go stale relative to the token it describes.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	token := s.accessToken
	now := s.nowFunc()
	s.mu.RUnlock()
	return IsLiveAt(token, now)
}
