// Package session holds the process-wide authenticated session: one
// bearer token and the user it resolves to, with an explicit
// load/set/clear lifecycle.
package session

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"todoctl/internal/api"
	"todoctl/internal/config"
	"todoctl/internal/service"
)

// Store owns the current session. It is written only by the auth flows
// (on success) and by logout; everything else just reads it. Setting a
// session installs the token into the API client's authorization slot,
// clearing it empties the slot again.
type Store struct {
	cfg    *config.Config
	client *api.Client
	log    *zap.Logger

	mu    sync.RWMutex
	token string
	user  *service.User
}

// NewStore creates an empty session store.
func NewStore(cfg *config.Config, client *api.Client, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{cfg: cfg, client: client, log: log}
}

// Load restores a persisted session. It reads the token file, installs
// the token, and validates it against the backend. Any validation
// failure demotes to logged-out silently: the stale token is removed
// and no error is surfaced. The returned error is for local I/O
// problems only.
func (s *Store) Load(ctx context.Context, svc service.Service) error {
	data, err := os.ReadFile(s.cfg.TokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return s.Clear()
	}

	s.client.SetToken(token)
	user, err := svc.Me(ctx)
	if err != nil {
		s.log.Debug("stored token rejected", zap.Error(err))
		return s.Clear()
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Set persists the token, installs it into the API client, and updates
// the in-memory session.
func (s *Store) Set(token string, user service.User) error {
	if err := s.cfg.EnsureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(s.cfg.TokenPath(), []byte(token), 0600); err != nil {
		return err
	}
	s.client.SetToken(token)

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Clear removes the persisted token, empties the authorization slot,
// and resets the in-memory session.
func (s *Store) Clear() error {
	err := s.cfg.RemoveToken()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	s.client.SetToken("")

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	return nil
}

// Current returns the session user, if one is present.
func (s *Store) Current() (service.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return service.User{}, false
	}
	return *s.user, true
}

// Token returns the current session token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
