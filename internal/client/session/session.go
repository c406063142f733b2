package session

import (
	"context"
	"fmt"
	"sync"
)

// Session is the explicit login state of the client. It is created once at
// startup from a Store, updated on login and torn down on logout.
type Session struct {
	store Store

	mu    sync.RWMutex
	token string
	ok    bool
}

// Load reads the persisted token, if any, into a new Session.
func Load(ctx context.Context, store Store) (*Session, error) {
	token, ok, err := store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session token: %w", err)
	}
	return &Session{store: store, token: token, ok: ok}, nil
}

// Token returns the current bearer token. ok is false when logged out.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.ok
}

// Active reports whether a token is held.
func (s *Session) Active() bool {
	_, ok := s.Token()
	return ok
}

// Begin persists token, replacing any previous one.
func (s *Session) Begin(ctx context.Context, token string) error {
	if err := s.store.Set(ctx, token); err != nil {
		return fmt.Errorf("save session token: %w", err)
	}

	// re-read so a store that drops writes leaves the session logged out
	stored, ok, err := s.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("load session token: %w", err)
	}

	s.mu.Lock()
	s.token, s.ok = stored, ok
	s.mu.Unlock()
	return nil
}

// End removes the token. The in-memory copy is cleared even when the store
// fails, so the client never keeps using a token it meant to discard.
func (s *Session) End(ctx context.Context) error {
	s.mu.Lock()
	s.token, s.ok = "", false
	s.mu.Unlock()

	if err := s.store.Remove(ctx); err != nil {
		return fmt.Errorf("remove session token: %w", err)
	}
	return nil
}
