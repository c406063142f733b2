// Package session keeps the client's bearer token.
//
// A Store persists at most one token. Session wraps a Store with an in-memory
// copy so the rest of the client can read the token without touching storage
// on every request.
package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/taskdesk/internal/client/repositories/kv"
)

// TokenKey is the storage key the token is persisted under.
const TokenKey = "token"

// Store persists the session token. Get reports an absent token with
// ok == false.
type Store interface {
	Get(ctx context.Context) (token string, ok bool, err error)
	Set(ctx context.Context, token string) error
	Remove(ctx context.Context) error
}

// SQLiteStore keeps the token in the local state database.
type SQLiteStore struct {
	repo kv.Repository
}

func NewSQLiteStore(repo kv.Repository) *SQLiteStore {
	return &SQLiteStore{repo: repo}
}

func (s *SQLiteStore) Get(ctx context.Context) (string, bool, error) {
	return s.repo.Get(ctx, TokenKey)
}

func (s *SQLiteStore) Set(ctx context.Context, token string) error {
	return s.repo.Set(ctx, TokenKey, token)
}

func (s *SQLiteStore) Remove(ctx context.Context) error {
	return s.repo.Delete(ctx, TokenKey)
}

// NopStore is used when no persistent storage is configured: it never holds
// a token and ignores writes.
type NopStore struct{}

func (NopStore) Get(context.Context) (string, bool, error) { return "", false, nil }
func (NopStore) Set(context.Context, string) error         { return nil }
func (NopStore) Remove(context.Context) error              { return nil }

// MemoryStore keeps the token for the lifetime of the process.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	ok    bool
}

func (m *MemoryStore) Get(context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.ok, nil
}

func (m *MemoryStore) Set(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.ok = token, true
	return nil
}

func (m *MemoryStore) Remove(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.ok = "", false
	return nil
}
