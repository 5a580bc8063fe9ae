// internal/storage/token_store.go
package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/AbdulAhad210904/Pro-connect/internal/logger"
)

var (
	ErrTokenNotFound = errors.New("no stored credentials for session")
	ErrEmptySession  = errors.New("session id must not be empty")
	customLog        = logger.NewLogger()
)

// TokenStore keeps the upstream bearer token of each gateway session.
// expiresAt is the token's exp claim; a zero value means no known expiry.
type TokenStore interface {
	Save(ctx context.Context, sessionID, token string, expiresAt time.Time) error
	Load(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
	List(ctx context.Context) ([]string, error)
}

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryTokenStore is a process-local TokenStore. Entries are not evicted on
// expiry; the expiry watcher removes them.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{entries: make(map[string]memoryEntry)}
}

func (m *MemoryTokenStore) Save(_ context.Context, sessionID, token string, expiresAt time.Time) error {
	if sessionID == "" {
		return ErrEmptySession
	}
	m.mu.Lock()
	m.entries[sessionID] = memoryEntry{token: token, expiresAt: expiresAt}
	m.mu.Unlock()
	return nil
}

func (m *MemoryTokenStore) Load(_ context.Context, sessionID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[sessionID]
	if !ok {
		return "", ErrTokenNotFound
	}
	return e.token, nil
}

func (m *MemoryTokenStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.entries, sessionID)
	m.mu.Unlock()
	return nil
}

// List returns the stored session ids in sorted order.
func (m *MemoryTokenStore) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	ids := make([]string, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	m.mu.RUnlock()
	sort.Strings(ids)
	return ids, nil
}
