// internal/storage/mirrored_token_store.go
package storage

import (
	"context"
	"errors"
	"sort"
	"time"
)

// MirroredTokenStore writes every credential to a primary and a mirror store.
// Reads prefer the primary and fall back to the mirror, repopulating the
// primary on a hit (e.g. after a gateway restart with Redis still warm).
type MirroredTokenStore struct {
	primary TokenStore
	mirror  TokenStore
}

func NewMirroredTokenStore(primary, mirror TokenStore) *MirroredTokenStore {
	return &MirroredTokenStore{primary: primary, mirror: mirror}
}

func (m *MirroredTokenStore) Save(ctx context.Context, sessionID, token string, expiresAt time.Time) error {
	if err := m.primary.Save(ctx, sessionID, token, expiresAt); err != nil {
		return err
	}
	if err := m.mirror.Save(ctx, sessionID, token, expiresAt); err != nil {
		customLog.Warnf("Storage: mirror save failed for session %s: %v", sessionID, err)
	}
	return nil
}

func (m *MirroredTokenStore) Load(ctx context.Context, sessionID string) (string, error) {
	token, err := m.primary.Load(ctx, sessionID)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, ErrTokenNotFound) {
		return "", err
	}

	token, err = m.mirror.Load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	// Expiry is unknown here; the watcher decodes the token and evicts it.
	if err := m.primary.Save(ctx, sessionID, token, time.Time{}); err != nil {
		customLog.Warnf("Storage: failed to repopulate session %s: %v", sessionID, err)
	}
	return token, nil
}

// Delete removes the credentials from both stores. Both are attempted even if
// the first fails.
func (m *MirroredTokenStore) Delete(ctx context.Context, sessionID string) error {
	return errors.Join(m.primary.Delete(ctx, sessionID), m.mirror.Delete(ctx, sessionID))
}

// List returns the union of both stores' session ids.
func (m *MirroredTokenStore) List(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	for _, s := range []TokenStore{m.primary, m.mirror} {
		ids, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			seen[id] = true
		}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
