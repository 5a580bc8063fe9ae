// internal/auth/watcher.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/AbdulAhad210904/Pro-connect/internal/storage"
)

// DefaultCheckSchedule is the token expiry polling interval.
const DefaultCheckSchedule = "@every 60s"

// ExpiryWatcher periodically checks the stored tokens of all logged-in
// sessions. An expired (or vanished) token clears the stored credentials and
// logs the session out, which notifies State subscribers once.
type ExpiryWatcher struct {
	cron  *cron.Cron
	state *State
	store storage.TokenStore
	now   func() time.Time

	mu      sync.Mutex
	running bool
}

// NewExpiryWatcher schedules the check on spec (a robfig/cron spec such as
// "@every 60s"). The watcher is idle until Start.
func NewExpiryWatcher(state *State, store storage.TokenStore, spec string) (*ExpiryWatcher, error) {
	if spec == "" {
		spec = DefaultCheckSchedule
	}
	w := &ExpiryWatcher{
		cron:  cron.New(),
		state: state,
		store: store,
		now:   time.Now,
	}
	if _, err := w.cron.AddFunc(spec, func() {
		customLog.Debugln("[Cron] Running token expiry check...")
		w.Check(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("invalid token check schedule '%s': %w", spec, err)
	}
	return w, nil
}

// Start begins polling. Calling Start on a running watcher does nothing.
func (w *ExpiryWatcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}
	w.running = true
	w.cron.Start()
	customLog.Println("Token expiry watcher started")
}

// Stop halts polling and waits for a running check to finish, or for ctx.
func (w *ExpiryWatcher) Stop(ctx context.Context) {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	select {
	case <-w.cron.Stop().Done():
	case <-ctx.Done():
	}
	customLog.Println("Token expiry watcher stopped")
}

// Check runs one pass and returns the number of sessions expired.
func (w *ExpiryWatcher) Check(ctx context.Context) int {
	now := w.now()
	expired := 0

	for _, sessionID := range w.state.Sessions() {
		token, err := w.store.Load(ctx, sessionID)
		if err != nil && !errors.Is(err, storage.ErrTokenNotFound) {
			customLog.Warnf("ExpiryWatcher: cannot load token for session %s: %v", sessionID, err)
			continue
		}
		if err == nil {
			claims, decodeErr := DecodeClaims(token)
			if decodeErr == nil && !claims.Expired(now) {
				continue
			}
		}

		if err := w.store.Delete(ctx, sessionID); err != nil {
			customLog.Warnf("ExpiryWatcher: failed to clear credentials for session %s: %v", sessionID, err)
		}
		if w.state.Expire(sessionID) {
			expired++
			customLog.Printf("ExpiryWatcher: session %s expired", sessionID)
		}
	}

	w.sweepOrphans(ctx, now)
	return expired
}

// sweepOrphans removes stored tokens that no logged-in session owns and that
// have expired, such as those left over from a previous process.
func (w *ExpiryWatcher) sweepOrphans(ctx context.Context, now time.Time) {
	ids, err := w.store.List(ctx)
	if err != nil {
		customLog.Warnf("ExpiryWatcher: cannot list stored tokens: %v", err)
		return
	}
	for _, sessionID := range ids {
		if w.state.Get(sessionID).LoggedIn {
			continue
		}
		token, err := w.store.Load(ctx, sessionID)
		if err != nil {
			continue
		}
		if claims, err := DecodeClaims(token); err == nil && !claims.Expired(now) {
			continue
		}
		if err := w.store.Delete(ctx, sessionID); err != nil {
			customLog.Warnf("ExpiryWatcher: failed to drop orphaned token %s: %v", sessionID, err)
		}
	}
}
