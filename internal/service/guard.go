// internal/service/guard.go
package service

import (
	"errors"
	"sync"
)

// ErrSubmissionInFlight is returned while an identical submission is still
// waiting for the remote API.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// SubmitGuard rejects a second submission for the same key until the first
// one finishes.
type SubmitGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewSubmitGuard() *SubmitGuard {
	return &SubmitGuard{inFlight: make(map[string]struct{})}
}

// Begin claims key. The returned release func must be called when the
// submission completes, successfully or not.
func (g *SubmitGuard) Begin(key string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inFlight[key]; busy {
		return nil, ErrSubmissionInFlight
	}
	g.inFlight[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inFlight, key)
			g.mu.Unlock()
		})
	}, nil
}

// guardKey identifies a submission of kind by the calling session, falling
// back to the user id for bearer callers.
func guardKey(kind, sessionID, fallback string) string {
	if sessionID != "" {
		return kind + ":" + sessionID
	}
	return kind + ":user:" + fallback
}
