// internal/auth/state.go
package auth

import (
	"sort"
	"sync"
)

// Reason tells subscribers why a session's auth state changed.
type Reason string

const (
	ReasonLogin   Reason = "login"
	ReasonRefresh Reason = "refresh"
	ReasonLogout  Reason = "logout"
	ReasonExpired Reason = "expired"
)

// Snapshot is a read-only copy of one session's auth state.
type Snapshot struct {
	SessionID string
	LoggedIn  bool
	Claims    *Claims
}

// Change is delivered to subscribers after every state transition.
type Change struct {
	Snapshot
	Reason Reason
}

// State is the process-wide auth store. It is only mutated through Login,
// Refresh, Logout and Expire; subscribers are told about every transition
// exactly once.
type State struct {
	mu       sync.RWMutex
	sessions map[string]*Claims
	subs     map[uint64]func(Change)
	nextSub  uint64
}

func NewState() *State {
	return &State{
		sessions: make(map[string]*Claims),
		subs:     make(map[uint64]func(Change)),
	}
}

// Subscribe registers fn for change notifications. Calling the returned
// function unsubscribes. fn runs on the mutating goroutine, outside the lock.
func (s *State) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Login marks the session logged in with claims. Logging in an already
// logged-in session counts as a refresh.
func (s *State) Login(sessionID string, claims *Claims) {
	s.mu.Lock()
	_, existed := s.sessions[sessionID]
	s.sessions[sessionID] = claims
	subs := s.subscribersLocked()
	s.mu.Unlock()

	reason := ReasonLogin
	if existed {
		reason = ReasonRefresh
	}
	notify(subs, Change{Snapshot: Snapshot{SessionID: sessionID, LoggedIn: true, Claims: claims}, Reason: reason})
}

// Refresh replaces the claims of a logged-in session. It is a no-op for
// unknown sessions and reports whether anything changed.
func (s *State) Refresh(sessionID string, claims *Claims) bool {
	s.mu.Lock()
	if _, ok := s.sessions[sessionID]; !ok {
		s.mu.Unlock()
		return false
	}
	s.sessions[sessionID] = claims
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, Change{Snapshot: Snapshot{SessionID: sessionID, LoggedIn: true, Claims: claims}, Reason: ReasonRefresh})
	return true
}

// Logout drops the session. Returns false (and notifies nobody) when the
// session was not logged in.
func (s *State) Logout(sessionID string) bool {
	return s.remove(sessionID, ReasonLogout)
}

// Expire is Logout for a token found expired by the watcher.
func (s *State) Expire(sessionID string) bool {
	return s.remove(sessionID, ReasonExpired)
}

func (s *State) remove(sessionID string, reason Reason) bool {
	s.mu.Lock()
	if _, ok := s.sessions[sessionID]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.sessions, sessionID)
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, Change{Snapshot: Snapshot{SessionID: sessionID}, Reason: reason})
	return true
}

// Get returns the session's current snapshot.
func (s *State) Get(sessionID string) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	claims, ok := s.sessions[sessionID]
	return Snapshot{SessionID: sessionID, LoggedIn: ok, Claims: claims}
}

// Sessions lists the logged-in session ids in sorted order.
func (s *State) Sessions() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

func (s *State) subscribersLocked() []func(Change) {
	ids := make([]uint64, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]func(Change), 0, len(ids))
	for _, id := range ids {
		out = append(out, s.subs[id])
	}
	return out
}

func notify(subs []func(Change), ch Change) {
	for _, fn := range subs {
		fn(ch)
	}
}
