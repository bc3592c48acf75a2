// Package drafting assembles the legal drafting workflow: the supervisor and
// its sub-agents, the session management tools, the delegation markers, and
// the deterministic pipeline gates between phases.
package drafting

import "sync"

// Tracker carries the active session identity across one workflow run. The
// initialize tool sets it; gates read it to know which session record to
// advance. A fresh tracker is created per run, so concurrent runs never
// share one.
type Tracker struct {
	mu        sync.Mutex
	sessionID string
	ownerID   string
}

// NewTracker creates an empty tracker, optionally pre-bound to a session.
func NewTracker(sessionID, ownerID string) *Tracker {
	return &Tracker{sessionID: sessionID, ownerID: ownerID}
}

// Bind records the run's active session.
func (t *Tracker) Bind(sessionID, ownerID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessionID = sessionID
	t.ownerID = ownerID
}

// SessionID returns the active session id, or empty when none is bound.
func (t *Tracker) SessionID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessionID
}

// OwnerID returns the active owner id.
func (t *Tracker) OwnerID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ownerID
}
