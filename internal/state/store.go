package state

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

// Action names the operation a processing marker belongs to.
type Action string

const (
	ActionNone    Action = ""
	ActionAnalyze Action = "analyze"
	ActionSplice  Action = "splice"
)

// Snapshot represents the latest view state available to the UI.
type Snapshot struct {
	Listing       []string
	Loaded        bool // at least one listing fetch succeeded
	Status        string
	Processing    string // filename of the in-flight action, empty when idle
	Action        Action
	ActionStarted time.Time
	LastUpdated   time.Time
	LastError     error
	// ConsecutiveFailures counts listing fetches that failed in a row.
	ConsecutiveFailures int
}

// Busy reports whether an action is in flight.
func (s Snapshot) Busy() bool {
	return s.Processing != ""
}

// IsOffline returns true when the API has been unreachable for multiple fetches.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the view state.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// NewStore returns a store whose status shows the initial-load placeholder.
func NewStore(placeholder string) *Store {
	return &Store{snapshot: Snapshot{Status: placeholder}}
}

// SetListing replaces the listing wholesale after a successful fetch. The
// status is cleared when it equals one of clearable.
func (s *Store) SetListing(names []string, clearable ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Listing = cloneNames(names)
	s.snapshot.Loaded = true
	if s.snapshot.Status != "" && slices.Contains(clearable, s.snapshot.Status) {
		s.snapshot.Status = ""
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// ListingFailed records a failed fetch. The previous listing is kept. While
// an action is in flight the status belongs to the action and is left alone.
func (s *Store) ListingFailed(status string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.Processing == "" {
		s.snapshot.Status = status
	}
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
}

// SetStatus overwrites the status message.
func (s *Store) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Status = status
}

// Begin sets the processing marker to filename if no action is in flight.
// It reports whether the marker was taken; a false return means the caller
// must not issue a request.
func (s *Store) Begin(filename string, action Action, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.Processing != "" {
		return false
	}
	s.snapshot.Processing = filename
	s.snapshot.Action = action
	s.snapshot.ActionStarted = time.Now()
	s.snapshot.Status = status
	return true
}

// Finish clears the processing marker unconditionally.
func (s *Store) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Processing = ""
	s.snapshot.Action = ActionNone
	s.snapshot.ActionStarted = time.Time{}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Listing = cloneNames(s.snapshot.Listing)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	dup := make([]string, len(names))
	copy(dup, names)
	return dup
}
