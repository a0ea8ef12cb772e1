package session

import (
	"sync"
	"time"
)

// State is the lifecycle phase of a return box session.
type State string

const (
	// StateScanning means the box door is open and snapshots are streaming in.
	StateScanning State = "SCANNING"
	// StateFinalizePending means the confirm signal arrived before a usable
	// snapshot; the next snapshot is the authoritative final tag set.
	StateFinalizePending State = "FINALIZE_PENDING"
	// StateCompleted means the session has been finalized. Later snapshots
	// update the display tags only.
	StateCompleted State = "COMPLETED"
)

// Session is the in-memory state of one return box.
type Session struct {
	// Tags is the most recent scan snapshot, replaced wholesale on every
	// update. The hardware reports full snapshots, never deltas.
	Tags []string
	// State is the current lifecycle phase.
	State State
	// LastUpdated is the time of the last mutation.
	LastUpdated time.Time
}

// Outcome is the deferred side effect of a mutation. Mutators must not do
// I/O under the store lock, so they describe the follow-up work and the
// caller executes it after the lock is released.
type Outcome struct {
	// Finalize indicates the session just completed and the tag set must be
	// handed to the finalization worker.
	Finalize bool
	// Tags is the tag set captured by value at the moment of completion, so
	// later snapshot updates cannot race with the in-flight finalization.
	Tags []string
}

// Store holds the sessions of all return boxes behind a single lock.
// Session counts are small (one per physical box), so one map-wide mutex is
// cheaper and simpler than per-device locking.
type Store struct {
	mu       sync.Mutex
	sessions map[int]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int]*Session)}
}

// Snapshot returns a copy of the session for a box, or false when the box has
// no session. The copy is safe to read without holding the store lock.
func (s *Store) Snapshot(boxID int) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[boxID]
	if !ok {
		return Session{}, false
	}
	return Session{
		Tags:        append([]string(nil), sess.Tags...),
		State:       sess.State,
		LastUpdated: sess.LastUpdated,
	}, true
}

// Upsert atomically applies the mutator to the box's session, creating a
// fresh SCANNING session first if none exists. The mutator runs under the
// store lock and must be free of I/O; its Outcome is returned for the caller
// to act on once the lock is released.
func (s *Store) Upsert(boxID int, mutate func(*Session) Outcome) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[boxID]
	if !ok {
		sess = &Session{State: StateScanning, Tags: []string{}}
		s.sessions[boxID] = sess
	}

	outcome := mutate(sess)
	sess.LastUpdated = time.Now()
	return outcome
}

// Clear removes the box's session. A cleared session behaves exactly like one
// that never existed, so a box can begin a new lifecycle afterwards. Clearing
// an absent session is a no-op.
func (s *Store) Clear(boxID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, boxID)
}
