package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot_NoSession(t *testing.T) {
	store := NewStore()

	_, ok := store.Snapshot(1)
	assert.False(t, ok)
}

func TestUpsert_CreatesScanningSession(t *testing.T) {
	store := NewStore()

	store.Upsert(1, func(s *Session) Outcome {
		assert.Equal(t, StateScanning, s.State)
		assert.Empty(t, s.Tags)
		return Outcome{}
	})

	snap, ok := store.Snapshot(1)
	assert.True(t, ok)
	assert.Equal(t, StateScanning, snap.State)
	assert.False(t, snap.LastUpdated.IsZero())
}

func TestUpsert_ReplacesTagsWholesale(t *testing.T) {
	store := NewStore()

	store.Upsert(1, func(s *Session) Outcome {
		s.Tags = []string{"A", "B"}
		return Outcome{}
	})
	store.Upsert(1, func(s *Session) Outcome {
		s.Tags = []string{"C"}
		return Outcome{}
	})

	snap, _ := store.Snapshot(1)
	assert.Equal(t, []string{"C"}, snap.Tags)
}

func TestSnapshot_IsIsolatedCopy(t *testing.T) {
	store := NewStore()
	store.Upsert(1, func(s *Session) Outcome {
		s.Tags = []string{"A"}
		return Outcome{}
	})

	snap, _ := store.Snapshot(1)
	snap.Tags[0] = "mutated"
	snap.Tags = append(snap.Tags, "extra")

	fresh, _ := store.Snapshot(1)
	assert.Equal(t, []string{"A"}, fresh.Tags)
}

func TestClear_BehavesLikeNeverExisted(t *testing.T) {
	store := NewStore()
	store.Upsert(1, func(s *Session) Outcome {
		s.Tags = []string{"A"}
		s.State = StateCompleted
		return Outcome{}
	})

	store.Clear(1)

	_, ok := store.Snapshot(1)
	assert.False(t, ok)

	// A new lifecycle starts from scratch.
	store.Upsert(1, func(s *Session) Outcome {
		assert.Equal(t, StateScanning, s.State)
		assert.Empty(t, s.Tags)
		return Outcome{}
	})

	// Clearing twice is harmless.
	store.Clear(1)
	store.Clear(1)
}

func TestUpsert_IndependentDevices(t *testing.T) {
	store := NewStore()

	store.Upsert(1, func(s *Session) Outcome {
		s.Tags = []string{"A"}
		return Outcome{}
	})
	store.Upsert(2, func(s *Session) Outcome {
		s.Tags = []string{"B"}
		return Outcome{}
	})

	one, _ := store.Snapshot(1)
	two, _ := store.Snapshot(2)
	assert.Equal(t, []string{"A"}, one.Tags)
	assert.Equal(t, []string{"B"}, two.Tags)
}

func TestUpsert_ConcurrentAccess(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.Upsert(n%4, func(s *Session) Outcome {
				s.Tags = []string{"T"}
				return Outcome{}
			})
			store.Snapshot(n % 4)
		}(i)
	}
	wg.Wait()

	for id := 0; id < 4; id++ {
		snap, ok := store.Snapshot(id)
		assert.True(t, ok)
		assert.Equal(t, []string{"T"}, snap.Tags)
	}
}
