// Package lockout provides the process-local login attempt tracker.
//
// State does not survive a restart and is not shared between instances; use
// the Redis tracker when the API runs with more than one replica.
package lockout

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultMaxAttempts = 5
	DefaultWindow      = 15 * time.Minute
)

type record struct {
	count       int
	lastFailure time.Time
}

// MemoryTracker keeps failure records in a map keyed by login identifier.
// Expired records are evicted lazily on the next IsLocked call.
type MemoryTracker struct {
	mu          sync.Mutex
	records     map[string]*record
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

// NewMemoryTracker builds a tracker. Non-positive arguments fall back to the defaults.
func NewMemoryTracker(maxAttempts int, window time.Duration) *MemoryTracker {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &MemoryTracker{
		records:     make(map[string]*record),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (t *MemoryTracker) WithClock(now func() time.Time) *MemoryTracker {
	t.now = now
	return t
}

func (t *MemoryTracker) IsLocked(_ context.Context, id string) (bool, time.Duration, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[id]
	if !ok {
		return false, 0, nil
	}

	elapsed := t.now().Sub(rec.lastFailure)
	if elapsed >= t.window {
		delete(t.records, id)
		return false, 0, nil
	}
	if rec.count < t.maxAttempts {
		return false, 0, nil
	}
	return true, t.window - elapsed, nil
}

func (t *MemoryTracker) RecordFailure(_ context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[id]
	if !ok {
		rec = &record{}
		t.records[id] = rec
	}
	rec.count++
	rec.lastFailure = t.now()
	return nil
}

func (t *MemoryTracker) Reset(_ context.Context, id string) error {
	t.mu.Lock()
	delete(t.records, id)
	t.mu.Unlock()
	return nil
}

// Len returns the number of live records.
func (t *MemoryTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.records)
}
