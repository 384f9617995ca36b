package lockout

import (
	"context"
	"sync"
	"testing"
	"time"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestTracker() (*MemoryTracker, *testClock) {
	clock := &testClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	return NewMemoryTracker(5, 15*time.Minute).WithClock(clock.Now), clock
}

func TestMemoryTracker_CleanIdentifierIsNotLocked(t *testing.T) {
	tr, _ := newTestTracker()
	locked, remaining, err := tr.IsLocked(context.Background(), "a@example.com")
	if err != nil || locked || remaining != 0 {
		t.Fatalf("expected clean state, got locked=%v remaining=%v err=%v", locked, remaining, err)
	}
}

func TestMemoryTracker_LocksAtMaxAttempts(t *testing.T) {
	tr, clock := newTestTracker()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_ = tr.RecordFailure(ctx, "a@example.com")
	}
	if locked, _, _ := tr.IsLocked(ctx, "a@example.com"); locked {
		t.Fatalf("four failures must not lock")
	}

	_ = tr.RecordFailure(ctx, "a@example.com")
	clock.Advance(5 * time.Minute)

	locked, remaining, _ := tr.IsLocked(ctx, "a@example.com")
	if !locked {
		t.Fatalf("five failures must lock")
	}
	if remaining != 10*time.Minute {
		t.Fatalf("expected 10m remaining, got %v", remaining)
	}
}

func TestMemoryTracker_LazyExpiryEvictsRecord(t *testing.T) {
	tr, clock := newTestTracker()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_ = tr.RecordFailure(ctx, "a@example.com")
	}
	clock.Advance(15 * time.Minute)

	if tr.Len() != 1 {
		t.Fatalf("record should still be present before the next check")
	}
	if locked, _, _ := tr.IsLocked(ctx, "a@example.com"); locked {
		t.Fatalf("lock must expire after the window")
	}
	if tr.Len() != 0 {
		t.Fatalf("expired record should be evicted on check")
	}

	_ = tr.RecordFailure(ctx, "a@example.com")
	if locked, _, _ := tr.IsLocked(ctx, "a@example.com"); locked {
		t.Fatalf("count must restart from zero after eviction")
	}
}

func TestMemoryTracker_ResetClearsRecord(t *testing.T) {
	tr, _ := newTestTracker()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_ = tr.RecordFailure(ctx, "a@example.com")
	}
	_ = tr.Reset(ctx, "a@example.com")

	if locked, _, _ := tr.IsLocked(ctx, "a@example.com"); locked {
		t.Fatalf("reset must unlock")
	}
	if tr.Len() != 0 {
		t.Fatalf("reset must delete the record")
	}
}

func TestMemoryTracker_IdentifiersAreIndependent(t *testing.T) {
	tr, _ := newTestTracker()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_ = tr.RecordFailure(ctx, "a@example.com")
	}
	if locked, _, _ := tr.IsLocked(ctx, "b@example.com"); locked {
		t.Fatalf("unrelated identifier must not be locked")
	}
}

func TestMemoryTracker_ConcurrentFailures(t *testing.T) {
	tr, _ := newTestTracker()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tr.RecordFailure(ctx, "a@example.com")
			_, _, _ = tr.IsLocked(ctx, "a@example.com")
		}()
	}
	wg.Wait()

	if locked, _, _ := tr.IsLocked(ctx, "a@example.com"); !locked {
		t.Fatalf("expected lock after concurrent failures")
	}
}

func TestNewMemoryTracker_Defaults(t *testing.T) {
	tr := NewMemoryTracker(0, 0)
	if tr.maxAttempts != DefaultMaxAttempts || tr.window != DefaultWindow {
		t.Fatalf("unexpected defaults: %d %v", tr.maxAttempts, tr.window)
	}
}
