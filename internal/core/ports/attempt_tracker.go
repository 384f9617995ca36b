package ports

import (
	"context"
	"time"
)

// AttemptTracker counts failed logins per identifier and decides lockouts.
//
// IsLocked reports whether id is locked and, if so, how long the lock lasts.
// Records whose window has elapsed are treated as absent.
type AttemptTracker interface {
	IsLocked(ctx context.Context, id string) (bool, time.Duration, error)
	RecordFailure(ctx context.Context, id string) error
	Reset(ctx context.Context, id string) error
}
