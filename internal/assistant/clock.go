package assistant

import (
	"context"
	"time"
)

// Clock abstracts the delay between run polls so tests can simulate elapsed
// time without real sleeps.
type Clock interface {
	// Sleep suspends for d or until ctx is cancelled, returning ctx.Err()
	// in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
