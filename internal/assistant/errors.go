package assistant

import (
	"fmt"
	"time"
)

// ProviderError wraps an upstream assistant-provider failure. No retry is
// performed here; the caller owns recovery.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("assistant provider %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// RunFailedError reports a run that reached a non-success terminal status.
// Reason carries the terminal status, including requires_action, which this
// system does not fulfill.
type RunFailedError struct {
	RunID  string
	Reason string
}

func (e *RunFailedError) Error() string {
	return fmt.Sprintf("run %s ended with status %s", e.RunID, e.Reason)
}

// RunTimeoutError reports a run still non-terminal after the polling bound.
type RunTimeoutError struct {
	RunID    string
	Attempts int
	Interval time.Duration
}

func (e *RunTimeoutError) Error() string {
	return fmt.Sprintf("run %s still not terminal after %d polls at %v intervals",
		e.RunID, e.Attempts, e.Interval)
}

// OperationCancelledError reports that the caller aborted mid-poll; no further
// polls were issued after the cancellation was observed.
type OperationCancelledError struct {
	Err error
}

func (e *OperationCancelledError) Error() string {
	return fmt.Sprintf("operation cancelled while awaiting run: %v", e.Err)
}

func (e *OperationCancelledError) Unwrap() error { return e.Err }
