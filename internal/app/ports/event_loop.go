package ports

import (
	"context"
	"time"
)

// EventLoop serializes all game mutations on one goroutine.
type EventLoop interface {
	// Do runs fn on the loop and waits for it.
	Do(ctx context.Context, fn func() error) error
	// After posts fn to the loop once d has elapsed.
	After(d time.Duration, fn func())
}
