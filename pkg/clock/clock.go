// Package clock provides the time collaborator of both loops.
package clock

import (
	"context"
	"sync"
	"time"
)

// Clock measures time elapsed since process start and suspends callers.
type Clock interface {
	// Elapsed returns the monotonic time since the clock started.
	Elapsed() time.Duration
	// Sleep suspends for d, or until ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
}

// System is the Clock backed by the runtime monotonic clock.
type System struct {
	start time.Time
}

// NewSystem creates a System clock starting now.
func NewSystem() *System {
	return &System{start: time.Now()}
}

// Elapsed implements Clock.
func (c *System) Elapsed() time.Duration {
	return time.Since(c.start)
}

// Sleep implements Clock.
func (c *System) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Manual is a Clock for tests. Sleep returns immediately and advances the
// clock by the requested duration.
type Manual struct {
	lock    sync.Mutex
	elapsed time.Duration
	sleeps  []time.Duration
}

// Elapsed implements Clock.
func (c *Manual) Elapsed() time.Duration {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.elapsed
}

// Sleep implements Clock.
func (c *Manual) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.lock.Lock()
	c.sleeps = append(c.sleeps, d)
	if d > 0 {
		c.elapsed += d
	}
	c.lock.Unlock()
	return nil
}

// Advance moves the clock forward without recording a sleep.
func (c *Manual) Advance(d time.Duration) {
	c.lock.Lock()
	c.elapsed += d
	c.lock.Unlock()
}

// Sleeps returns all durations passed to Sleep so far.
func (c *Manual) Sleeps() []time.Duration {
	c.lock.Lock()
	defer c.lock.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}
