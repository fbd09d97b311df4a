package schedule

import (
	"context"
	"sync"
	"time"
)

// Clock ticks the now indicator while a schedule view is open. The ticker
// goroutine lives from Start until Stop or until the start context ends.
type Clock struct {
	interval time.Duration
	now      func() time.Time

	mu     sync.Mutex
	ticks  chan time.Time
	cancel context.CancelFunc
	done   chan struct{}
}

func NewClock(interval time.Duration, now func() time.Time) *Clock {
	if interval <= 0 {
		interval = time.Minute
	}
	if now == nil {
		now = time.Now
	}
	return &Clock{interval: interval, now: now}
}

// Start begins ticking and returns the tick channel, which is closed once the
// clock stops. Starting a running clock returns the same channel.
func (c *Clock) Start(ctx context.Context) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.runningLocked() {
		return c.ticks
	}

	ctx, c.cancel = context.WithCancel(ctx)
	c.ticks = make(chan time.Time, 1)
	c.done = make(chan struct{})
	go c.run(ctx, c.ticks, c.done)
	return c.ticks
}

func (c *Clock) run(ctx context.Context, ticks chan<- time.Time, done chan<- struct{}) {
	defer close(ticks)
	defer close(done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			select {
			case ticks <- c.now():
			default:
				// reader is behind, the next tick carries a fresher time anyway
			}
		case <-ctx.Done():
			return
		}
	}
}

// Stop halts the ticker and waits for its goroutine to exit.
func (c *Clock) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.ticks, c.cancel, c.done = nil, nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the clock has been started and not stopped.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runningLocked()
}

func (c *Clock) runningLocked() bool {
	if c.done == nil {
		return false
	}
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}
