package app

import (
	"sync"
	"time"
)

// countdown is the session's single tick source: a cancellable task that
// invokes the given callback once per interval. start is idempotent while a
// run is active, so at most one ticker goroutine exists per countdown.
type countdown struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

func newCountdown(interval time.Duration) *countdown {
	return &countdown{interval: interval}
}

func (c *countdown) start(tick func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return
	}
	stop := make(chan struct{})
	c.stop = stop

	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				tick()
			case <-stop:
				return
			}
		}
	}()
}

// cancel stops the active run, if any. Safe to call from inside the tick
// callback and safe to call repeatedly.
func (c *countdown) cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop == nil {
		return
	}
	close(c.stop)
	c.stop = nil
}

func (c *countdown) running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}
