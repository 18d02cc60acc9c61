package pipeline

import (
	"sync"
	"time"
)

// Cooldown enforces a minimum wait between successive pipeline entries
// for the same source. It protects the external services' rate limits,
// not correctness; cache hits are served before this check and are
// therefore exempt.
type Cooldown struct {
	mu     sync.Mutex
	window time.Duration
	last   map[string]time.Time
	now    func() time.Time // injectable for tests
}

// NewCooldown creates a cooldown tracker with the given window
func NewCooldown(window time.Duration) *Cooldown {
	return &Cooldown{
		window: window,
		last:   make(map[string]time.Time),
		now:    time.Now,
	}
}

// TryAcquire reports whether the key may enter the pipeline now, and
// records the entry when it may. Disabled windows always admit.
func (c *Cooldown) TryAcquire(key string) bool {
	if c.window <= 0 {
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if last, ok := c.last[key]; ok && now.Sub(last) < c.window {
		return false
	}

	// Expired entries are dead weight; drop them while we hold the lock
	// so the map tracks active windows, not every URL ever seen
	for k, t := range c.last {
		if now.Sub(t) >= c.window {
			delete(c.last, k)
		}
	}

	c.last[key] = now
	return true
}

// Remaining returns how long until the key may enter again
func (c *Cooldown) Remaining(key string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	last, ok := c.last[key]
	if !ok {
		return 0
	}
	remaining := c.window - c.now().Sub(last)
	if remaining < 0 {
		return 0
	}
	return remaining
}
