package keyboard

import (
	"sync"
	"sync/atomic"
)

// capsTracker follows the caps-lock toggle from the events the taps see.
// A hook thread never pumps keyboard input, so its GetKeyState view goes
// stale; the OS state is read once to seed the tracker. Every tap sees the
// same physical press, and the held flag makes sure it flips only once and
// not again on auto-repeat.
type capsTracker struct {
	seed sync.Once
	on   atomic.Bool
	held atomic.Bool
}

func (c *capsTracker) init(read func() bool) {
	c.seed.Do(func() { c.on.Store(read()) })
}

func (c *capsTracker) observe(key Key, down bool) {
	if key != KeyCapital {
		return
	}
	if !down {
		c.held.Store(false)
		return
	}
	if !c.held.CompareAndSwap(false, true) {
		return
	}
	for {
		v := c.on.Load()
		if c.on.CompareAndSwap(v, !v) {
			return
		}
	}
}

func (c *capsTracker) On() bool { return c.on.Load() }
