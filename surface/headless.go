package surface

import (
	"sync"

	"accentring/log"
)

// Headless is a Surface with no window. Something else, a terminal UI or a
// test, decides the outcome by calling Select or Dismiss while it is shown.
type Headless struct {
	mu      sync.Mutex
	l       Listener
	visible bool
	x, y    int
	shows   int
}

func NewHeadless() *Headless {
	return &Headless{}
}

func (h *Headless) Bind(l Listener) {
	h.mu.Lock()
	h.l = l
	h.mu.Unlock()
}

func (h *Headless) Show(x, y int) {
	h.mu.Lock()
	h.visible = true
	h.x, h.y = x, y
	h.shows++
	h.mu.Unlock()
	log.Debug("surface shown")
}

func (h *Headless) Hide() {
	h.mu.Lock()
	h.visible = false
	h.mu.Unlock()
}

// Select reports idx to the listener if the surface is visible and closes
// the surface, as a click on a wedge does.
func (h *Headless) Select(idx int) bool {
	h.mu.Lock()
	l, ok := h.l, h.visible
	h.visible = false
	h.mu.Unlock()
	if !ok || l == nil {
		return false
	}
	l.Selected(idx)
	return true
}

// Dismiss closes a visible surface without a pick.
func (h *Headless) Dismiss() bool {
	h.mu.Lock()
	l, ok := h.l, h.visible
	h.visible = false
	h.mu.Unlock()
	if !ok || l == nil {
		return false
	}
	l.Dismissed()
	return true
}

// Visible reports whether the surface is shown.
func (h *Headless) Visible() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.visible
}

// Position returns the point of the most recent Show.
func (h *Headless) Position() (x, y int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.x, h.y
}

// Shows returns how many times Show was called.
func (h *Headless) Shows() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.shows
}
