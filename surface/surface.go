// Package surface describes the radial selection surface the coordinator
// drives, and the geometry shared by every rendering of it.
package surface

import (
	"math"

	"accentring/compose"
)

// Listener receives the outcome of one showing of a surface. Exactly one of
// the two methods is called per Show, from whatever goroutine owns the
// surface's event loop.
type Listener interface {
	// Selected reports the slice the user picked.
	Selected(idx int)
	// Dismissed reports that the surface went away without a pick.
	Dismissed()
}

// Surface is a transient ring of slices.
type Surface interface {
	// Bind sets the listener for subsequent showings.
	Bind(l Listener)
	// Show centres the ring on screen point (x, y). It must not block.
	Show(x, y int)
	// Hide removes the ring. Hiding a hidden surface is a no-op.
	Hide()
}

// Default ring dimensions in pixels.
const (
	Diameter  = 150
	Thickness = 45
)

// Ring is the geometry of one ring of n slices. Slice 0 starts at 12
// o'clock and slices advance clockwise.
type Ring struct {
	Outer float64
	Inner float64
	N     int
}

// DefaultRing is the ring used by the bundled renderers.
func DefaultRing() Ring {
	return Ring{
		Outer: Diameter / 2,
		Inner: Diameter/2 - Thickness,
		N:     compose.Len(),
	}
}

// SliceAt returns the slice under (dx, dy), an offset from the ring centre
// in screen coordinates (y grows downward). It returns -1 when the point
// lies in the hole or outside the ring.
func (r Ring) SliceAt(dx, dy float64) int {
	if r.N <= 0 {
		return -1
	}
	dist := math.Hypot(dx, dy)
	if dist < r.Inner || dist > r.Outer {
		return -1
	}
	deg := math.Atan2(dx, -dy) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	idx := int(deg / (360 / float64(r.N)))
	if idx >= r.N {
		idx = r.N - 1
	}
	return idx
}

// Mid returns the offset from the centre at which slice idx's label is
// drawn, halfway between the inner and outer edge.
func (r Ring) Mid(idx int) (dx, dy float64) {
	step := 2 * math.Pi / float64(r.N)
	a := (float64(idx) + 0.5) * step
	rad := (r.Outer + r.Inner) / 2
	return rad * math.Sin(a), -rad * math.Cos(a)
}

// Labels returns the glyph for each slice in ring order.
func Labels() []string {
	out := make([]string, compose.Len())
	for i := range out {
		out[i] = compose.Label(i)
	}
	return out
}
