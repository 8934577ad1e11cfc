// Package hotkey turns primary-tap key events into edge-triggered chord
// activations.
package hotkey

// Edge is a transition of the configured chord.
type Edge int

const (
	// Activate fires once when the chord goes down.
	Activate Edge = iota + 1
	// Deactivate fires once when the chord key is released.
	Deactivate
)

func (e Edge) String() string {
	switch e {
	case Activate:
		return "activate"
	case Deactivate:
		return "deactivate"
	}
	return "none"
}

type Hotkey interface {
	Register() error
	Unregister()
	Edges() <-chan Edge
}
