package hotkey

import "accentring/keyboard"

// Detector tracks whether the chord is held. It is driven from a single
// tap thread and is not safe for concurrent use.
type Detector struct {
	desc Descriptor
	held bool
}

func NewDetector(desc Descriptor) *Detector {
	return &Detector{desc: desc}
}

func (d *Detector) Held() bool { return d.held }

// Handle returns the edge ev produces, or 0. Key repeats while the chord
// is held produce nothing. Release only compares the primary key, so
// letting go of the modifiers first still closes the chord.
func (d *Detector) Handle(ev keyboard.Event) Edge {
	if ev.Injected || ev.Key != d.desc.key {
		return 0
	}
	if ev.Down {
		if !d.held && ev.Mods&keyboard.ChordMask == d.desc.mods {
			d.held = true
			return Activate
		}
		return 0
	}
	if d.held {
		d.held = false
		return Deactivate
	}
	return 0
}
