package hotkey

import (
	"fmt"

	"accentring/keyboard"
	"accentring/log"
)

type tapHotkey struct {
	tap   keyboard.Tap
	det   *Detector
	edges chan Edge
}

// New returns a Hotkey that watches tap for desc. The tap is installed by
// Register and never consumes an event.
func New(desc Descriptor, tap keyboard.Tap) Hotkey {
	return &tapHotkey{
		tap:   tap,
		det:   NewDetector(desc),
		edges: make(chan Edge, 16),
	}
}

func (h *tapHotkey) Register() error {
	if err := h.tap.Install(h.handle); err != nil {
		return fmt.Errorf("primary tap: %w", err)
	}
	return nil
}

func (h *tapHotkey) handle(ev keyboard.Event) keyboard.Verdict {
	if e := h.det.Handle(ev); e != 0 {
		select {
		case h.edges <- e:
		default:
			log.Warnf("hotkey %s edge dropped, consumer not keeping up", e)
		}
	}
	return keyboard.Forward
}

func (h *tapHotkey) Unregister() {
	h.tap.Uninstall()
}

func (h *tapHotkey) Edges() <-chan Edge {
	return h.edges
}
