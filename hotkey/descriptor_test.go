package hotkey

import (
	"errors"
	"testing"

	"accentring/keyboard"
)

func TestParseDescriptor(t *testing.T) {
	tests := []struct {
		chord string
		key   keyboard.Key
		mods  keyboard.Modifiers
		norm  string
	}{
		{"Ctrl+Alt+A", keyboard.KeyA, keyboard.ModCtrl | keyboard.ModAlt, "Ctrl+Alt+A"},
		{"alt + ctrl + a", keyboard.KeyA, keyboard.ModCtrl | keyboard.ModAlt, "Ctrl+Alt+A"},
		{"control+shift+d", keyboard.KeyD, keyboard.ModCtrl | keyboard.ModShift, "Ctrl+Shift+D"},
		{"ctrl+ctrl+x", keyboard.KeyX, keyboard.ModCtrl, "Ctrl+X"},
		{"z", keyboard.KeyZ, 0, "Z"},
	}
	for _, tt := range tests {
		d, err := ParseDescriptor(tt.chord)
		if err != nil {
			t.Errorf("ParseDescriptor(%q): %v", tt.chord, err)
			continue
		}
		if d.Key() != tt.key || d.Modifiers() != tt.mods {
			t.Errorf("ParseDescriptor(%q) = %v/%v, want %v/%v", tt.chord, d.Key(), d.Modifiers(), tt.key, tt.mods)
		}
		if d.String() != tt.norm {
			t.Errorf("String() = %q, want %q", d.String(), tt.norm)
		}
	}
}

func TestParseDescriptorErrors(t *testing.T) {
	for _, chord := range []string{"", "ctrl+", "win+a", "ctrl+alt+F5", "ctrl+1", "ctrl+alt+space"} {
		if _, err := ParseDescriptor(chord); !errors.Is(err, ErrInvalidDescriptor) {
			t.Errorf("ParseDescriptor(%q) err = %v, want ErrInvalidDescriptor", chord, err)
		}
	}
}

func TestNewDescriptorRejectsCapsLock(t *testing.T) {
	if _, err := NewDescriptor(keyboard.KeyA, keyboard.ModCapsLock); !errors.Is(err, ErrInvalidDescriptor) {
		t.Errorf("got %v", err)
	}
}
