package hotkey

import (
	"errors"
	"fmt"
	"strings"

	"accentring/keyboard"
)

var ErrInvalidDescriptor = errors.New("invalid hotkey")

var modifierByName = map[string]keyboard.Modifiers{
	"CTRL":    keyboard.ModCtrl,
	"CONTROL": keyboard.ModCtrl,
	"ALT":     keyboard.ModAlt,
	"SHIFT":   keyboard.ModShift,
}

// Descriptor is the configured chord: a modifier set plus one alphabetic
// primary key. Construct it with NewDescriptor or ParseDescriptor.
type Descriptor struct {
	key  keyboard.Key
	mods keyboard.Modifiers
}

// NewDescriptor validates key and mods.
func NewDescriptor(key keyboard.Key, mods keyboard.Modifiers) (Descriptor, error) {
	if !key.IsLetter() {
		return Descriptor{}, fmt.Errorf("%w: primary key %v is not a letter", ErrInvalidDescriptor, key)
	}
	if mods&^keyboard.ChordMask != 0 {
		return Descriptor{}, fmt.Errorf("%w: unsupported modifier set %v", ErrInvalidDescriptor, mods)
	}
	return Descriptor{key: key, mods: mods}, nil
}

// ParseDescriptor parses a chord such as "Ctrl+Alt+A".
func ParseDescriptor(chord string) (Descriptor, error) {
	raw := strings.TrimSpace(chord)
	if raw == "" {
		return Descriptor{}, fmt.Errorf("%w: empty", ErrInvalidDescriptor)
	}
	parts := strings.Split(raw, "+")

	var mods keyboard.Modifiers
	for _, token := range parts[:len(parts)-1] {
		mod, ok := modifierByName[strings.ToUpper(strings.TrimSpace(token))]
		if !ok {
			return Descriptor{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidDescriptor, token, raw)
		}
		mods |= mod
	}

	key, ok := keyboard.KeyByName(parts[len(parts)-1])
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidDescriptor, parts[len(parts)-1], raw)
	}
	return NewDescriptor(key, mods)
}

func (d Descriptor) Key() keyboard.Key             { return d.key }
func (d Descriptor) Modifiers() keyboard.Modifiers { return d.mods }

func (d Descriptor) String() string {
	if m := d.mods.String(); m != "" {
		return m + "+" + d.key.String()
	}
	return d.key.String()
}
