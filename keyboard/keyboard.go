// Package keyboard binds the process-wide low-level keyboard tap.
//
// A Tap relays every key-down and key-up the OS delivers, together with
// the modifier state at the time of the event. The callback runs on the
// tap's own OS thread, never on the caller's goroutine, and its Verdict
// decides whether the event continues down the OS hook chain.
package keyboard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTapRegistration is returned when the OS refuses to install a hook.
	ErrTapRegistration = errors.New("keyboard tap registration failed")
	// ErrUnsupported is returned on platforms without a low-level tap.
	ErrUnsupported = errors.New("keyboard tap not supported on this platform")
	// ErrAlreadyInstalled is returned by Install on a live tap.
	ErrAlreadyInstalled = errors.New("keyboard tap already installed")
)

// Key is a Windows virtual-key code.
type Key uint32

const (
	KeyBackspace Key = 0x08
	KeyTab       Key = 0x09
	KeyReturn    Key = 0x0D
	KeyShift     Key = 0x10
	KeyControl   Key = 0x11
	KeyMenu      Key = 0x12
	KeyCapital   Key = 0x14
	KeyEscape    Key = 0x1B
	KeySpace     Key = 0x20

	Key0 Key = 0x30
	Key9 Key = 0x39
	KeyA Key = 0x41
	KeyD Key = 0x44
	KeyE Key = 0x45
	KeyO Key = 0x4F
	KeyX Key = 0x58
	KeyZ Key = 0x5A

	KeyF1  Key = 0x70
	KeyF12 Key = 0x7B

	KeyLShift   Key = 0xA0
	KeyRShift   Key = 0xA1
	KeyLControl Key = 0xA2
	KeyRControl Key = 0xA3
	KeyLMenu    Key = 0xA4
	KeyRMenu    Key = 0xA5
)

// IsLetter reports whether k is in the A-Z range.
func (k Key) IsLetter() bool { return k >= KeyA && k <= KeyZ }

// IsDigit reports whether k is one of the top-row digit keys.
func (k Key) IsDigit() bool { return k >= Key0 && k <= Key9 }

func (k Key) String() string {
	switch {
	case k.IsLetter(), k.IsDigit():
		return string(rune(k))
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("F%d", k-KeyF1+1)
	}
	switch k {
	case KeySpace:
		return "Space"
	case KeyTab:
		return "Tab"
	case KeyReturn:
		return "Enter"
	case KeyEscape:
		return "Esc"
	}
	return fmt.Sprintf("0x%02X", uint32(k))
}

// KeyByName resolves a single key name such as "a", "7", "f5" or "space".
func KeyByName(name string) (Key, bool) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if len(n) == 1 {
		c := n[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return Key(c), true
		}
		return 0, false
	}
	switch n {
	case "SPACE":
		return KeySpace, true
	case "TAB":
		return KeyTab, true
	case "ENTER", "RETURN":
		return KeyReturn, true
	case "ESC", "ESCAPE":
		return KeyEscape, true
	}
	if strings.HasPrefix(n, "F") {
		var f int
		if _, err := fmt.Sscanf(n, "F%d", &f); err == nil && f >= 1 && f <= 12 {
			return KeyF1 + Key(f-1), true
		}
	}
	return 0, false
}

// IsModifier reports whether k is one of the ctrl, alt or shift keys.
func (k Key) IsModifier() bool {
	switch k {
	case KeyShift, KeyControl, KeyMenu,
		KeyLShift, KeyRShift, KeyLControl, KeyRControl, KeyLMenu, KeyRMenu:
		return true
	}
	return false
}

// Modifiers is the set of modifier keys held when an event was observed.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModAlt
	ModShift
	// ModCapsLock is the caps-lock toggle state. It takes part in text
	// translation but never in chord matching.
	ModCapsLock
)

// ChordMask selects the modifiers that take part in chord matching.
const ChordMask = ModCtrl | ModAlt | ModShift

// Has reports whether every modifier in x is set in m.
func (m Modifiers) Has(x Modifiers) bool { return m&x == x }

func (m Modifiers) String() string {
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if m.Has(ModCapsLock) {
		parts = append(parts, "CapsLock")
	}
	return strings.Join(parts, "+")
}

// Event is one key transition observed by a tap.
type Event struct {
	Key  Key
	Down bool
	Mods Modifiers
	// Injected is set for synthetic input, including our own output.
	Injected bool
}

// Verdict is a callback's decision about an event.
type Verdict int

const (
	// Forward passes the event to the next observer in the OS chain.
	Forward Verdict = iota
	// Consume swallows the event; no other application sees it.
	Consume
)

// Callback receives tap events on the tap's OS thread. It must return
// promptly and must not wait on work done elsewhere.
type Callback func(Event) Verdict

// Tap is one process-wide low-level keyboard registration.
type Tap interface {
	// Install registers cb with the OS.
	Install(cb Callback) error
	// Uninstall removes the registration. It is safe to call on a tap
	// that was never installed or is already removed.
	Uninstall()
	// Installed reports whether the registration is live.
	Installed() bool
}

// Translator turns a key and modifier state into the text the active
// keyboard layout would produce for it.
type Translator interface {
	Translate(key Key, mods Modifiers) string
}
