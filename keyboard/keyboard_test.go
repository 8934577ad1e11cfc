package keyboard

import (
	"errors"
	"testing"
)

func TestKeyByName(t *testing.T) {
	tests := []struct {
		name string
		want Key
		ok   bool
	}{
		{"a", KeyA, true},
		{"Z", KeyZ, true},
		{" d ", KeyD, true},
		{"7", Key0 + 7, true},
		{"space", KeySpace, true},
		{"F1", KeyF1, true},
		{"f12", KeyF12, true},
		{"f13", 0, false},
		{"ab", 0, false},
		{"-", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := KeyByName(tt.name)
		if ok != tt.ok || got != tt.want {
			t.Errorf("KeyByName(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKeyClasses(t *testing.T) {
	if !KeyA.IsLetter() || !KeyZ.IsLetter() || (KeyZ + 1).IsLetter() || (KeyA - 1).IsLetter() {
		t.Error("letter range must be exactly A-Z")
	}
	if KeyA.IsDigit() || !Key0.IsDigit() || !Key9.IsDigit() {
		t.Error("digit range must be exactly 0-9")
	}
	if !KeyLShift.IsModifier() || KeyA.IsModifier() {
		t.Error("modifier classification wrong")
	}
	if got := KeyD.String(); got != "D" {
		t.Errorf("KeyD.String() = %q", got)
	}
	if got := (KeyF1 + 4).String(); got != "F5" {
		t.Errorf("F5 String() = %q", got)
	}
}

func TestModifiersString(t *testing.T) {
	if got := (ModCtrl | ModAlt).String(); got != "Ctrl+Alt" {
		t.Errorf("got %q", got)
	}
	if got := Modifiers(0).String(); got != "" {
		t.Errorf("got %q", got)
	}
	if !(ModCtrl | ModShift).Has(ModShift) || ModCtrl.Has(ModCtrl|ModAlt) {
		t.Error("Has is wrong")
	}
}

func TestUSLayout(t *testing.T) {
	var l USLayout
	tests := []struct {
		key  Key
		mods Modifiers
		want string
	}{
		{KeyA, 0, "a"},
		{KeyA, ModShift, "A"},
		{KeyA, ModCapsLock, "A"},
		{KeyA, ModShift | ModCapsLock, "a"},
		{KeyE, ModCtrl, "e"},
		{Key0 + 1, 0, "1"},
		{Key0 + 1, ModShift, "!"},
		{KeySpace, 0, " "},
		{KeyEscape, 0, ""},
	}
	for _, tt := range tests {
		if got := l.Translate(tt.key, tt.mods); got != tt.want {
			t.Errorf("Translate(%v, %v) = %q, want %q", tt.key, tt.mods, got, tt.want)
		}
	}
}

func TestFakeTapLifecycle(t *testing.T) {
	f := NewFakeTap()
	if v := f.Send(Event{Key: KeyA, Down: true}); v != Forward {
		t.Fatal("uninstalled tap must forward")
	}

	var seen []Event
	if err := f.Install(func(ev Event) Verdict {
		seen = append(seen, ev)
		return Consume
	}); err != nil {
		t.Fatal(err)
	}
	if err := f.Install(func(Event) Verdict { return Forward }); !errors.Is(err, ErrAlreadyInstalled) {
		t.Fatalf("double install: got %v", err)
	}
	if v := f.Press(KeyA+1, 0); v != Consume {
		t.Errorf("verdict = %v, want Consume", v)
	}
	if len(seen) != 2 || !seen[0].Down || seen[1].Down {
		t.Errorf("unexpected events %+v", seen)
	}

	f.Uninstall()
	f.Uninstall()
	if ins, un := f.Counts(); ins != 1 || un != 1 {
		t.Errorf("counts = %d/%d, want 1/1", ins, un)
	}

	f.FailInstall(ErrTapRegistration)
	if err := f.Install(func(Event) Verdict { return Forward }); !errors.Is(err, ErrTapRegistration) {
		t.Errorf("got %v", err)
	}
}
