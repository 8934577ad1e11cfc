package main

import (
	"errors"
	"testing"

	"accentring/config"
	"accentring/hotkey"
	"accentring/inject"
)

func TestApplyOverrides(t *testing.T) {
	s := config.Default()
	on := true
	if err := applyOverrides(s, "Ctrl+Shift+Q", "paste", &on); err != nil {
		t.Fatalf("applyOverrides: %v", err)
	}
	d, err := s.Descriptor()
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != "Ctrl+Shift+Q" {
		t.Errorf("chord = %s", d)
	}
	if s.InjectMode != "paste" || !s.Precompose {
		t.Errorf("output = %q precompose=%v", s.InjectMode, s.Precompose)
	}
}

func TestApplyOverridesKeepsSettings(t *testing.T) {
	s := config.Default()
	s.Precompose = true
	if err := applyOverrides(s, "", "", nil); err != nil {
		t.Fatal(err)
	}
	if s.MainKey != "A" || !s.Precompose || s.InjectMode != "type" {
		t.Errorf("settings changed: %+v", s)
	}
}

func TestApplyOverridesErrors(t *testing.T) {
	if err := applyOverrides(config.Default(), "Ctrl+Alt+5", "", nil); !errors.Is(err, hotkey.ErrInvalidDescriptor) {
		t.Errorf("digit chord: %v", err)
	}
	if err := applyOverrides(config.Default(), "", "yell", nil); !errors.Is(err, inject.ErrUnknownMode) {
		t.Errorf("bad mode: %v", err)
	}
}

func TestDaemonApply(t *testing.T) {
	s := config.Default()
	d := &daemon{}
	if !d.apply(s) {
		t.Fatal("first apply should change the daemon")
	}
	if d.desc.String() != "Ctrl+Alt+A" || d.mode != inject.ModeType {
		t.Fatalf("applied %s %s", d.desc, d.mode)
	}
	if d.apply(config.Default()) {
		t.Error("identical settings reported as a change")
	}

	changed := config.Default()
	changed.Precompose = true
	if !d.apply(changed) || !d.precompose {
		t.Error("precompose change not applied")
	}
}

func TestDaemonApplyKeepsFlagOverrides(t *testing.T) {
	d := &daemon{overrides: func(s *config.Settings) error {
		return applyOverrides(s, "Ctrl+Shift+Q", "", nil)
	}}
	d.apply(config.Default())

	s := config.Default()
	s.MainKey = "Z"
	if d.apply(s) {
		t.Error("file chord should not beat the -hotkey flag")
	}
	if d.desc.String() != "Ctrl+Shift+Q" {
		t.Errorf("desc = %s", d.desc)
	}

	bad := config.Default()
	bad.InjectMode = "yell"
	if d.apply(bad) {
		t.Error("invalid settings applied")
	}
}
