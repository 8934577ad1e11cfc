package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"accentring/hotkey"
	"accentring/inject"
	"accentring/keyboard"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d, err := s.Descriptor()
	if err != nil {
		t.Fatalf("Descriptor: %v", err)
	}
	if d.String() != "Ctrl+Alt+A" {
		t.Errorf("default chord = %s", d)
	}
	if s.InjectMode != string(inject.ModeType) || s.Precompose {
		t.Errorf("default output = %q precompose=%v", s.InjectMode, s.Precompose)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	data := `main_key = "q"
use_ctrl = true
use_alt = false
use_shift = true
inject_mode = "paste"
precompose = true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d, err := s.Descriptor()
	if err != nil {
		t.Fatal(err)
	}
	if d.Key() != keyboard.Key('Q') || d.Modifiers() != keyboard.ModCtrl|keyboard.ModShift {
		t.Errorf("chord = %s", d)
	}
	if s.InjectMode != "paste" || !s.Precompose {
		t.Errorf("output = %q precompose=%v", s.InjectMode, s.Precompose)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("precompose = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.MainKey != "A" || !s.UseCtrl || !s.UseAlt || !s.Precompose {
		t.Errorf("partial load = %+v", s)
	}
}

func TestLoadOmittedModifierKeepsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	data := "main_key = \"Q\"\nuse_shift = true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	d, err := s.Descriptor()
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != "Ctrl+Alt+Shift+Q" {
		t.Errorf("chord = %s, want omitted use_ctrl/use_alt to stay on", d)
	}
}

func TestLoadRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"digit key", `main_key = "7"`, hotkey.ErrInvalidDescriptor},
		{"unknown key", `main_key = "banana"`, hotkey.ErrInvalidDescriptor},
		{"inject mode", `inject_mode = "telepathy"`, inject.ErrUnknownMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			if err := os.WriteFile(path, []byte(tt.data+"\n"), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); !errors.Is(err, tt.want) {
				t.Errorf("Load error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("main_key = \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", FileName)
	s := Default()
	d, err := hotkey.ParseDescriptor("Alt+Shift+Z")
	if err != nil {
		t.Fatal(err)
	}
	s.SetDescriptor(d)
	s.InjectMode = "paste"
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	gd, err := got.Descriptor()
	if err != nil {
		t.Fatal(err)
	}
	if gd != d {
		t.Errorf("chord = %s, want %s", gd, d)
	}
	if got.InjectMode != "paste" {
		t.Errorf("inject_mode = %q", got.InjectMode)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	s := Default()
	s.MainKey = ""
	if err := s.Save(filepath.Join(t.TempDir(), FileName)); err == nil {
		t.Fatal("expected error saving invalid settings")
	}
}
