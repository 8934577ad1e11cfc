// Package config loads and saves the user's settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"accentring/hotkey"
	"accentring/inject"
	"accentring/keyboard"
)

// FileName is the settings file inside the config directory.
const FileName = "settings.toml"

// Settings mirrors settings.toml.
type Settings struct {
	MainKey  string `toml:"main_key"`
	UseCtrl  bool   `toml:"use_ctrl"`
	UseAlt   bool   `toml:"use_alt"`
	UseShift bool   `toml:"use_shift"`

	InjectMode string `toml:"inject_mode"`
	Precompose bool   `toml:"precompose"`
}

// Default returns the built-in settings: Ctrl+Alt+A, typed output.
func Default() *Settings {
	return &Settings{
		MainKey:    "A",
		UseCtrl:    true,
		UseAlt:     true,
		InjectMode: string(inject.ModeType),
	}
}

// DefaultPath is settings.toml in the per-user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(dir, "accentring", FileName)
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (*Settings, error) {
	s := Default()
	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if _, err := toml.Decode(string(data), s); err != nil {
		return nil, fmt.Errorf("decode settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path, creating the directory if needed.
func (s *Settings) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := s.Validate(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Validate checks that the chord and inject mode resolve.
func (s *Settings) Validate() error {
	if _, err := s.Descriptor(); err != nil {
		return err
	}
	if _, err := inject.ParseMode(s.InjectMode); err != nil {
		return err
	}
	return nil
}

// Descriptor resolves the configured chord.
func (s *Settings) Descriptor() (hotkey.Descriptor, error) {
	key, ok := keyboard.KeyByName(s.MainKey)
	if !ok {
		return hotkey.Descriptor{}, fmt.Errorf("%w: unknown main_key %q", hotkey.ErrInvalidDescriptor, s.MainKey)
	}
	var mods keyboard.Modifiers
	if s.UseCtrl {
		mods |= keyboard.ModCtrl
	}
	if s.UseAlt {
		mods |= keyboard.ModAlt
	}
	if s.UseShift {
		mods |= keyboard.ModShift
	}
	return hotkey.NewDescriptor(key, mods)
}

// SetDescriptor stores d in s.
func (s *Settings) SetDescriptor(d hotkey.Descriptor) {
	s.MainKey = d.Key().String()
	m := d.Modifiers()
	s.UseCtrl = m.Has(keyboard.ModCtrl)
	s.UseAlt = m.Has(keyboard.ModAlt)
	s.UseShift = m.Has(keyboard.ModShift)
}
