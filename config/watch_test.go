package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func nextSettings(t *testing.T, ch <-chan *Settings) *Settings {
	t.Helper()
	select {
	case s, ok := <-ch:
		if !ok {
			t.Fatal("watch channel closed")
		}
		return s
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for reload")
	}
	return nil
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := Watch(ctx, path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	// Invalid content is skipped, the next valid write comes through.
	if err := os.WriteFile(path, []byte("main_key = \"??\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(3 * reloadDelay)
	data := "main_key = \"Q\"\nuse_ctrl = true\nuse_alt = false\nuse_shift = true\ninject_mode = \"paste\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s := nextSettings(t, ch)
	d, err := s.Descriptor()
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != "Ctrl+Shift+Q" || s.InjectMode != "paste" {
		t.Errorf("reloaded %s %s", d, s.InjectMode)
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := Watch(ctx, filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case s := <-ch:
		t.Fatalf("unexpected reload %+v", s)
	case <-time.After(5 * reloadDelay):
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := Watch(ctx, filepath.Join(t.TempDir(), "sub", FileName))
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	cancel()
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("unexpected settings after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed")
	}
}
