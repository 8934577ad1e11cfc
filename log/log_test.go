package log

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupLogDir(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	SetDir(tmp)
	t.Cleanup(func() { Close(); SetDir(""); SetDebug(false) })
	return tmp
}

func readDiag(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "diagnostics_log.txt"))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestResolveDirFlag(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "mylog")
	got, err := ResolveDir(abs)
	if err != nil {
		t.Fatal(err)
	}
	if got != abs {
		t.Errorf("got %q, want %q", got, abs)
	}
}

func TestResolveDirFlagRelative(t *testing.T) {
	got, err := ResolveDir("logs")
	if err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(wd, "logs")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveDirEnv(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "env-log")
	t.Setenv("ACCENTRING_LOG_PATH", abs)
	got, err := ResolveDir("")
	if err != nil {
		t.Fatal(err)
	}
	if got != abs {
		t.Errorf("got %q, want %q", got, abs)
	}
}

func TestResolveDirDefault(t *testing.T) {
	t.Setenv("ACCENTRING_LOG_PATH", "")
	got, err := ResolveDir("")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "accentring") {
		t.Errorf("default dir %q should be app specific", got)
	}
}

func TestInitCreatesFile(t *testing.T) {
	tmp := setupLogDir(t)

	if err := Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(tmp, "diagnostics_log.txt")); err != nil {
		t.Errorf("diagnostics_log.txt not created: %v", err)
	}
}

func TestHelpersBeforeInitAreNoops(t *testing.T) {
	Info("dropped")
	Errorf("dropped %d", 1)
	Composition(1, "acute", 2)
	TapError("capture", errors.New("x"))
}

func TestStructuredEvents(t *testing.T) {
	tmp := setupLogDir(t)
	if err := Init(); err != nil {
		t.Fatal(err)
	}

	SessionStart("Ctrl+Alt+A", "type")
	Composition(1, "acute", 2)
	TapError("capture", errors.New("hook refused"))
	Close()

	out := readDiag(t, tmp)
	for _, want := range []string{"session_start", "hotkey=Ctrl+Alt+A", "composition", "mark=acute", "tap_error", "hook refused"} {
		if !strings.Contains(out, want) {
			t.Errorf("diagnostics missing %q:\n%s", want, out)
		}
	}
}

func TestDebugLevel(t *testing.T) {
	tmp := setupLogDir(t)
	if err := Init(); err != nil {
		t.Fatal(err)
	}
	StateChange("idle", "surface")
	Close()
	if strings.Contains(readDiag(t, tmp), "state") {
		t.Error("debug event written at info level")
	}

	SetDebug(true)
	if err := Init(); err != nil {
		t.Fatal(err)
	}
	StateChange("idle", "surface")
	Close()
	if !strings.Contains(readDiag(t, tmp), "from=idle") {
		t.Error("debug event missing with debug enabled")
	}
}

func TestCloseIdempotent(t *testing.T) {
	setupLogDir(t)

	if err := Init(); err != nil {
		t.Fatal(err)
	}
	Close()
	Close() // should not panic
}
