//go:build windows

package singleinstance

import (
	"errors"
	"strings"
	"testing"
)

func TestTryLock(t *testing.T) {
	const name = `Local\accentring-test-lock`

	first, err := TryLock(name)
	if err != nil {
		t.Fatalf("first TryLock: %v", err)
	}
	if _, err := TryLock(name); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second TryLock: got %v, want ErrAlreadyRunning", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("second Release: %v", err)
	}

	again, err := TryLock(name)
	if err != nil {
		t.Fatalf("TryLock after release: %v", err)
	}
	again.Release()
}

func TestTryLockEmptyName(t *testing.T) {
	if l, err := TryLock(""); err == nil {
		l.Release()
		t.Fatal("expected error for empty name")
	}
}

func TestDefaultName(t *testing.T) {
	if n := DefaultName(); !strings.HasPrefix(n, `Local\accentring-`) {
		t.Errorf("DefaultName() = %q", n)
	}
}
