//go:build !windows

package singleinstance

// Lock is a no-op outside Windows, where no taps can be installed anyway.
type Lock struct{}

func TryLock(_ string) (*Lock, error) { return &Lock{}, nil }

func (l *Lock) Release() error { return nil }

func DefaultName() string { return "" }
