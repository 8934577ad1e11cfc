package keyboard

import "sync"

// FakeTap is an in-memory Tap for tests. Send delivers an event the way the
// OS would, synchronously on the caller's goroutine.
type FakeTap struct {
	mu         sync.Mutex
	cb         Callback
	installErr error
	installs   int
	uninstalls int
}

func NewFakeTap() *FakeTap { return &FakeTap{} }

func (f *FakeTap) Install(cb Callback) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.installErr != nil {
		return f.installErr
	}
	if f.cb != nil {
		return ErrAlreadyInstalled
	}
	f.cb = cb
	f.installs++
	return nil
}

func (f *FakeTap) Uninstall() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cb == nil {
		return
	}
	f.cb = nil
	f.uninstalls++
}

func (f *FakeTap) Installed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cb != nil
}

// FailInstall makes subsequent Install calls return err. nil clears it.
func (f *FakeTap) FailInstall(err error) {
	f.mu.Lock()
	f.installErr = err
	f.mu.Unlock()
}

// Send runs the installed callback. An uninstalled tap forwards everything.
func (f *FakeTap) Send(ev Event) Verdict {
	f.mu.Lock()
	cb := f.cb
	f.mu.Unlock()
	if cb == nil {
		return Forward
	}
	return cb(ev)
}

// Press sends a key-down followed by a key-up and returns the key-down verdict.
func (f *FakeTap) Press(key Key, mods Modifiers) Verdict {
	v := f.Send(Event{Key: key, Down: true, Mods: mods})
	f.Send(Event{Key: key, Mods: mods})
	return v
}

// Counts returns how many times the tap was installed and uninstalled.
func (f *FakeTap) Counts() (installs, uninstalls int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.installs, f.uninstalls
}
