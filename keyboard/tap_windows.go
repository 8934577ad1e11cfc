//go:build windows

package keyboard

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"accentring/log"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procPeekMessageW        = user32.NewProc("PeekMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procGetAsyncKeyState    = user32.NewProc("GetAsyncKeyState")
	procGetKeyState         = user32.NewProc("GetKeyState")
)

const (
	whKeyboardLL  = 13
	wmKeyDown     = 0x0100
	wmKeyUp       = 0x0101
	wmSysKeyDown  = 0x0104
	wmSysKeyUp    = 0x0105
	wmQuit        = 0x0012
	pmNoRemove    = 0x0000
	llkhfInjected = 0x10

	stopTimeout = 2 * time.Second
)

// kbdllHookStruct mirrors KBDLLHOOKSTRUCT.
type kbdllHookStruct struct {
	vkCode      uint32
	scanCode    uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

type point struct {
	x int32
	y int32
}

// winMsg mirrors the Win32 MSG struct.
type winMsg struct {
	hWnd     uintptr
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       point
	lPrivate uint32
}

// hookState is what the trampoline needs on the hook thread.
type hookState struct {
	name string
	hook uintptr
	cb   Callback
}

// Every tap shares one trampoline because callbacks made with
// windows.NewCallback are never released. Low-level hooks are invoked on
// the thread that installed them, so the thread id selects the tap.
var (
	hookProc = windows.NewCallback(lowLevelKeyboardProc)
	hooks    sync.Map // uint32 thread id -> *hookState

	capsLock capsTracker
)

type loopReady struct {
	threadID uint32
	err      error
}

type winTap struct {
	name string

	mu       sync.Mutex
	threadID uint32
	done     chan struct{}
}

// NewTap returns an uninstalled tap. name only appears in diagnostics.
func NewTap(name string) Tap {
	return &winTap{name: name}
}

func (t *winTap) Install(cb Callback) error {
	if cb == nil {
		return errors.New("keyboard: nil callback")
	}
	if err := user32.Load(); err != nil {
		return fmt.Errorf("%w: user32.dll: %v", ErrTapRegistration, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done != nil {
		return ErrAlreadyInstalled
	}

	readyCh := make(chan loopReady, 1)
	doneCh := make(chan struct{})
	go runHookLoop(&hookState{name: t.name, cb: cb}, readyCh, doneCh)

	ready := <-readyCh
	if ready.err != nil {
		return ready.err
	}
	t.threadID = ready.threadID
	t.done = doneCh
	return nil
}

func (t *winTap) Uninstall() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done == nil {
		return
	}
	done, tid := t.done, t.threadID
	t.done, t.threadID = nil, 0

	if r, _, err := procPostThreadMessageW.Call(uintptr(tid), wmQuit, 0, 0); r == 0 {
		log.Warnf("tap %s: PostThreadMessageW(WM_QUIT) failed: %v", t.name, err)
	}

	timer := time.NewTimer(stopTimeout)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
		log.Errorf("tap %s: hook loop did not exit within %s, registration may leak", t.name, stopTimeout)
	}
}

func (t *winTap) Installed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done != nil
}

func runHookLoop(st *hookState, readyCh chan<- loopReady, doneCh chan struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(doneCh)

	tid := windows.GetCurrentThreadId()

	// Force creation of the thread message queue so Uninstall can post
	// WM_QUIT before the first key arrives.
	var qmsg winMsg
	procPeekMessageW.Call(uintptr(unsafe.Pointer(&qmsg)), 0, 0, 0, pmNoRemove)

	var module windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &module); err != nil {
		readyCh <- loopReady{err: fmt.Errorf("%w: GetModuleHandleEx: %v", ErrTapRegistration, err)}
		return
	}

	capsLock.init(func() bool {
		r, _, _ := procGetKeyState.Call(uintptr(KeyCapital))
		return r&1 != 0
	})

	hooks.Store(tid, st)
	defer hooks.Delete(tid)

	h, _, err := procSetWindowsHookExW.Call(whKeyboardLL, hookProc, uintptr(module), 0)
	if h == 0 {
		readyCh <- loopReady{err: fmt.Errorf("%w: SetWindowsHookExW: %v", ErrTapRegistration, err)}
		return
	}
	st.hook = h
	defer func() {
		if r, _, err := procUnhookWindowsHookEx.Call(h); r == 0 {
			log.Errorf("tap %s: UnhookWindowsHookEx failed: %v", st.name, err)
		}
	}()

	readyCh <- loopReady{threadID: tid}

	for {
		var msg winMsg
		ret, _, lastErr := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		switch int32(ret) {
		case -1:
			log.Warnf("tap %s: GetMessageW failed: %v", st.name, lastErr)
			return
		case 0:
			return
		}
	}
}

func lowLevelKeyboardProc(nCode, wParam, lParam uintptr) (ret uintptr) {
	v, ok := hooks.Load(windows.GetCurrentThreadId())
	if !ok || int32(nCode) < 0 {
		return callNext(0, nCode, wParam, lParam)
	}
	st := v.(*hookState)

	// A panic must never unwind into the OS dispatch path.
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("tap %s: callback panic: %v", st.name, r)
			ret = callNext(st.hook, nCode, wParam, lParam)
		}
	}()

	var down bool
	switch uint32(wParam) {
	case wmKeyDown, wmSysKeyDown:
		down = true
	case wmKeyUp, wmSysKeyUp:
	default:
		return callNext(st.hook, nCode, wParam, lParam)
	}

	k := (*kbdllHookStruct)(unsafe.Pointer(lParam))
	capsLock.observe(Key(k.vkCode), down)
	ev := Event{
		Key:      Key(k.vkCode),
		Down:     down,
		Mods:     currentModifiers(),
		Injected: k.flags&llkhfInjected != 0,
	}
	if st.cb(ev) == Consume {
		return 1
	}
	return callNext(st.hook, nCode, wParam, lParam)
}

func callNext(hook, nCode, wParam, lParam uintptr) uintptr {
	r, _, _ := procCallNextHookEx.Call(hook, nCode, wParam, lParam)
	return r
}

// currentModifiers samples the physical modifier state. GetKeyState is not
// refreshed for a thread that only runs a hook loop, so the async state
// is used for ctrl/alt/shift and the tracked toggle for caps lock.
func currentModifiers() Modifiers {
	var m Modifiers
	if keyDown(KeyControl) {
		m |= ModCtrl
	}
	if keyDown(KeyMenu) {
		m |= ModAlt
	}
	if keyDown(KeyShift) {
		m |= ModShift
	}
	if capsLock.On() {
		m |= ModCapsLock
	}
	return m
}

func keyDown(k Key) bool {
	r, _, _ := procGetAsyncKeyState.Call(uintptr(k))
	return r&0x8000 != 0
}
