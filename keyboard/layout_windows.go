//go:build windows

package keyboard

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	procToUnicodeEx       = user32.NewProc("ToUnicodeEx")
	procMapVirtualKeyExW  = user32.NewProc("MapVirtualKeyExW")
	procGetKeyboardLayout = user32.NewProc("GetKeyboardLayout")
	procGetCursorPos      = user32.NewProc("GetCursorPos")
)

const (
	mapvkVKToVSC = 0
	// tuNoStateChange keeps ToUnicodeEx from disturbing a pending dead key
	// in the kernel keyboard state (Windows 10 1607+).
	tuNoStateChange = 0x4
)

// LayoutTranslator resolves text through the keyboard layout of the
// foreground window, the same layout the target application would use.
type LayoutTranslator struct {
	fallback USLayout
}

// NewTranslator returns the platform translator.
func NewTranslator() Translator { return LayoutTranslator{} }

func (t LayoutTranslator) Translate(key Key, mods Modifiers) string {
	hkl := foregroundLayout()

	var state [256]byte
	if mods.Has(ModShift) {
		state[KeyShift] = 0x80
	}
	if mods.Has(ModCapsLock) {
		state[KeyCapital] = 0x01
	}

	scan, _, _ := procMapVirtualKeyExW.Call(uintptr(key), mapvkVKToVSC, hkl)
	var buf [8]uint16
	n, _, _ := procToUnicodeEx.Call(
		uintptr(key),
		scan,
		uintptr(unsafe.Pointer(&state[0])),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
		tuNoStateChange,
		hkl,
	)
	// Negative means a dead key, zero means nothing printable.
	if c := int32(n); c > 0 && int(c) <= len(buf) {
		return windows.UTF16ToString(buf[:c])
	}
	return t.fallback.Translate(key, mods)
}

func foregroundLayout() uintptr {
	var tid uint32
	if hwnd := windows.GetForegroundWindow(); hwnd != 0 {
		tid, _ = windows.GetWindowThreadProcessId(hwnd, nil)
	}
	hkl, _, _ := procGetKeyboardLayout.Call(uintptr(tid))
	return hkl
}

// CursorPos returns the pointer location in screen coordinates.
func CursorPos() (x, y int) {
	var p point
	if r, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&p))); r == 0 {
		return 0, 0
	}
	return int(p.x), int(p.y)
}
