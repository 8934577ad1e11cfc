//go:build windows && !nogui

package gui

import (
	"unsafe"

	"fyne.io/fyne/v2/driver"
	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	procGetWindowRect       = user32.NewProc("GetWindowRect")
	procGetWindowLongPtrW   = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW   = user32.NewProc("SetWindowLongPtrW")
	procSetWindowPos        = user32.NewProc("SetWindowPos")
)

const (
	gwlExStyle      = ^uintptr(19) // -20
	wsExToolWindow  = 0x00000080
	wsExNoActivate  = 0x08000000
	hwndTopmost     = ^uintptr(0) // -1
	swpNoSize       = 0x0001
	swpNoActivate   = 0x0010
	swpShowWindow   = 0x0040
	swpFrameChanged = 0x0020
)

type rect struct {
	left, top, right, bottom int32
}

func foregroundWindow() uintptr {
	h, _, _ := procGetForegroundWindow.Call()
	return h
}

// restoreForeground hands focus back to prev if showing the ring took it.
func restoreForeground(prev uintptr) {
	if prev == 0 || foregroundWindow() == prev {
		return
	}
	procSetForegroundWindow.Call(prev)
}

// placeNative moves the ring window so it is centred on (px, py), keeps it
// above other windows and marks it as never taking activation, so clicks
// on it leave the keyboard with the application being typed into.
func placeNative(ctx any, px, py int, areas []area) bool {
	wc, ok := ctx.(driver.WindowsWindowContext)
	if !ok || wc.HWND == 0 {
		return false
	}
	hwnd := wc.HWND

	ex, _, _ := procGetWindowLongPtrW.Call(hwnd, gwlExStyle)
	if want := ex | wsExNoActivate | wsExToolWindow; want != ex {
		procSetWindowLongPtrW.Call(hwnd, gwlExStyle, want)
	}

	var r rect
	if ok, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r))); ok == 0 {
		return false
	}
	x, y := centerOn(px, py, int(r.right-r.left), int(r.bottom-r.top), areas)
	ret, _, _ := procSetWindowPos.Call(hwnd, hwndTopmost,
		uintptr(x), uintptr(y), 0, 0,
		swpNoSize|swpNoActivate|swpShowWindow|swpFrameChanged)
	return ret != 0
}
