//go:build !windows && !nogui

package gui

// The ring is only positioned natively on Windows, the one platform with a
// keyboard tap. Elsewhere fyne places the window.

func foregroundWindow() uintptr { return 0 }

func restoreForeground(uintptr) {}

func placeNative(any, int, int, []area) bool { return false }
