//go:build windows

package inject

import (
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"

	"accentring/log"
)

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

const (
	inputKeyboard    = 1
	keyeventfKeyUp   = 0x0002
	keyeventfUnicode = 0x0004
)

type keybdInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

// keyboardInput mirrors INPUT with the KEYBDINPUT arm of the union. The
// trailing pad covers the larger MOUSEINPUT arm.
type keyboardInput struct {
	typ uint32
	ki  keybdInput
	_   uint64
}

type typer struct{}

func newTyper() (Injector, error) {
	if err := procSendInput.Find(); err != nil {
		return nil, err
	}
	return typer{}, nil
}

func (typer) Inject(text string) {
	units := utf16.Encode([]rune(text))
	if len(units) == 0 {
		return
	}
	inputs := make([]keyboardInput, 0, 2*len(units))
	for _, u := range units {
		inputs = append(inputs,
			keyboardInput{typ: inputKeyboard, ki: keybdInput{wScan: u, dwFlags: keyeventfUnicode}},
			keyboardInput{typ: inputKeyboard, ki: keybdInput{wScan: u, dwFlags: keyeventfUnicode | keyeventfKeyUp}},
		)
	}
	n, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(n) != len(inputs) {
		log.Warnf("inject: SendInput delivered %d of %d events: %v", n, len(inputs), err)
	}
}
