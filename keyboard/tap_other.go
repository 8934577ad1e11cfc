//go:build !windows

package keyboard

type unsupportedTap struct{}

// NewTap returns a tap whose Install always fails with ErrUnsupported.
func NewTap(string) Tap { return unsupportedTap{} }

func (unsupportedTap) Install(Callback) error { return ErrUnsupported }
func (unsupportedTap) Uninstall()             {}
func (unsupportedTap) Installed() bool        { return false }

// NewTranslator returns the platform translator.
func NewTranslator() Translator { return USLayout{} }

// CursorPos is not available without a window system binding.
func CursorPos() (x, y int) { return 0, 0 }
