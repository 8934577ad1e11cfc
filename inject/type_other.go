//go:build !windows

package inject

import "errors"

func newTyper() (Injector, error) {
	return nil, errors.New("unicode keystroke synthesis needs windows")
}
