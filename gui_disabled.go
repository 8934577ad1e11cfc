//go:build nogui

package main

import "accentring/surface"

const guiAvailable = false

func runGUI(serve func(surface.Surface) int) int {
	return serve(nil)
}
