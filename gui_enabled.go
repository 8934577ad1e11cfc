//go:build !nogui

package main

import (
	"fmt"
	"os"
	"sync/atomic"

	"accentring/gui"
	"accentring/shutdown"
	"accentring/surface"
)

const guiAvailable = true

// runGUI hands the main thread to the window toolkit and runs serve on
// another goroutine with the ring window as its surface.
func runGUI(serve func(surface.Surface) int) int {
	var code atomic.Int32
	var app *gui.App
	app = gui.NewApp(
		func() {
			code.Store(int32(serve(app)))
			app.Quit()
		},
		func() { go shutdown.Run() },
	)
	shutdown.OnExit(app.Quit)
	if err := gui.Run(app); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	shutdown.Run()
	return int(code.Load())
}
