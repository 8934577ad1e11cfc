//go:build !nogui

package gui

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/go-gl/glfw/v3.3/glfw"

	"accentring/log"
	"accentring/surface"
)

// App is the fyne surface: a frameless window holding the ring, plus the
// tray icon. It satisfies surface.Surface.
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	ring    *RingWidget
	onReady func()
	onQuit  func()

	mu      sync.Mutex
	l       surface.Listener
	visible bool
}

func NewApp(onReady, onQuit func()) *App {
	return &App{onReady: onReady, onQuit: onQuit}
}

// Run owns the calling goroutine, which must be the main thread, until the
// app quits. onReady runs on its own goroutine once the window exists.
func Run(a *App) error {
	a.fyneApp = app.NewWithID("io.accentring")
	a.fyneApp.Settings().SetTheme(ringTheme{})

	if desk, ok := a.fyneApp.(desktop.App); ok {
		icon := fyne.NewStaticResource("tray.png", trayIcon())
		menu := fyne.NewMenu("accentring",
			fyne.NewMenuItem("Quit", func() {
				if a.onQuit != nil {
					a.onQuit()
				}
				a.fyneApp.Quit()
			}),
		)
		desk.SetSystemTrayMenu(menu)
		desk.SetSystemTrayIcon(icon)
	}

	if drv, ok := a.fyneApp.Driver().(desktop.Driver); ok {
		a.window = drv.CreateSplashWindow()
	} else {
		a.window = a.fyneApp.NewWindow("accentring")
	}

	a.ring = NewRingWidget(a.picked, a.closed)
	a.window.SetContent(a.ring)
	a.window.SetFixedSize(true)
	a.window.SetPadded(false)
	a.window.Resize(a.ring.MinSize())

	go a.onReady()

	// Stays hidden until the chord goes down.
	a.fyneApp.Run()
	return nil
}

func (a *App) Quit() {
	if a.fyneApp != nil {
		fyne.Do(a.fyneApp.Quit)
	}
}

func (a *App) Bind(l surface.Listener) {
	a.mu.Lock()
	a.l = l
	a.mu.Unlock()
}

// Show centres the ring on (x, y) without keeping focus, so the key events
// of the held chord keep going to the application being typed into.
func (a *App) Show(x, y int) {
	a.mu.Lock()
	a.visible = true
	a.mu.Unlock()
	fyne.Do(func() {
		if a.window == nil {
			return
		}
		prev := foregroundWindow()
		a.window.Show()
		// fyne detaches the GL context after every call, so the window is
		// reached through its native handle rather than the current context.
		if nw, ok := a.window.(driver.NativeWindow); ok {
			areas := workAreas()
			nw.RunNative(func(ctx any) {
				if !placeNative(ctx, x, y, areas) {
					log.Debug("ring window left at the toolkit position")
				}
			})
		}
		restoreForeground(prev)
	})
}

// workAreas lists each monitor's usable area. It must run on the main
// thread.
func workAreas() []area {
	var out []area
	for _, m := range glfw.GetMonitors() {
		x, y, w, h := m.GetWorkarea()
		out = append(out, area{x: x, y: y, w: w, h: h})
	}
	return out
}

func (a *App) Hide() {
	a.mu.Lock()
	a.visible = false
	a.mu.Unlock()
	fyne.Do(func() {
		if a.window != nil {
			a.window.Hide()
		}
	})
}

// picked and closed run on the fyne goroutine. Only the first outcome of a
// showing is reported.
func (a *App) picked(idx int) {
	if l := a.take(); l != nil {
		l.Selected(idx)
		a.window.Hide()
	}
}

func (a *App) closed() {
	if l := a.take(); l != nil {
		l.Dismissed()
		a.window.Hide()
	}
}

func (a *App) take() surface.Listener {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.visible {
		return nil
	}
	a.visible = false
	return a.l
}
