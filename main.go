package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/term"

	"accentring/config"
	"accentring/doctor"
	"accentring/engine"
	"accentring/hotkey"
	"accentring/inject"
	"accentring/keyboard"
	"accentring/log"
	"accentring/shutdown"
	"accentring/singleinstance"
	"accentring/surface"
)

var version = "dev"

// The window toolkit must own the main thread.
func init() {
	runtime.LockOSThread()
}

// applyOverrides folds command-line values over loaded settings. Empty
// strings and a nil nfc leave the settings untouched.
func applyOverrides(s *config.Settings, chord, mode string, nfc *bool) error {
	if chord != "" {
		d, err := hotkey.ParseDescriptor(chord)
		if err != nil {
			return err
		}
		s.SetDescriptor(d)
	}
	if mode != "" {
		m, err := inject.ParseMode(mode)
		if err != nil {
			return err
		}
		s.InjectMode = string(m)
	}
	if nfc != nil {
		s.Precompose = *nfc
	}
	return s.Validate()
}

func initCrashLog() {
	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}
}

func main() {
	hotkeyFlag := flag.String("hotkey", "", "Chord that opens the ring, e.g. Ctrl+Alt+A (default: from settings)")
	settingsFlag := flag.String("settings", "", "Settings file (default: "+config.DefaultPath()+")")
	injectFlag := flag.String("inject", "", "Output mode: type or paste (default: from settings)")
	nfcFlag := flag.Bool("nfc", false, "Precompose output to NFC before injecting")
	saveFlag := flag.Bool("save-settings", false, "Write the resolved settings back to the settings file")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	debugFlag := flag.Bool("debug", false, "Log state transitions")
	watchFlag := flag.Bool("watch", true, "Reload the settings file when it changes")
	tuiFlag := flag.Bool("tui", true, "Run with terminal UI")
	guiFlag := flag.Bool("gui", guiAvailable, "Show the ring window and tray icon")
	doctorFlag := flag.Bool("doctor", false, "Run system diagnostics and exit")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("accentring %s\n", version)
		os.Exit(0)
	}

	// Resolve log directory early
	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)
	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}
	initCrashLog()

	settings, err := config.Load(*settingsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	var nfc *bool
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "nfc" {
			nfc = nfcFlag
		}
	})
	if err := applyOverrides(settings, *hotkeyFlag, *injectFlag, nfc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	desc, _ := settings.Descriptor()
	mode, _ := inject.ParseMode(settings.InjectMode)

	if *saveFlag {
		path := *settingsFlag
		if path == "" {
			path = config.DefaultPath()
		}
		if err := settings.Save(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Settings saved to %s\n", path)
	}

	if *doctorFlag {
		os.Exit(doctor.Run(desc, mode, settings.Precompose))
	}

	lock, err := singleinstance.TryLock(singleinstance.DefaultName())
	if errors.Is(err, singleinstance.ErrAlreadyRunning) {
		fmt.Fprintln(os.Stderr, "accentring is already running")
		os.Exit(1)
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: single-instance lock: %v\n", err)
	}
	shutdown.OnExit(func() { lock.Release() })

	log.SetDebug(*debugFlag)
	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	} else {
		log.SessionStart(desc.String(), string(mode))
	}
	shutdown.OnExit(log.Close)

	if *tuiFlag && !term.IsTerminal(int(os.Stdout.Fd())) {
		*tuiFlag = false
	}

	d := &daemon{
		settingsPath: *settingsFlag,
		overrides:    func(s *config.Settings) error { return applyOverrides(s, *hotkeyFlag, *injectFlag, nfc) },
		watch:        *watchFlag,
		tui:          *tuiFlag,
		desc:         desc,
		mode:         mode,
		precompose:   settings.Precompose,
	}
	var code int
	if *guiFlag && guiAvailable {
		code = runGUI(d.serve)
	} else {
		if !*tuiFlag {
			fmt.Fprintln(os.Stderr, "Warning: no selection surface, run with -tui or -gui")
		}
		code = d.serve(nil)
		shutdown.Run()
	}
	os.Exit(code)
}

type daemon struct {
	settingsPath string
	overrides    func(*config.Settings) error
	watch        bool
	tui          bool

	desc       hotkey.Descriptor
	mode       inject.Mode
	precompose bool

	mu     sync.Mutex
	coord  *engine.Coordinator
	closed bool
	total  int
}

// apply adopts s with the command-line overrides folded in. It reports
// whether anything the coordinator depends on changed.
func (d *daemon) apply(s *config.Settings) bool {
	if d.overrides != nil {
		if err := d.overrides(s); err != nil {
			log.Warnf("settings ignored: %v", err)
			return false
		}
	}
	desc, err := s.Descriptor()
	if err != nil {
		log.Warnf("settings ignored: %v", err)
		return false
	}
	mode, err := inject.ParseMode(s.InjectMode)
	if err != nil {
		log.Warnf("settings ignored: %v", err)
		return false
	}
	if desc == d.desc && mode == d.mode && s.Precompose == d.precompose {
		return false
	}
	d.desc, d.mode, d.precompose = desc, mode, s.Precompose
	return true
}

// serve runs coordinators until shutdown, replacing the live one whenever
// the settings file changes. A nil surface means no window: the terminal
// UI picks slices on a headless surface instead.
func (d *daemon) serve(s surface.Surface) int {
	var picker *surface.Headless
	if s == nil {
		picker = surface.NewHeadless()
		s = picker
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	shutdown.OnExit(func() {
		cancel()
		d.stop()
	})

	var reloads <-chan *config.Settings
	if d.watch {
		ch, err := config.Watch(ctx, d.settingsPath)
		if err != nil {
			log.Warnf("settings watch disabled: %v", err)
		} else {
			reloads = ch
		}
	}

	if d.tui {
		tuiMu.Lock()
		tuiProgram = NewTUIProgram(d.desc.String(), string(d.mode), picker)
		tuiMu.Unlock()
		shutdown.OnExit(tuiProgram.Quit)
		go func() {
			if _, err := tuiProgram.Run(); err != nil {
				log.Errorf("TUI error: %v", err)
			}
			shutdown.Run()
		}()
	}
	shutdown.Watch(nil)

	for {
		reloaded, err := d.runOnce(ctx, s, reloads)
		if reloaded {
			continue
		}
		if err == nil {
			return 0
		}
		log.Errorf("inactive: %v", err)
		tuiSend(ErrorMsg{Text: fmt.Sprintf("inactive: %v", err)})
		if !d.tui && picker != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		// The chord is inert until the settings change or the user quits.
		if !d.waitReload(ctx, reloads) {
			return 1
		}
		tuiSend(ErrorMsg{})
	}
}

// runOnce runs one coordinator until it stops or the settings change, in
// which case it reports true.
func (d *daemon) runOnce(ctx context.Context, s surface.Surface, reloads <-chan *config.Settings) (bool, error) {
	inj, err := inject.New(d.mode, d.precompose)
	if err != nil {
		return false, err
	}
	coord, err := engine.New(engine.Options{
		Hotkey:    hotkey.New(d.desc, keyboard.NewTap("primary")),
		Capture:   keyboard.NewTap("capture"),
		Surface:   s,
		Injector:  inj,
		OnState:   func(st engine.State) { tuiSend(StateMsg{State: st}) },
		OnCompose: func(slice int, text string) { tuiSend(ComposedMsg{Slice: slice, Text: text}) },
	})
	if err != nil {
		return false, err
	}
	if !d.track(coord) {
		return false, nil
	}
	defer d.untrack(coord)

	runErr := make(chan error, 1)
	go func() { runErr <- coord.Run(ctx) }()
	for {
		select {
		case err := <-runErr:
			return false, err
		case next, ok := <-reloads:
			if !ok {
				reloads = nil
				continue
			}
			if !d.apply(next) {
				continue
			}
			coord.Close()
			<-runErr
			d.announce()
			return true, nil
		}
	}
}

func (d *daemon) waitReload(ctx context.Context, reloads <-chan *config.Settings) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case next, ok := <-reloads:
			if !ok {
				return false
			}
			if d.apply(next) {
				d.announce()
				return true
			}
		}
	}
}

func (d *daemon) announce() {
	log.Info(fmt.Sprintf("settings reloaded: hotkey=%s inject=%s precompose=%v", d.desc, d.mode, d.precompose))
	tuiSend(ChordMsg{Text: d.desc.String(), Mode: string(d.mode)})
}

func (d *daemon) track(c *engine.Coordinator) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	d.coord = c
	return true
}

func (d *daemon) untrack(c *engine.Coordinator) {
	d.mu.Lock()
	d.total += c.Compositions()
	d.coord = nil
	d.mu.Unlock()
}

// stop closes the live coordinator and logs the session total.
func (d *daemon) stop() {
	d.mu.Lock()
	d.closed = true
	c := d.coord
	d.mu.Unlock()
	if c != nil {
		c.Close()
	}

	d.mu.Lock()
	n := d.total
	if c != nil && d.coord == c {
		n += c.Compositions()
	}
	d.mu.Unlock()
	log.SessionEnd(n)
}
