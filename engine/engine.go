// Package engine runs the composition state machine: it reacts to chord
// edges, drives the selection surface, owns the one-shot capture tap and
// hands composed text to the injector.
//
// All session state is owned by the goroutine running Coordinator.Run. Tap
// callbacks and surface callbacks only post messages to its inbox.
package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"accentring/compose"
	"accentring/hotkey"
	"accentring/inject"
	"accentring/keyboard"
	"accentring/log"
	"accentring/surface"
)

const inboxSize = 32

// State is the coordinator's position in the composition cycle.
type State int32

const (
	Idle State = iota
	SurfaceVisible
	AwaitingCaptureKey
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case SurfaceVisible:
		return "surface_visible"
	case AwaitingCaptureKey:
		return "awaiting_capture_key"
	}
	return "unknown"
}

// Options wires a Coordinator to its collaborators. Hotkey, Capture,
// Surface and Injector are required.
type Options struct {
	Hotkey   hotkey.Hotkey
	Capture  keyboard.Tap
	Surface  surface.Surface
	Injector inject.Injector

	// Translator resolves the base character of a captured key. Defaults
	// to keyboard.NewTranslator().
	Translator keyboard.Translator
	// Pointer returns the screen point the surface is centred on.
	// Defaults to keyboard.CursorPos.
	Pointer func() (x, y int)

	// OnState and OnCompose are called from the Run goroutine and must
	// not block.
	OnState   func(State)
	OnCompose func(slice int, text string)
}

// session is one activation of the chord.
type session struct {
	slice   int // -1 until the surface reports a pick
	handled atomic.Bool
}

type (
	edgeMsg     struct{ edge hotkey.Edge }
	selectedMsg struct{ idx int }
	dismissMsg  struct{}
	capturedMsg struct {
		s    *session
		key  keyboard.Key
		mods keyboard.Modifiers
	}
)

type Coordinator struct {
	opts Options

	inbox chan any
	state atomic.Int32

	sess  *session // Run goroutine only
	count atomic.Int64

	started   atomic.Bool
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func New(opts Options) (*Coordinator, error) {
	switch {
	case opts.Hotkey == nil:
		return nil, errors.New("engine: hotkey is required")
	case opts.Capture == nil:
		return nil, errors.New("engine: capture tap is required")
	case opts.Surface == nil:
		return nil, errors.New("engine: surface is required")
	case opts.Injector == nil:
		return nil, errors.New("engine: injector is required")
	}
	if opts.Translator == nil {
		opts.Translator = keyboard.NewTranslator()
	}
	if opts.Pointer == nil {
		opts.Pointer = keyboard.CursorPos
	}
	return &Coordinator{
		opts:  opts,
		inbox: make(chan any, inboxSize),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}, nil
}

// State returns the current state. Safe from any goroutine.
func (c *Coordinator) State() State {
	return State(c.state.Load())
}

// Compositions returns how many compositions were emitted.
func (c *Coordinator) Compositions() int {
	return int(c.count.Load())
}

// Run registers the chord and processes events until ctx is done or Close
// is called. On return the capture tap and the chord registration are
// released and the surface is hidden. A registration failure of the
// primary tap is returned and nothing else happens.
func (c *Coordinator) Run(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return errors.New("engine: already running")
	}
	defer close(c.done)

	if err := c.opts.Hotkey.Register(); err != nil {
		log.TapError("primary", err)
		return err
	}
	c.opts.Surface.Bind(c)
	defer c.teardown()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go c.pump(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.stop:
			return nil
		case m := <-c.inbox:
			c.handle(m)
		}
	}
}

// Close stops Run and waits for its teardown. It is safe to call more than
// once and before Run.
func (c *Coordinator) Close() {
	c.closeOnce.Do(func() { close(c.stop) })
	if c.started.Load() {
		<-c.done
	}
}

// Selected implements surface.Listener.
func (c *Coordinator) Selected(idx int) { c.post(selectedMsg{idx: idx}) }

// Dismissed implements surface.Listener.
func (c *Coordinator) Dismissed() { c.post(dismissMsg{}) }

func (c *Coordinator) post(m any) bool {
	select {
	case c.inbox <- m:
		return true
	default:
		log.Warnf("engine: inbox full, dropped %T", m)
		return false
	}
}

// pump moves chord edges into the inbox so they are ordered with surface
// callbacks.
func (c *Coordinator) pump(ctx context.Context) {
	edges := c.opts.Hotkey.Edges()
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-edges:
			if !ok {
				return
			}
			select {
			case c.inbox <- edgeMsg{edge: e}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (c *Coordinator) handle(m any) {
	switch m := m.(type) {
	case edgeMsg:
		switch m.edge {
		case hotkey.Activate:
			c.activate()
		case hotkey.Deactivate:
			c.deactivate()
		}
	case selectedMsg:
		if c.State() != SurfaceVisible || c.sess == nil {
			return
		}
		if !compose.InRange(m.idx) {
			log.Debug("selection out of range ignored")
			return
		}
		c.sess.slice = m.idx
	case dismissMsg:
		if c.State() == SurfaceVisible && c.sess != nil {
			c.sess.slice = -1
		}
	case capturedMsg:
		c.captured(m)
	}
}

func (c *Coordinator) activate() {
	switch c.State() {
	case SurfaceVisible:
		return
	case AwaitingCaptureKey:
		// The previous pick never got its key; a new chord replaces it.
		c.opts.Capture.Uninstall()
		log.Debug("pending capture abandoned")
	}
	c.sess = &session{slice: -1}
	x, y := c.opts.Pointer()
	c.opts.Surface.Show(x, y)
	c.setState(SurfaceVisible)
}

func (c *Coordinator) deactivate() {
	if c.State() != SurfaceVisible {
		return
	}
	c.opts.Surface.Hide()
	s := c.sess
	if s == nil || s.slice < 0 {
		c.sess = nil
		c.setState(Idle)
		return
	}
	err := c.opts.Capture.Install(func(ev keyboard.Event) keyboard.Verdict {
		return c.onCapture(s, ev)
	})
	if err != nil {
		log.TapError("capture", err)
		c.sess = nil
		c.setState(Idle)
		return
	}
	c.setState(AwaitingCaptureKey)
}

// onCapture runs on the capture tap's thread. It claims the session with
// the handled flag before posting, so one capture tap yields at most one
// composition.
func (c *Coordinator) onCapture(s *session, ev keyboard.Event) keyboard.Verdict {
	if ev.Injected || !ev.Down || !ev.Key.IsLetter() {
		return keyboard.Forward
	}
	if !s.handled.CompareAndSwap(false, true) {
		return keyboard.Forward
	}
	select {
	case c.inbox <- capturedMsg{s: s, key: ev.Key, mods: ev.Mods}:
		return keyboard.Consume
	default:
		s.handled.Store(false)
		log.Warn("engine: inbox full, captured key forwarded")
		return keyboard.Forward
	}
}

func (c *Coordinator) captured(m capturedMsg) {
	if m.s != c.sess || c.State() != AwaitingCaptureKey {
		return
	}
	// Released before injecting so our own keystrokes never reach it.
	c.opts.Capture.Uninstall()
	c.sess = nil
	c.setState(Idle)

	text := compose.Compose(m.s.slice, m.key, m.mods, c.opts.Translator)
	if text == "" {
		log.Debug("composition ignored, no base character")
		return
	}
	c.opts.Injector.Inject(text)
	c.count.Add(1)
	log.Composition(m.s.slice, compose.MarkName(m.s.slice), utf8.RuneCountInString(text))
	if c.opts.OnCompose != nil {
		c.opts.OnCompose(m.s.slice, text)
	}
}

func (c *Coordinator) teardown() {
	c.opts.Capture.Uninstall()
	c.opts.Surface.Hide()
	c.opts.Hotkey.Unregister()
	c.sess = nil
	c.setState(Idle)
}

func (c *Coordinator) setState(s State) {
	prev := State(c.state.Swap(int32(s)))
	if prev == s {
		return
	}
	log.StateChange(prev.String(), s.String())
	if c.opts.OnState != nil {
		c.opts.OnState(s)
	}
}
