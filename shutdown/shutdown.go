// Package shutdown runs registered cleanup exactly once, whichever exit
// path gets there first: a signal, the tray, the terminal UI or main.
package shutdown

import (
	"os"
	"os/signal"
	"sync"
)

// Group is a set of exit hooks.
type Group struct {
	mu    sync.Mutex
	hooks []func()
	once  sync.Once
	done  chan struct{}
}

func NewGroup() *Group {
	return &Group{done: make(chan struct{})}
}

// OnExit registers f. Hooks run in reverse order of registration, so later
// resources are released first.
func (g *Group) OnExit(f func()) {
	g.mu.Lock()
	g.hooks = append(g.hooks, f)
	g.mu.Unlock()
}

// Run executes the hooks once. Concurrent and later calls wait for the
// first to finish.
func (g *Group) Run() {
	g.once.Do(func() {
		g.mu.Lock()
		hs := g.hooks
		g.hooks = nil
		g.mu.Unlock()
		for i := len(hs) - 1; i >= 0; i-- {
			hs[i]()
		}
		close(g.done)
	})
	<-g.done
}

// Done is closed once Run has finished.
func (g *Group) Done() <-chan struct{} { return g.done }

// Watch calls Run when a termination signal arrives or quit is closed.
// A nil quit only watches signals.
func (g *Group) Watch(quit <-chan struct{}) {
	sig := make(chan os.Signal, 1)
	Notify(sig)
	g.watch(sig, quit)
}

func (g *Group) watch(sig <-chan os.Signal, quit <-chan struct{}) {
	go func() {
		select {
		case <-sig:
		case <-quit:
		case <-g.done:
			return
		}
		g.Run()
	}()
}

// Notify relays the platform's termination signals to ch.
func Notify(ch chan<- os.Signal) {
	signal.Notify(ch, signals...)
}

var std = NewGroup()

func OnExit(f func())            { std.OnExit(f) }
func Run()                       { std.Run() }
func Done() <-chan struct{}      { return std.Done() }
func Watch(quit <-chan struct{}) { std.Watch(quit) }
