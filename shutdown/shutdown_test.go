package shutdown

import (
	"os"
	"sync"
	"testing"
	"time"
)

func waitDone(t *testing.T, g *Group) {
	t.Helper()
	select {
	case <-g.Done():
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for shutdown")
	}
}

func TestRunOrderAndOnce(t *testing.T) {
	g := NewGroup()
	var order []int
	g.OnExit(func() { order = append(order, 1) })
	g.OnExit(func() { order = append(order, 2) })
	g.OnExit(func() { order = append(order, 3) })

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Run()
		}()
	}
	wg.Wait()

	if len(order) != 3 || order[0] != 3 || order[1] != 2 || order[2] != 1 {
		t.Fatalf("hooks ran as %v, want [3 2 1]", order)
	}
	waitDone(t, g)
}

func TestWatchQuit(t *testing.T) {
	g := NewGroup()
	ran := make(chan struct{})
	g.OnExit(func() { close(ran) })

	quit := make(chan struct{})
	g.watch(make(chan os.Signal), quit)
	close(quit)

	waitDone(t, g)
	select {
	case <-ran:
	default:
		t.Fatal("hook did not run")
	}
}

func TestWatchSignal(t *testing.T) {
	g := NewGroup()
	sig := make(chan os.Signal, 1)
	g.watch(sig, nil)
	sig <- os.Interrupt
	waitDone(t, g)
}
