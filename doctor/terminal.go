package doctor

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"accentring/shutdown"
)

// saved is the stdin mode at startup. A tap thread or an injected paste
// can leave the console in a different mode before a prompt.
var saved *term.State

func saveTerminal() {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return
	}
	if st, err := term.GetState(fd); err == nil {
		saved = st
	}
}

func resetTerminal() {
	if saved != nil {
		term.Restore(int(os.Stdin.Fd()), saved)
	}
}

func setupInterruptHandler() {
	sig := make(chan os.Signal, 1)
	shutdown.Notify(sig)
	go func() {
		<-sig
		resetTerminal()
		fmt.Println("\nInterrupted")
		os.Exit(1)
	}()
}
