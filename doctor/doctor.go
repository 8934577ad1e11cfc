// Package doctor runs interactive checks of the keyboard tap, the layout
// translation and text injection.
package doctor

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
	"golang.org/x/text/unicode/norm"

	"accentring/compose"
	"accentring/hotkey"
	"accentring/inject"
	"accentring/keyboard"
)

const (
	chordTimeout   = 10 * time.Second
	releaseTimeout = 5 * time.Second
)

// Run executes the checks and returns an exit code (0=all pass, 1=any fail).
func Run(desc hotkey.Descriptor, mode inject.Mode, precompose bool) int {
	saveTerminal()
	setupInterruptHandler()

	fmt.Println("accentring doctor - interactive system diagnostics")
	fmt.Println("==================================================")

	allPass := checkChord(desc)
	if allPass && !checkLayout() {
		allPass = false
	}
	if allPass && !checkInject(mode, precompose) {
		allPass = false
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

func checkChord(desc hotkey.Descriptor) bool {
	fmt.Println()
	fmt.Println("[1/3] Keyboard tap and chord detection")
	fmt.Printf("Press %s...\n", desc)

	hk := hotkey.New(desc, keyboard.NewTap("doctor"))
	if err := hk.Register(); err != nil {
		fmt.Printf("  FAIL: could not install keyboard tap: %v\n", err)
		return false
	}
	defer hk.Unregister()

	if !waitEdge(hk.Edges(), hotkey.Activate, chordTimeout) {
		fmt.Println("  FAIL: timeout waiting for chord")
		return false
	}
	fmt.Println("  PASS: chord detected")
	// Wait for release so the chord does not leak into the next step.
	waitEdge(hk.Edges(), hotkey.Deactivate, releaseTimeout)
	resetTerminal()
	return true
}

func waitEdge(edges <-chan hotkey.Edge, want hotkey.Edge, timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		select {
		case e := <-edges:
			if e == want {
				return true
			}
		case <-deadline:
			return false
		}
	}
}

func checkLayout() bool {
	fmt.Println()
	fmt.Println("[2/3] Keyboard layout translation")

	tr := keyboard.NewTranslator()
	lower := tr.Translate(keyboard.KeyA, 0)
	upper := tr.Translate(keyboard.KeyA, keyboard.ModShift)
	if lower == "" || upper == "" {
		fmt.Println("  FAIL: the A key produced no text in the active layout")
		return false
	}
	fmt.Printf("  A -> %q, Shift+A -> %q\n", lower, upper)
	sample := compose.Compose(1, keyboard.KeyE, 0, tr)
	fmt.Printf("  sample composition: %q\n", sample)
	fmt.Println("  PASS: layout translation works")
	return true
}

func checkInject(mode inject.Mode, precompose bool) bool {
	fmt.Println()
	fmt.Printf("[3/3] Text injection (%s)\n", mode)

	inj, err := inject.New(mode, precompose)
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Println("  SKIP: stdin is not a terminal, cannot confirm")
		return true
	}

	fmt.Println("Focus on a text editor window...")
	for i := 5; i > 0; i-- {
		fmt.Printf("  %d...\n", i)
		time.Sleep(time.Second)
	}
	want := compose.Compose(1, keyboard.KeyE, 0, keyboard.USLayout{})
	inj.Inject(want)

	resetTerminal()
	confirmReader := bufio.NewReader(os.Stdin)
	fmt.Println()
	fmt.Printf("Did %q appear? [y/n]: ", norm.NFC.String(want))
	confirm, _ := confirmReader.ReadString('\n')
	confirm = strings.TrimSpace(strings.ToLower(confirm))
	if confirm != "y" && confirm != "yes" {
		fmt.Println("  FAIL: injection not confirmed")
		return false
	}
	fmt.Println("  PASS: injection verified by user")
	return true
}
