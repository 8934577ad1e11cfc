// Package inject delivers composed text to the focused application.
package inject

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"accentring/log"
)

// ErrUnknownMode is returned by ParseMode for anything but "type" or "paste".
var ErrUnknownMode = errors.New("unknown inject mode")

// Mode selects how text reaches the target application.
type Mode string

const (
	// ModeType synthesizes one Unicode keystroke per UTF-16 unit.
	ModeType Mode = "type"
	// ModePaste places the text on the clipboard and sends Ctrl+V.
	ModePaste Mode = "paste"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeType, ModePaste:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Injector sends text to the OS input stream. Delivery is best-effort:
// failures are logged and never retried.
type Injector interface {
	Inject(text string)
}

// New returns the injector for mode. With precompose set, text is
// normalized to NFC first so that base+mark pairs with a precomposed form
// arrive as a single character. ModeType falls back to ModePaste where
// Unicode keystroke synthesis is unavailable.
func New(mode Mode, precompose bool) (Injector, error) {
	var inj Injector
	switch mode {
	case ModeType:
		t, err := newTyper()
		if err != nil {
			log.Warnf("inject: %v, falling back to paste", err)
			inj = newPaster()
			break
		}
		inj = t
	case ModePaste:
		inj = newPaster()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, string(mode))
	}
	if precompose {
		inj = NFC(inj)
	}
	return inj, nil
}

type nfc struct{ next Injector }

// NFC wraps next so that it receives NFC-normalized text.
func NFC(next Injector) Injector {
	return nfc{next: next}
}

func (n nfc) Inject(text string) {
	n.next.Inject(norm.NFC.String(text))
}

// Recorder is an Injector that keeps what it is given.
type Recorder struct {
	mu    sync.Mutex
	texts []string
	sent  chan string
}

// NewRecorder returns a Recorder that also publishes each text on a
// channel of capacity buf.
func NewRecorder(buf int) *Recorder {
	return &Recorder{sent: make(chan string, buf)}
}

func (r *Recorder) Inject(text string) {
	r.mu.Lock()
	r.texts = append(r.texts, text)
	r.mu.Unlock()
	select {
	case r.sent <- text:
	default:
	}
}

// Sent delivers each injected text.
func (r *Recorder) Sent() <-chan string { return r.sent }

// Texts returns everything injected so far.
func (r *Recorder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}
