package inject

import (
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/micmonay/keybd_event"

	"accentring/log"
)

// restoreDelay is how long the previous clipboard text is held back so the
// target application has read the pasted text first.
const restoreDelay = 600 * time.Millisecond

type paster struct {
	read  func() (string, error)
	write func(string) error
	send  func() error
	after func(time.Duration, func())
}

func newPaster() *paster {
	return &paster{
		read:  clipboard.ReadAll,
		write: clipboard.WriteAll,
		send:  sendCtrlV,
		after: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

func (p *paster) Inject(text string) {
	if text == "" {
		return
	}
	prev, _ := p.read()
	if err := p.write(text); err != nil {
		log.Warnf("inject: clipboard write failed: %v", err)
		return
	}
	if err := p.send(); err != nil {
		log.Warnf("inject: paste keystroke failed: %v", err)
	}
	if prev != "" && prev != text {
		p.after(restoreDelay, func() {
			if err := p.write(prev); err != nil {
				log.Warnf("inject: clipboard restore failed: %v", err)
			}
		})
	}
}

var (
	kb     keybd_event.KeyBonding
	kbOnce sync.Once
	kbErr  error
)

func sendCtrlV() error {
	kbOnce.Do(func() {
		kb, kbErr = keybd_event.NewKeyBonding()
	})
	if kbErr != nil {
		return kbErr
	}
	kb.Clear()
	kb.SetKeys(keybd_event.VK_V)
	kb.HasCTRL(true)
	return kb.Launching()
}
