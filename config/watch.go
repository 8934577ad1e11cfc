package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"accentring/log"
)

// Editors often write in several steps; changes closer together than this
// are folded into one reload.
const reloadDelay = 100 * time.Millisecond

// Watch reloads path whenever it is written and delivers each valid result
// on the returned channel. Files that fail to load are logged and skipped.
// The channel is closed once ctx is done.
func Watch(ctx context.Context, path string) (<-chan *Settings, error) {
	if path == "" {
		path = DefaultPath()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// The directory is watched so that replace-by-rename saves are seen.
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		w.Close()
		return nil, fmt.Errorf("create settings dir: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	out := make(chan *Settings, 1)
	go watchLoop(ctx, w, path, out)
	return out, nil
}

func watchLoop(ctx context.Context, w *fsnotify.Watcher, path string, out chan<- *Settings) {
	defer close(out)
	defer w.Close()

	name := filepath.Base(path)
	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(reloadDelay)

		case <-timer.C:
			s, err := Load(path)
			if err != nil {
				log.Warnf("settings reload: %v", err)
				continue
			}
			select {
			case out <- s:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warnf("settings watch: %v", err)
		}
	}
}
