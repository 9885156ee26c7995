// Package watcher turns filesystem events under watched directories into
// debounced rescan triggers for the agent.
package watcher

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a set of directories and emits one trigger per burst
// of filesystem events. Installers touch many files in quick succession,
// so raw events are debounced: the trigger fires only after the tree has
// been quiet for the debounce interval.
type Watcher struct {
	paths    []string
	debounce time.Duration

	fs       *fsnotify.Watcher
	triggers chan struct{}
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a watcher for paths. Paths that do not exist are skipped
// at Start time rather than treated as errors, since watched directories
// (package caches, log dirs) may not exist until the first install.
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		return nil, fmt.Errorf("debounce must be positive, got %v", debounce)
	}
	return &Watcher{
		paths:    paths,
		debounce: debounce,
		triggers: make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
	}, nil
}

// Triggers returns the channel on which debounced rescan requests arrive.
// The channel has capacity 1; a trigger raised while one is already
// pending is coalesced into it.
func (w *Watcher) Triggers() <-chan struct{} {
	return w.triggers
}

// Start begins watching. It returns an error only when the underlying
// notify machinery cannot be set up; individual missing paths are logged
// and skipped.
func (w *Watcher) Start() error {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	w.fs = fs

	watched := 0
	for _, p := range w.paths {
		if _, err := os.Stat(p); err != nil {
			fmt.Fprintf(os.Stderr, "watcher: skipping %s: %v\n", p, err)
			continue
		}
		if err := fs.Add(p); err != nil {
			fmt.Fprintf(os.Stderr, "watcher: failed to watch %s: %v\n", p, err)
			continue
		}
		watched++
	}
	if watched == 0 && len(w.paths) > 0 {
		fs.Close()
		return fmt.Errorf("none of the %d configured paths could be watched", len(w.paths))
	}

	w.wg.Add(1)
	go w.run()

	return nil
}

// run collects events and converts quiet-period expiry into triggers.
func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerCh = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timerCh:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: %v\n", err)
		case <-timerCh:
			timer = nil
			timerCh = nil
			select {
			case w.triggers <- struct{}{}:
			default:
			}
		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Stop halts event processing and closes the trigger channel. Safe to
// call more than once.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		if w.fs != nil {
			w.fs.Close()
		}
		w.wg.Wait()
		close(w.triggers)
	})
	return nil
}
