// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// watch.go - Reloads the command file when it changes on disk.

package cli

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the command file must be quiet before a
// reload. Editors often write a file in several steps.
const DefaultDebounce = 200 * time.Millisecond

// =============================================================================
// GRAMMAR WATCHER
// =============================================================================

// GrammarWatcher calls a reload function whenever the watched file is
// written or recreated.
type GrammarWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	reload   func() (int, error)
	notify   func(commands int, err error)
	logger   *log.Logger

	mu      sync.Mutex
	pending time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewGrammarWatcher creates a watcher for path. notify may be nil.
func NewGrammarWatcher(path string, debounce time.Duration, reload func() (int, error), notify func(int, error), logger *log.Logger) (*GrammarWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &GrammarWatcher{
		path:     filepath.Clean(abs),
		watcher:  watcher,
		debounce: debounce,
		reload:   reload,
		notify:   notify,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Watch starts watching. The parent directory is watched rather than the
// file so atomic replacements by editors are seen.
func (gw *GrammarWatcher) Watch() error {
	if err := gw.watcher.Add(filepath.Dir(gw.path)); err != nil {
		return err
	}

	gw.wg.Add(2)
	go gw.processEvents()
	go gw.processPending()
	return nil
}

// Close stops watching and waits for the background goroutines.
func (gw *GrammarWatcher) Close() error {
	gw.cancel()
	err := gw.watcher.Close()
	gw.wg.Wait()
	return err
}

func (gw *GrammarWatcher) processEvents() {
	defer gw.wg.Done()

	for {
		select {
		case <-gw.ctx.Done():
			return

		case event, ok := <-gw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != gw.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				gw.mu.Lock()
				gw.pending = time.Now()
				gw.mu.Unlock()
			}

		case err, ok := <-gw.watcher.Errors:
			if !ok {
				return
			}
			gw.logger.Warn("watch error", "path", gw.path, "err", err)
		}
	}
}

func (gw *GrammarWatcher) processPending() {
	defer gw.wg.Done()

	tick := gw.debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-gw.ctx.Done():
			return

		case now := <-ticker.C:
			gw.mu.Lock()
			due := !gw.pending.IsZero() && now.Sub(gw.pending) >= gw.debounce
			if due {
				gw.pending = time.Time{}
			}
			gw.mu.Unlock()

			if !due {
				continue
			}
			n, err := gw.reload()
			if gw.notify != nil {
				gw.notify(n, err)
			}
		}
	}
}

// StartWatcher watches the configured command file and reloads the app on
// change. It returns nil when watching is disabled in the configuration.
func (a *App) StartWatcher(notify func(int, error)) (*GrammarWatcher, error) {
	if !a.Config.Grammar.Watch || a.GrammarPath() == "" {
		return nil, nil
	}
	gw, err := NewGrammarWatcher(a.GrammarPath(), DefaultDebounce, a.Reload, notify, a.Logger.WithPrefix("watch"))
	if err != nil {
		return nil, err
	}
	if err := gw.Watch(); err != nil {
		gw.watcher.Close()
		return nil, err
	}
	a.Logger.Debug("watching command file", "path", a.GrammarPath())
	return gw, nil
}
