package engine

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of filesystem events into one
// rebuild. Editors commonly emit several writes per save.
const DefaultDebounce = 500 * time.Millisecond

// Watcher rebuilds translation indexes when their corpus files change.
type Watcher struct {
	fsw      *fsnotify.Watcher
	engine   *Engine
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// Watch starts watching the corpus directory. Rebuilds happen in the
// background; queries keep using the previous snapshot until the new
// one is swapped in.
func (e *Engine) Watch(ctx context.Context, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(e.opts.CorpusDir); err != nil {
		_ = fsw.Close()
		return err
	}

	w := &Watcher{
		fsw:      fsw,
		engine:   e,
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
	}
	e.watcher = w

	go w.loop(ctx)
	slog.Debug("corpus_watch_started", slog.String("dir", e.opts.CorpusDir))
	return nil
}

// Close stops the watcher and cancels pending rebuild timers.
func (w *Watcher) Close() error {
	w.mu.Lock()
	for _, t := range w.timers {
		t.Stop()
	}
	w.timers = make(map[string]*time.Timer)
	w.mu.Unlock()
	return w.fsw.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			code, ok := translationFor(event.Name)
			if !ok {
				continue
			}
			w.schedule(ctx, code)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("corpus_watch_error", slog.String("error", err.Error()))
		}
	}
}

// schedule arms (or re-arms) the debounce timer for one translation.
func (w *Watcher) schedule(ctx context.Context, code string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[code]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[code] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, code)
		w.mu.Unlock()

		if err := w.engine.Reload(ctx, code); err != nil {
			slog.Warn("corpus_reload_failed",
				slog.String("translation", code),
				slog.String("error", err.Error()))
			return
		}
		slog.Info("corpus_reloaded", slog.String("translation", code))
	})
}

// translationFor maps a corpus file path to its translation code.
func translationFor(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, ".dat") {
		return "", false
	}
	return strings.ToLower(strings.TrimSuffix(base, ".dat")), true
}
