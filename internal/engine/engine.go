// Package engine ties the corpus, index, resolver, and searcher
// together behind one handle. Each translation gets an immutable
// snapshot that is swapped atomically on rebuild, so queries never see
// a half-built index.
package engine

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"github.com/jmhobbs/concord/internal/canon"
	"github.com/jmhobbs/concord/internal/corpus"
	"github.com/jmhobbs/concord/internal/errors"
	"github.com/jmhobbs/concord/internal/index"
	"github.com/jmhobbs/concord/internal/normalize"
	"github.com/jmhobbs/concord/internal/resolve"
	"github.com/jmhobbs/concord/internal/result"
	"github.com/jmhobbs/concord/internal/search"
)

// Options configures an Engine.
type Options struct {
	// CorpusDir holds <code>.dat corpus files.
	CorpusDir string
	// CacheDir holds per-translation index caches. Empty disables the
	// cache and indexes are rebuilt in memory each run.
	CacheDir string
	// Stemming selects the normalization mode for indexes and queries.
	Stemming bool
	// Backend selects the search implementation.
	Backend search.Backend
	// Params are the BM25 constants for the postings backend.
	Params search.Params
}

// snapshot is the immutable per-translation query state.
type snapshot struct {
	idx      *index.Index
	resolver *resolve.Resolver
	searcher search.Searcher
}

// Engine answers lookups and searches across loaded translations.
type Engine struct {
	opts Options
	norm *normalize.Normalizer

	mu  sync.RWMutex
	set corpus.Set

	// snapshots maps translation code to its current snapshot. The map
	// is guarded by mu; the pointers swap atomically on rebuild.
	snapshots map[string]*atomic.Pointer[snapshot]

	watcher *Watcher
}

// New loads every translation in opts.CorpusDir and prepares each for
// querying, building translations in parallel. Cached indexes are used
// when their fingerprint still matches the corpus file.
func New(ctx context.Context, opts Options) (*Engine, error) {
	set, err := corpus.LoadDir(opts.CorpusDir)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		opts:      opts,
		norm:      normalize.New(normalize.Options{Stemming: opts.Stemming}),
		set:       set,
		snapshots: make(map[string]*atomic.Pointer[snapshot]),
	}
	for _, code := range set.Codes() {
		e.snapshots[code] = &atomic.Pointer[snapshot]{}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, code := range set.Codes() {
		code := code
		g.Go(func() error {
			return e.rebuild(ctx, code)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return e, nil
}

// rebuild loads or builds the index for one translation and swaps it
// into place. Safe to call while queries are running.
func (e *Engine) rebuild(ctx context.Context, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tr, err := e.translation(code)
	if err != nil {
		return err
	}

	start := time.Now()
	idx, fromCache, err := e.loadOrBuild(tr)
	if err != nil {
		return err
	}

	searcher, err := search.NewSearcher(e.opts.Backend, idx, e.norm, e.opts.Params)
	if err != nil {
		return err
	}

	e.snapshotPtr(tr.Code).Store(&snapshot{
		idx:      idx,
		resolver: resolve.New(idx),
		searcher: searcher,
	})

	slog.Info("index_ready",
		slog.String("translation", code),
		slog.Int("verses", idx.VerseCount()),
		slog.Bool("from_cache", fromCache),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// loadOrBuild consults the cache first. Building takes a file lock so
// concurrent concord processes do not race on the cache database.
func (e *Engine) loadOrBuild(tr *corpus.Translation) (*index.Index, bool, error) {
	if e.opts.CacheDir == "" {
		return index.Build(tr, e.norm, e.opts.Stemming), false, nil
	}
	if err := os.MkdirAll(e.opts.CacheDir, 0o755); err != nil {
		return nil, false, errors.New(errors.ErrCodeCacheIO, "create cache directory", err)
	}

	path := index.CachePath(e.opts.CacheDir, tr.Code)
	if idx, ok, err := index.LoadCache(path, tr.Code, tr.Fingerprint, e.opts.Stemming); err != nil {
		return nil, false, err
	} else if ok {
		return idx, true, nil
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return nil, false, errors.New(errors.ErrCodeCacheIO, "acquire cache lock", err)
	}
	defer func() { _ = lock.Unlock() }()

	// Another process may have built the cache while we waited.
	if idx, ok, err := index.LoadCache(path, tr.Code, tr.Fingerprint, e.opts.Stemming); err != nil {
		return nil, false, err
	} else if ok {
		return idx, true, nil
	}

	idx := index.Build(tr, e.norm, e.opts.Stemming)
	if err := index.SaveCache(path, idx); err != nil {
		// A failed save costs a rebuild next run, nothing more.
		slog.Warn("index_cache_save_failed",
			slog.String("translation", tr.Code),
			slog.String("error", err.Error()))
	}
	return idx, false, nil
}

// current returns the live snapshot for a translation code, applying
// the default translation rule for empty codes.
func (e *Engine) current(code string) (*snapshot, error) {
	tr, err := e.translation(code)
	if err != nil {
		return nil, err
	}
	e.mu.RLock()
	ptr := e.snapshots[tr.Code]
	e.mu.RUnlock()
	if ptr == nil {
		return nil, errors.Newf(errors.ErrCodeIndexUnavailable,
			"no index for translation %q", tr.Code)
	}
	snap := ptr.Load()
	if snap == nil {
		return nil, errors.Newf(errors.ErrCodeIndexUnavailable,
			"index for translation %q is not ready", tr.Code)
	}
	return snap, nil
}

// Lookup resolves a textual reference and returns its verses in
// canonical order.
func (e *Engine) Lookup(ctx context.Context, translation, ref string) (*result.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap, err := e.current(translation)
	if err != nil {
		return nil, err
	}
	rng, err := snap.resolver.Resolve(ref)
	if err != nil {
		return nil, err
	}
	return result.FromRange(snap.idx, rng), nil
}

// Resolve parses a reference without materializing verse text.
func (e *Engine) Resolve(translation, ref string) (resolve.Range, error) {
	snap, err := e.current(translation)
	if err != nil {
		return resolve.Range{}, err
	}
	return snap.resolver.Resolve(ref)
}

// Search runs a ranked free-text query over one translation.
func (e *Engine) Search(ctx context.Context, translation, query string, limit int) (*result.Set, error) {
	snap, err := e.current(translation)
	if err != nil {
		return nil, err
	}
	hits, err := snap.searcher.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return result.FromHits(snap.idx, hits), nil
}

// Books lists the books present in a translation, in canonical order.
func (e *Engine) Books(translation string) ([]canon.Book, error) {
	snap, err := e.current(translation)
	if err != nil {
		return nil, err
	}
	var books []canon.Book
	for _, b := range canon.All() {
		if snap.idx.HasBook(b) {
			books = append(books, b)
		}
	}
	return books, nil
}

// Stats describes one loaded translation.
type Stats struct {
	Translation string
	Verses      int
	Terms       int
	Fingerprint string
}

// Stats reports index statistics per loaded translation.
func (e *Engine) Stats() []Stats {
	var out []Stats
	for _, code := range e.Translations() {
		snap, err := e.current(code)
		if err != nil {
			continue
		}
		out = append(out, Stats{
			Translation: code,
			Verses:      snap.idx.VerseCount(),
			Terms:       snap.idx.TermCount(),
			Fingerprint: snap.idx.Fingerprint(),
		})
	}
	return out
}

// Translations lists loaded translation codes in preference order.
func (e *Engine) Translations() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.set.Codes()
}

// translation resolves a code (empty means the default) to its loaded
// corpus under the read lock.
func (e *Engine) translation(code string) (*corpus.Translation, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.set.Get(code)
}

// snapshotPtr returns the swap pointer for a code, creating it for
// translations that appeared after startup.
func (e *Engine) snapshotPtr(code string) *atomic.Pointer[snapshot] {
	e.mu.Lock()
	defer e.mu.Unlock()
	ptr := e.snapshots[code]
	if ptr == nil {
		ptr = &atomic.Pointer[snapshot]{}
		e.snapshots[code] = ptr
	}
	return ptr
}

// Reload re-reads one translation's corpus file and rebuilds its index,
// swapping the snapshot once the new index is ready.
func (e *Engine) Reload(ctx context.Context, code string) error {
	path := filepath.Join(e.opts.CorpusDir, code+".dat")
	tr, err := corpus.LoadFile(code, path)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.set[tr.Code] = tr
	e.mu.Unlock()
	return e.rebuild(ctx, tr.Code)
}

// Close stops the corpus watcher if one is running.
func (e *Engine) Close() error {
	if e.watcher != nil {
		return e.watcher.Close()
	}
	return nil
}
