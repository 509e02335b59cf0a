// Package search plans and ranks free-text queries against a built
// verse index. The default backend scores with BM25 over the postings
// lists; a bleve-backed alternative exists behind the same interface
// for parity checking.
package search

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jmhobbs/concord/internal/errors"
	"github.com/jmhobbs/concord/internal/index"
	"github.com/jmhobbs/concord/internal/normalize"
)

// Hit is one ranked search result, identified by verse ordinal.
type Hit struct {
	Ordinal      int
	Score        float64
	MatchedTerms []string
}

// Searcher answers free-text queries with ranked hits.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Hit, error)
}

// Params are the BM25 tuning constants. They are configuration, not
// algorithmic identity; ranking behavior is verified through its
// monotonicity properties rather than exact scores.
type Params struct {
	// K1 controls term-frequency saturation. Higher values let
	// repeated terms keep contributing; 0 ignores frequency entirely.
	K1 float64
	// B controls verse-length normalization, 0 (none) to 1 (full).
	B float64
}

// DefaultParams returns the standard BM25 constants.
func DefaultParams() Params {
	return Params{K1: 1.2, B: 0.75}
}

// queryCacheSize bounds the per-engine LRU of recent query results.
const queryCacheSize = 256

// Engine is the postings-backed searcher. It reads the immutable index
// only, so concurrent searches need no synchronization; the LRU cache
// is itself thread-safe.
type Engine struct {
	idx    *index.Index
	norm   *normalize.Normalizer
	params Params
	cache  *lru.Cache[string, []Hit]
}

// NewEngine creates a postings-backed search engine over idx. The
// normalizer must be the one the index was built with.
func NewEngine(idx *index.Index, norm *normalize.Normalizer, params Params) *Engine {
	cache, err := lru.New[string, []Hit](queryCacheSize)
	if err != nil {
		// Only reachable with a non-positive size constant.
		panic(err)
	}
	return &Engine{idx: idx, norm: norm, params: params, cache: cache}
}

// Search normalizes the query, retrieves candidate verses, scores them
// with BM25, and returns the top limit hits ordered by score descending
// with canonical-order tie-breaking. A query that normalizes to zero
// usable terms returns an empty list; a blank query is a validation
// failure.
func (e *Engine) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New(errors.ErrCodeEmptyQuery, "search query is empty", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []Hit{}, nil
	}

	terms := e.planTerms(query)
	if len(terms) == 0 {
		slog.Debug("search_no_usable_terms", slog.String("query", query))
		return []Hit{}, nil
	}

	key := cacheKey(terms, limit)
	if hits, ok := e.cache.Get(key); ok {
		return hits, nil
	}

	hits := e.rank(terms, limit)
	e.cache.Add(key, hits)

	slog.Debug("search_complete",
		slog.String("translation", e.idx.Translation()),
		slog.Int("terms", len(terms)),
		slog.Int("hits", len(hits)))
	return hits, nil
}

// planTerms normalizes the query and drops terms absent from the
// vocabulary (they contribute zero score) and duplicates (the query is
// treated as a term set).
func (e *Engine) planTerms(query string) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, term := range e.norm.Terms(query) {
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		if e.idx.DocFreq(term) > 0 {
			terms = append(terms, term)
		}
	}
	return terms
}

// rank accumulates BM25 scores term by term and keeps the top limit.
func (e *Engine) rank(terms []string, limit int) []Hit {
	type acc struct {
		score   float64
		matched []string
	}

	n := float64(e.idx.VerseCount())
	avgLen := e.idx.AvgVerseLength()
	scores := make(map[int]*acc)

	for _, term := range terms {
		postings := e.idx.Postings(term)
		idf := math.Log(1 + (n-float64(len(postings))+0.5)/(float64(len(postings))+0.5))

		for _, p := range postings {
			tf := float64(p.Freq)
			norm := 1 - e.params.B + e.params.B*float64(e.idx.VerseLength(p.Ordinal))/avgLen
			contribution := idf * tf * (e.params.K1 + 1) / (tf + e.params.K1*norm)

			a := scores[p.Ordinal]
			if a == nil {
				a = &acc{}
				scores[p.Ordinal] = a
			}
			a.score += contribution
			a.matched = append(a.matched, term)
		}
	}

	hits := make([]Hit, 0, len(scores))
	for ordinal, a := range scores {
		hits = append(hits, Hit{Ordinal: ordinal, Score: a.score, MatchedTerms: a.matched})
	}

	// Score descending, canonical verse order ascending on ties.
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Ordinal < hits[j].Ordinal
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

func cacheKey(terms []string, limit int) string {
	return strconv.Itoa(limit) + "\x00" + strings.Join(terms, "\x00")
}

// Verify interface implementation.
var _ Searcher = (*Engine)(nil)
