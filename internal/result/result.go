// Package result turns resolved ranges and search hits into the
// ordered, deduplicated verse lists the presentation layer renders.
package result

import (
	"github.com/jmhobbs/concord/internal/corpus"
	"github.com/jmhobbs/concord/internal/index"
	"github.com/jmhobbs/concord/internal/resolve"
	"github.com/jmhobbs/concord/internal/search"
)

// ScoreUnranked marks results that came from a reference lookup rather
// than a ranked search.
const ScoreUnranked = -1.0

// Verse is one verse in a result set. Rank is 1-based for ranked
// results and 0 for lookups.
type Verse struct {
	Ref   resolve.Ref
	Text  string
	Score float64
	Rank  int
}

// Set is an ordered result list with its provenance.
type Set struct {
	// Translation is the corpus code the results came from.
	Translation string
	// Ranked is true when order reflects relevance, false when it
	// reflects canonical verse order.
	Ranked bool
	Verses []Verse
}

func toRef(v corpus.Verse) resolve.Ref {
	return resolve.Ref{Book: v.Book, Chapter: v.Chapter, Verse: v.Verse}
}

// FromRange materializes a resolved range in canonical verse order.
func FromRange(idx *index.Index, r resolve.Range) *Set {
	verses := make([]Verse, 0, r.Len())
	for ordinal := r.FirstOrdinal; ordinal <= r.LastOrdinal; ordinal++ {
		v := idx.Verse(ordinal)
		verses = append(verses, Verse{
			Ref:   toRef(v),
			Text:  v.Text,
			Score: ScoreUnranked,
		})
	}
	return &Set{Translation: idx.Translation(), Verses: verses}
}

// FromHits materializes ranked search hits, preserving the ranker's
// order and dropping any duplicate ordinals.
func FromHits(idx *index.Index, hits []search.Hit) *Set {
	verses := make([]Verse, 0, len(hits))
	seen := make(map[int]struct{}, len(hits))
	for _, h := range hits {
		if _, dup := seen[h.Ordinal]; dup {
			continue
		}
		seen[h.Ordinal] = struct{}{}
		v := idx.Verse(h.Ordinal)
		verses = append(verses, Verse{
			Ref:   toRef(v),
			Text:  v.Text,
			Score: h.Score,
			Rank:  len(verses) + 1,
		})
	}
	return &Set{Translation: idx.Translation(), Ranked: true, Verses: verses}
}
