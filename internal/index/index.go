// Package index builds and serves the per-translation inverted index.
//
// An Index is immutable once built: any number of goroutines may read
// it concurrently without synchronization. Rebuilding produces a new
// Index; swapping it in is the engine's concern.
package index

import (
	"github.com/jmhobbs/concord/internal/canon"
	"github.com/jmhobbs/concord/internal/corpus"
	"github.com/jmhobbs/concord/internal/normalize"
)

// FormatVersion is bumped whenever the cached index layout or the
// normalization pipeline changes incompatibly. A cache written with a
// different version is discarded and rebuilt.
const FormatVersion = 1

// Posting links a term to one verse containing it.
type Posting struct {
	// Ordinal is the verse's position in the translation's dense,
	// zero-based canonical ordering.
	Ordinal int
	// Freq is the term's occurrence count within the verse.
	Freq int
	// Positions are zero-based token positions of each occurrence.
	Positions []int
}

// Index is the searchable form of one translation.
type Index struct {
	translation string
	fingerprint string
	stemming    bool

	verses   []corpus.Verse       // ordinal → verse record
	lengths  []int                // ordinal → token count
	postings map[string][]Posting // term → postings, ordinal ascending

	ordinalByID map[int]int          // packed verse ID → ordinal
	chapters    map[canon.Book][]int // book → per-chapter last verse number

	totalTokens int
}

// Build constructs the index for a translation. The corpus loader
// guarantees canonical verse order, which makes ordinals dense and
// canonical by construction.
func Build(tr *corpus.Translation, n *normalize.Normalizer, stemming bool) *Index {
	idx := &Index{
		translation: tr.Code,
		fingerprint: tr.Fingerprint,
		stemming:    stemming,
		verses:      tr.Verses,
		lengths:     make([]int, len(tr.Verses)),
		postings:    make(map[string][]Posting),
		ordinalByID: make(map[int]int, len(tr.Verses)),
		chapters:    make(map[canon.Book][]int),
	}

	for ordinal, v := range tr.Verses {
		idx.ordinalByID[v.ID()] = ordinal
		idx.recordBounds(v)

		tokens := n.Tokenize(v.Text)
		idx.lengths[ordinal] = len(tokens)
		idx.totalTokens += len(tokens)

		seen := make(map[string]int) // term → postings slot for this verse
		for _, tok := range tokens {
			if slot, ok := seen[tok.Term]; ok {
				list := idx.postings[tok.Term]
				list[slot].Freq++
				list[slot].Positions = append(list[slot].Positions, tok.Position)
				continue
			}
			idx.postings[tok.Term] = append(idx.postings[tok.Term], Posting{
				Ordinal:   ordinal,
				Freq:      1,
				Positions: []int{tok.Position},
			})
			seen[tok.Term] = len(idx.postings[tok.Term]) - 1
		}
	}

	return idx
}

// recordBounds extends the chapter/verse bounds table with one verse.
// Verses arrive in canonical order, so the running maximum per chapter
// is the chapter's last verse.
func (idx *Index) recordBounds(v corpus.Verse) {
	ch := idx.chapters[v.Book]
	for len(ch) < v.Chapter {
		ch = append(ch, 0)
	}
	if v.Verse > ch[v.Chapter-1] {
		ch[v.Chapter-1] = v.Verse
	}
	idx.chapters[v.Book] = ch
}

// Translation returns the translation code this index serves.
func (idx *Index) Translation() string { return idx.translation }

// Fingerprint returns the corpus content fingerprint the index was
// built from.
func (idx *Index) Fingerprint() string { return idx.fingerprint }

// Stemming reports whether the index was built with stemming enabled.
// Queries must be normalized the same way.
func (idx *Index) Stemming() bool { return idx.stemming }

// VerseCount returns the number of verses in the translation.
func (idx *Index) VerseCount() int { return len(idx.verses) }

// TermCount returns the vocabulary size.
func (idx *Index) TermCount() int { return len(idx.postings) }

// TotalTokens returns the total term occurrences across all verses.
func (idx *Index) TotalTokens() int { return idx.totalTokens }

// AvgVerseLength returns the mean verse length in tokens.
func (idx *Index) AvgVerseLength() float64 {
	if len(idx.verses) == 0 {
		return 0
	}
	return float64(idx.totalTokens) / float64(len(idx.verses))
}

// Verse returns the verse record at an ordinal.
func (idx *Index) Verse(ordinal int) corpus.Verse {
	return idx.verses[ordinal]
}

// VerseLength returns the token count of the verse at an ordinal.
func (idx *Index) VerseLength(ordinal int) int {
	return idx.lengths[ordinal]
}

// Postings returns the postings list for a term, or nil if the term is
// not in the vocabulary. Callers must not mutate the returned slice.
func (idx *Index) Postings(term string) []Posting {
	return idx.postings[term]
}

// DocFreq returns the number of distinct verses containing term.
func (idx *Index) DocFreq(term string) int {
	return len(idx.postings[term])
}

// OrdinalOf returns the ordinal of a (book, chapter, verse) triple.
func (idx *Index) OrdinalOf(b canon.Book, chapter, verse int) (int, bool) {
	v := corpus.Verse{Book: b, Chapter: chapter, Verse: verse}
	ord, ok := idx.ordinalByID[v.ID()]
	return ord, ok
}

// HasBook reports whether the translation contains any verses of b.
func (idx *Index) HasBook(b canon.Book) bool {
	return len(idx.chapters[b]) > 0
}

// LastChapter returns the last chapter number of a book, or 0 if the
// book is absent from the translation.
func (idx *Index) LastChapter(b canon.Book) int {
	return len(idx.chapters[b])
}

// LastVerse returns the last verse number of a chapter, or 0 if the
// chapter is absent.
func (idx *Index) LastVerse(b canon.Book, chapter int) int {
	ch := idx.chapters[b]
	if chapter < 1 || chapter > len(ch) {
		return 0
	}
	return ch[chapter-1]
}

// terms returns the vocabulary in unspecified order. Used by the
// cache writer.
func (idx *Index) terms() []string {
	out := make([]string, 0, len(idx.postings))
	for term := range idx.postings {
		out = append(out, term)
	}
	return out
}
