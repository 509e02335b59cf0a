// Package resolve parses textual verse references ("John 3:16",
// "Gen 1:1-3", "Ps 23", "Gen 1-3") into resolved, bounds-checked
// ranges over a translation's ordinal space.
package resolve

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmhobbs/concord/internal/canon"
	"github.com/jmhobbs/concord/internal/errors"
	"github.com/jmhobbs/concord/internal/index"
)

// Ref is a fully resolved (book, chapter, verse) triple.
type Ref struct {
	Book    canon.Book
	Chapter int
	Verse   int
}

// String renders the canonical reference, e.g. "John 3:16".
func (r Ref) String() string {
	return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
}

// Kind describes the syntactic form a range was written in. It drives
// rendering and the chapter-boundary rule: only an explicit chapter
// range may span chapters.
type Kind int

const (
	KindVerse Kind = iota
	KindVerseRange
	KindChapter
	KindChapterRange
	KindBook
)

// Range is a resolved, inclusive span of verses. Ranges always map to
// a contiguous slice of the translation's ordinal space.
type Range struct {
	Kind  Kind
	Start Ref
	End   Ref

	// FirstOrdinal and LastOrdinal bound the contiguous ordinal slice
	// (inclusive) within the translation the range was resolved for.
	FirstOrdinal int
	LastOrdinal  int
}

// Len returns the number of verses spanned.
func (r Range) Len() int {
	return r.LastOrdinal - r.FirstOrdinal + 1
}

// String re-renders the range in the form it was written.
func (r Range) String() string {
	switch r.Kind {
	case KindBook:
		return r.Start.Book.String()
	case KindChapter:
		return fmt.Sprintf("%s %d", r.Start.Book, r.Start.Chapter)
	case KindChapterRange:
		return fmt.Sprintf("%s %d-%d", r.Start.Book, r.Start.Chapter, r.End.Chapter)
	case KindVerseRange:
		return fmt.Sprintf("%s %d:%d-%d", r.Start.Book, r.Start.Chapter, r.Start.Verse, r.End.Verse)
	default:
		return r.Start.String()
	}
}

// locPattern matches the trailing location portion of a reference:
// "3", "3:16", "3:16-18", or "1-3".
var locPattern = regexp.MustCompile(`^(\d+)(?::(\d+)(?:-(\d+))?|-(\d+))?$`)

// crossChapterPattern recognizes verse ranges written across chapters,
// e.g. "Gen 1:30-2:2", which the grammar deliberately rejects.
var crossChapterPattern = regexp.MustCompile(`\d+:\d+\s*-\s*\d+:\d+$`)

// Resolver resolves references against one translation's index, which
// supplies the actual chapter and verse bounds.
type Resolver struct {
	idx *index.Index
}

// New creates a Resolver over an index.
func New(idx *index.Index) *Resolver {
	return &Resolver{idx: idx}
}

// Resolve parses and validates a raw reference string.
//
// The book part is matched per canon.Match (aliases, abbreviations,
// fuzzy). Numbers are validated against the corpus bounds of this
// translation, never against a static table.
func (r *Resolver) Resolve(raw string) (Range, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Range{}, errors.New(errors.ErrCodeInvalidReference, "empty reference", nil)
	}

	bookPart, loc, hasLoc := splitLocation(trimmed)

	if hasLoc {
		book, merr := canon.Match(bookPart)
		if merr == nil {
			return r.resolveLocation(book, loc)
		}
		// "Kings 1" style: the trailing number belongs to the book
		// name, not a chapter. Only retry for a bare number.
		if !loc.hasVerse && !loc.hasChapterEnd {
			if book, retryErr := canon.Match(trimmed); retryErr == nil {
				return r.wholeBook(book)
			}
		}
		return Range{}, bookError(merr)
	}

	// Book names never contain a colon; a colon that survived the
	// location split means the reference itself is malformed.
	if strings.Contains(trimmed, ":") {
		if crossChapterPattern.MatchString(trimmed) {
			return Range{}, errors.Newf(errors.ErrCodeInvalidRange,
				"%q crosses a chapter boundary: write it as a chapter range", trimmed)
		}
		return Range{}, errors.Newf(errors.ErrCodeInvalidReference,
			"malformed reference %q", trimmed)
	}

	book, merr := canon.Match(trimmed)
	if merr != nil {
		return Range{}, bookError(merr)
	}
	return r.wholeBook(book)
}

// location is the parsed numeric tail of a reference. Presence flags
// are separate from the values so a written "0" still reaches the
// bounds checks instead of reading as an absent field.
type location struct {
	chapter       int
	chapterEnd    int // "1-3"
	verse         int // "3:16"
	verseEnd      int // "3:16-18"
	hasChapterEnd bool
	hasVerse      bool
	hasVerseEnd   bool
}

// splitLocation splits "1 John 3:16" into ("1 John", {3 16}) when the
// final whitespace-separated field looks like a location.
func splitLocation(s string) (string, location, bool) {
	idx := strings.LastIndexFunc(s, func(r rune) bool { return r == ' ' || r == '\t' })
	if idx < 0 {
		return s, location{}, false
	}
	tail := s[idx+1:]
	m := locPattern.FindStringSubmatch(tail)
	if m == nil {
		return s, location{}, false
	}

	var loc location
	loc.chapter, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		loc.verse, _ = strconv.Atoi(m[2])
		loc.hasVerse = true
	}
	if m[3] != "" {
		loc.verseEnd, _ = strconv.Atoi(m[3])
		loc.hasVerseEnd = true
	}
	if m[4] != "" {
		loc.chapterEnd, _ = strconv.Atoi(m[4])
		loc.hasChapterEnd = true
	}
	return strings.TrimSpace(s[:idx]), loc, true
}

func (r *Resolver) resolveLocation(book canon.Book, loc location) (Range, error) {
	if !r.idx.HasBook(book) {
		return Range{}, errors.Newf(errors.ErrCodeUnknownBook,
			"%s is not present in translation %s", book, r.idx.Translation())
	}

	switch {
	case loc.hasVerseEnd:
		return r.verseRange(book, loc.chapter, loc.verse, loc.verseEnd)
	case loc.hasVerse:
		return r.verseRange(book, loc.chapter, loc.verse, loc.verse)
	case loc.hasChapterEnd:
		return r.chapterRange(book, loc.chapter, loc.chapterEnd)
	default:
		return r.chapterRange(book, loc.chapter, loc.chapter)
	}
}

func (r *Resolver) checkChapter(book canon.Book, chapter int) error {
	last := r.idx.LastChapter(book)
	if chapter < 1 || chapter > last {
		return errors.Newf(errors.ErrCodeChapterOutOfRange,
			"%s has chapters 1-%d, not %d", book, last, chapter)
	}
	return nil
}

func (r *Resolver) verseRange(book canon.Book, chapter, start, end int) (Range, error) {
	if err := r.checkChapter(book, chapter); err != nil {
		return Range{}, err
	}
	if end < start {
		return Range{}, errors.Newf(errors.ErrCodeInvalidRange,
			"verse range %d-%d ends before it starts", start, end)
	}
	last := r.idx.LastVerse(book, chapter)
	if start < 1 || start > last {
		return Range{}, verseOutOfRange(book, chapter, start, last)
	}
	if end > last {
		return Range{}, verseOutOfRange(book, chapter, end, last)
	}

	kind := KindVerse
	if end != start {
		kind = KindVerseRange
	}
	return r.build(kind,
		Ref{Book: book, Chapter: chapter, Verse: start},
		Ref{Book: book, Chapter: chapter, Verse: end})
}

func (r *Resolver) chapterRange(book canon.Book, start, end int) (Range, error) {
	if end < start {
		return Range{}, errors.Newf(errors.ErrCodeInvalidRange,
			"chapter range %d-%d ends before it starts", start, end)
	}
	if err := r.checkChapter(book, start); err != nil {
		return Range{}, err
	}
	if err := r.checkChapter(book, end); err != nil {
		return Range{}, err
	}

	kind := KindChapter
	if end != start {
		kind = KindChapterRange
	}
	return r.build(kind,
		Ref{Book: book, Chapter: start, Verse: 1},
		Ref{Book: book, Chapter: end, Verse: r.idx.LastVerse(book, end)})
}

func (r *Resolver) wholeBook(book canon.Book) (Range, error) {
	if !r.idx.HasBook(book) {
		return Range{}, errors.Newf(errors.ErrCodeUnknownBook,
			"%s is not present in translation %s", book, r.idx.Translation())
	}
	lastCh := r.idx.LastChapter(book)
	return r.build(KindBook,
		Ref{Book: book, Chapter: 1, Verse: 1},
		Ref{Book: book, Chapter: lastCh, Verse: r.idx.LastVerse(book, lastCh)})
}

// build finalizes a validated range by locating its ordinal slice.
func (r *Resolver) build(kind Kind, start, end Ref) (Range, error) {
	first, ok := r.idx.OrdinalOf(start.Book, start.Chapter, start.Verse)
	if !ok {
		return Range{}, missingVerse(start)
	}
	last, ok := r.idx.OrdinalOf(end.Book, end.Chapter, end.Verse)
	if !ok {
		return Range{}, missingVerse(end)
	}
	return Range{Kind: kind, Start: start, End: end, FirstOrdinal: first, LastOrdinal: last}, nil
}

func verseOutOfRange(book canon.Book, chapter, verse, last int) error {
	return errors.Newf(errors.ErrCodeVerseOutOfRange,
		"%s %d has verses 1-%d, not %d", book, chapter, last, verse)
}

// missingVerse covers corpora with gaps inside a chapter. The bounds
// checks pass but the verse itself is absent.
func missingVerse(ref Ref) error {
	return errors.Newf(errors.ErrCodeVerseOutOfRange,
		"%s is not present in the corpus", ref)
}

func bookError(merr *canon.MatchError) error {
	err := errors.New(errors.ErrCodeUnknownBook, merr.Error(), nil)
	if len(merr.Ambiguous) > 0 {
		err = err.WithDetail("candidates", strings.Join(merr.Ambiguous, ", "))
	}
	return err
}
