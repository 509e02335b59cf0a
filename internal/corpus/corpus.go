// Package corpus loads translation corpora into verse records.
//
// The corpus file format is one verse per line: an eight-digit key
// BBCCCVVV (two-digit book, three-digit chapter, three-digit verse),
// one separator byte, then the verse text. Files are read once per
// process; the loaded Translation is immutable.
package corpus

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jmhobbs/concord/internal/canon"
	"github.com/jmhobbs/concord/internal/errors"
)

// Verse is one verse of one translation.
type Verse struct {
	Book    canon.Book
	Chapter int
	Verse   int
	Text    string
}

// ID returns the packed verse key in BBCCCVVV form, e.g. 43003016 for
// John 3:16. IDs order verses canonically when compared numerically.
func (v Verse) ID() int {
	return int(v.Book)*1_000_000 + v.Chapter*1_000 + v.Verse
}

// Ref renders the canonical reference string, e.g. "John 3:16".
func (v Verse) Ref() string {
	return fmt.Sprintf("%s %d:%d", v.Book, v.Chapter, v.Verse)
}

// Translation is one complete edition of the text, in canonical order.
type Translation struct {
	// Code is the short translation identifier, e.g. "kjv".
	Code string
	// Verses holds every verse sorted by ID.
	Verses []Verse
	// Fingerprint is the SHA-256 of the corpus file contents, used to
	// key the index cache.
	Fingerprint string
}

// Known translation codes, in preference order. KJV is the default.
var KnownTranslations = []string{"kjv", "asv"}

// DefaultTranslation is used when the request does not select one.
const DefaultTranslation = "kjv"

// Parse reads a corpus stream and returns the translation it contains.
// Verses are sorted into canonical order regardless of file order.
func Parse(code string, r io.Reader) (*Translation, error) {
	hash := sha256.New()
	scanner := bufio.NewScanner(io.TeeReader(r, hash))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var verses []Verse
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		v, err := parseLine(line)
		if err != nil {
			return nil, errors.Newf(errors.ErrCodeCorpusMalformed,
				"corpus %s line %d: %v", code, lineNo, err)
		}
		verses = append(verses, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCorpusMalformed, err)
	}
	if len(verses) == 0 {
		return nil, errors.Newf(errors.ErrCodeCorpusMalformed, "corpus %s contains no verses", code)
	}

	sort.Slice(verses, func(i, j int) bool { return verses[i].ID() < verses[j].ID() })

	return &Translation{
		Code:        code,
		Verses:      verses,
		Fingerprint: hex.EncodeToString(hash.Sum(nil)),
	}, nil
}

// parseLine splits a "BBCCCVVV text" corpus line.
func parseLine(line string) (Verse, error) {
	if len(line) < 10 {
		return Verse{}, fmt.Errorf("line too short")
	}
	id, err := strconv.Atoi(line[:8])
	if err != nil {
		return Verse{}, fmt.Errorf("bad verse key %q", line[:8])
	}

	book := canon.Book(id / 1_000_000)
	chapter := id % 1_000_000 / 1_000
	verse := id % 1_000
	if !book.Valid() || chapter == 0 || verse == 0 {
		return Verse{}, fmt.Errorf("verse key %08d out of range", id)
	}

	return Verse{
		Book:    book,
		Chapter: chapter,
		Verse:   verse,
		Text:    strings.TrimSpace(line[9:]),
	}, nil
}

// LoadFile reads one translation from a corpus file.
func LoadFile(code, path string) (*Translation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Newf(errors.ErrCodeCorpusNotFound,
			"corpus file for %s not found at %s", code, path)
	}
	defer func() { _ = f.Close() }()
	return Parse(code, f)
}

// Set is the loaded corpus: translation code to Translation.
type Set map[string]*Translation

// LoadDir loads every known translation found in dir (files named
// <code>.dat). At least one translation must load.
func LoadDir(dir string) (Set, error) {
	set := make(Set)
	for _, code := range KnownTranslations {
		path := dir + string(os.PathSeparator) + code + ".dat"
		if _, err := os.Stat(path); err != nil {
			continue
		}
		tr, err := LoadFile(code, path)
		if err != nil {
			return nil, err
		}
		set[code] = tr
	}
	if len(set) == 0 {
		return nil, errors.Newf(errors.ErrCodeCorpusNotFound,
			"no corpus files found in %s", dir)
	}
	return set, nil
}

// Get returns a translation by code, or an UnknownTranslation failure.
func (s Set) Get(code string) (*Translation, error) {
	if code == "" {
		code = DefaultTranslation
	}
	tr, ok := s[strings.ToLower(code)]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnknownTranslation,
			"translation %q is not loaded", code)
	}
	return tr, nil
}

// Codes lists the loaded translation codes in preference order.
func (s Set) Codes() []string {
	codes := make([]string, 0, len(s))
	for _, code := range KnownTranslations {
		if _, ok := s[code]; ok {
			codes = append(codes, code)
		}
	}
	return codes
}
