// Package normalize turns raw verse or query text into searchable
// tokens. The same Normalizer must be applied at index time and at
// query time; it is a pure function of its input and options.
package normalize

import (
	"strings"
	"unicode"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
)

// Options configures normalization. The zero value is exact-match
// mode: case folding and punctuation stripping only.
type Options struct {
	// Stemming applies a Porter stemming pass so that morphological
	// variants match ("loved" finds "love"). Off by default.
	Stemming bool
}

// Normalizer converts text to normalized tokens.
type Normalizer struct {
	opts Options
}

// New creates a Normalizer with the given options.
func New(opts Options) *Normalizer {
	return &Normalizer{opts: opts}
}

// Token is a normalized term with its position within the source text.
type Token struct {
	Term     string
	Position int
}

// Tokenize returns the normalized token sequence for text. Tokens are
// lowercased; punctuation is dropped except intra-word apostrophes
// ("name's" stays one token). Positions are zero-based token indexes.
func (n *Normalizer) Tokenize(text string) []Token {
	words := splitWords(text)
	tokens := make([]Token, 0, len(words))
	for i, w := range words {
		term := strings.ToLower(w)
		if n.opts.Stemming {
			term = string(porterstemmer.StemWithoutLowerCasing([]rune(term)))
		}
		if term == "" {
			continue
		}
		tokens = append(tokens, Token{Term: term, Position: i})
	}
	return tokens
}

// Terms returns just the normalized term strings, in order.
func (n *Normalizer) Terms(text string) []string {
	tokens := n.Tokenize(text)
	terms := make([]string, len(tokens))
	for i, t := range tokens {
		terms[i] = t.Term
	}
	return terms
}

// splitWords breaks text into word candidates. A word is a run of
// letters and digits; an apostrophe is kept only between two such
// runs, so leading and trailing quotes fall away.
func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, strings.Trim(current.String(), "'"))
			current.Reset()
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			current.WriteRune(r)
		case r == '\'' || r == '’':
			// Keep a candidate apostrophe; Trim drops it unless
			// another word rune follows.
			if current.Len() > 0 {
				current.WriteRune('\'')
			}
		default:
			flush()
		}
	}
	flush()

	// Drop words that collapsed to nothing after trimming.
	out := words[:0]
	for _, w := range words {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
