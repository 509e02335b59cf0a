package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmhobbs/concord/internal/canon"
	"github.com/jmhobbs/concord/internal/errors"
	"github.com/jmhobbs/concord/internal/resolve"
	"github.com/jmhobbs/concord/internal/result"
)

func plainRenderer() (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewRenderer(&buf, NoColorStyles()), &buf
}

func lookupSet() *result.Set {
	return &result.Set{
		Translation: "kjv",
		Verses: []result.Verse{
			{
				Ref:   resolve.Ref{Book: canon.John, Chapter: 3, Verse: 16},
				Text:  "For God so loved the world...",
				Score: result.ScoreUnranked,
			},
		},
	}
}

func TestRenderer_Lookup(t *testing.T) {
	r, buf := plainRenderer()

	r.Verses(lookupSet())

	out := buf.String()
	assert.Contains(t, out, "John 3:16")
	assert.Contains(t, out, "For God so loved")
	assert.NotContains(t, out, "1.")
}

func TestRenderer_Ranked(t *testing.T) {
	r, buf := plainRenderer()

	r.Verses(&result.Set{
		Translation: "kjv",
		Ranked:      true,
		Verses: []result.Verse{
			{Ref: resolve.Ref{Book: canon.Psalms, Chapter: 23, Verse: 1}, Text: "The LORD is my shepherd", Score: 2.1, Rank: 1},
			{Ref: resolve.Ref{Book: canon.Genesis, Chapter: 1, Verse: 3}, Text: "Let there be light", Score: 1.4, Rank: 2},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "1. Psalms 23:1")
	assert.Contains(t, out, "2. Genesis 1:3")
	// Scores are off unless requested.
	assert.NotContains(t, out, "2.100")
}

func TestRenderer_RankedWithScores(t *testing.T) {
	r, buf := plainRenderer()
	r.ShowScores = true

	r.Verses(&result.Set{
		Ranked: true,
		Verses: []result.Verse{
			{Ref: resolve.Ref{Book: canon.Psalms, Chapter: 23, Verse: 1}, Text: "The LORD is my shepherd", Score: 2.1, Rank: 1},
		},
	})

	assert.Contains(t, buf.String(), "(2.100)")
}

func TestRenderer_Empty(t *testing.T) {
	r, buf := plainRenderer()

	r.Verses(&result.Set{Ranked: true})

	assert.Contains(t, buf.String(), "no results")
}

func TestRenderer_Books(t *testing.T) {
	r, buf := plainRenderer()

	r.Books([]canon.Book{canon.Genesis, canon.SongOfSongs})

	out := buf.String()
	assert.Contains(t, out, "Genesis")
	assert.Contains(t, out, "Song of Songs")
	assert.Contains(t, out, canon.Abbreviation(canon.Genesis))
}

func TestRenderer_ValidationError(t *testing.T) {
	r, buf := plainRenderer()

	err := errors.New(errors.ErrCodeUnknownBook, "ambiguous book name 'Ju'", nil).
		WithDetail("candidates", "Jude, Judges")
	r.Error(err)

	out := buf.String()
	assert.Contains(t, out, "ambiguous book name")
	assert.Contains(t, out, "matches: Jude, Judges")
	// Validation failures stay human, no raw codes.
	assert.NotContains(t, out, "ERR_402")
}

func TestRenderer_InternalErrorKeepsCode(t *testing.T) {
	r, buf := plainRenderer()

	r.Error(errors.New(errors.ErrCodeInternal, "something broke", nil))

	assert.Contains(t, buf.String(), "ERR_501")
}

func TestPassageContent_ChapterHeadings(t *testing.T) {
	set := &result.Set{
		Verses: []result.Verse{
			{Ref: resolve.Ref{Book: canon.Genesis, Chapter: 1, Verse: 1}, Text: "In the beginning"},
			{Ref: resolve.Ref{Book: canon.Genesis, Chapter: 1, Verse: 2}, Text: "And the earth"},
			{Ref: resolve.Ref{Book: canon.Genesis, Chapter: 2, Verse: 1}, Text: "Thus the heavens"},
		},
	}

	content := passageContent(set, NoColorStyles())

	require.Contains(t, content, "Genesis 1")
	require.Contains(t, content, "Genesis 2")
	assert.Contains(t, content, "1 In the beginning")
	assert.Contains(t, content, "1 Thus the heavens")
}
