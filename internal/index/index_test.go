package index

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmhobbs/concord/internal/canon"
	"github.com/jmhobbs/concord/internal/corpus"
	"github.com/jmhobbs/concord/internal/normalize"
)

const miniCorpus = `01001001 In the beginning God created the heaven and the earth.
01001002 And the earth was without form, and void; and darkness was upon the face of the deep.
01001003 And God said, Let there be light: and there was light.
01002001 Thus the heavens and the earth were finished, and all the host of them.
19023001 The LORD is my shepherd; I shall not want.
19023002 He maketh me to lie down in green pastures: he leadeth me beside the still waters.
43003016 For God so loved the world, that he gave his only begotten Son, that whosoever believeth in him should not perish, but have everlasting life.
66022021 The grace of our Lord Jesus Christ be with you all. Amen.
`

func buildMini(t *testing.T) *Index {
	t.Helper()
	tr, err := corpus.Parse("kjv", strings.NewReader(miniCorpus))
	require.NoError(t, err)
	return Build(tr, normalize.New(normalize.Options{}), false)
}

func TestBuild_OrdinalsAreDenseAndCanonical(t *testing.T) {
	idx := buildMini(t)

	require.Equal(t, 8, idx.VerseCount())
	for ordinal := 0; ordinal < idx.VerseCount(); ordinal++ {
		v := idx.Verse(ordinal)
		got, ok := idx.OrdinalOf(v.Book, v.Chapter, v.Verse)
		require.True(t, ok)
		assert.Equal(t, ordinal, got)
	}

	// First and last verses of the corpus sit at the ordinal extremes.
	assert.Equal(t, canon.Genesis, idx.Verse(0).Book)
	assert.Equal(t, canon.Revelation, idx.Verse(idx.VerseCount()-1).Book)
}

func TestBuild_PostingsCarryFrequencyAndPositions(t *testing.T) {
	idx := buildMini(t)

	// "light" occurs twice in Gen 1:3 and nowhere else.
	list := idx.Postings("light")
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Freq)
	assert.Len(t, list[0].Positions, 2)

	ord, ok := idx.OrdinalOf(canon.Genesis, 1, 3)
	require.True(t, ok)
	assert.Equal(t, ord, list[0].Ordinal)

	// "earth" spans three verses; postings are ordinal-ascending.
	earth := idx.Postings("earth")
	require.Len(t, earth, 3)
	for i := 1; i < len(earth); i++ {
		assert.Greater(t, earth[i].Ordinal, earth[i-1].Ordinal)
	}
	assert.Equal(t, 3, idx.DocFreq("earth"))
}

func TestBuild_Stats(t *testing.T) {
	idx := buildMini(t)

	assert.Equal(t, "kjv", idx.Translation())
	assert.NotEmpty(t, idx.Fingerprint())
	assert.Positive(t, idx.TotalTokens())
	assert.Positive(t, idx.TermCount())
	assert.InDelta(t, float64(idx.TotalTokens())/8, idx.AvgVerseLength(), 1e-9)
}

func TestBuild_Bounds(t *testing.T) {
	idx := buildMini(t)

	assert.True(t, idx.HasBook(canon.Genesis))
	assert.False(t, idx.HasBook(canon.Exodus))
	assert.Equal(t, 2, idx.LastChapter(canon.Genesis))
	assert.Equal(t, 3, idx.LastVerse(canon.Genesis, 1))
	assert.Equal(t, 1, idx.LastVerse(canon.Genesis, 2))
	assert.Equal(t, 0, idx.LastVerse(canon.Genesis, 3))
	assert.Equal(t, 2, idx.LastVerse(canon.Psalms, 23))
}

func TestBuild_UnknownTermHasNoPostings(t *testing.T) {
	idx := buildMini(t)
	assert.Nil(t, idx.Postings("zebra"))
	assert.Equal(t, 0, idx.DocFreq("zebra"))
}

func TestCache_RoundTrip(t *testing.T) {
	idx := buildMini(t)
	path := CachePath(t.TempDir(), "kjv")

	require.NoError(t, SaveCache(path, idx))

	loaded, ok, err := LoadCache(path, "kjv", idx.Fingerprint(), false)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, idx.VerseCount(), loaded.VerseCount())
	assert.Equal(t, idx.TermCount(), loaded.TermCount())
	assert.Equal(t, idx.TotalTokens(), loaded.TotalTokens())
	assert.Equal(t, idx.Verse(0), loaded.Verse(0))
	assert.Equal(t, idx.Postings("earth"), loaded.Postings("earth"))
	assert.Equal(t, idx.LastVerse(canon.Genesis, 1), loaded.LastVerse(canon.Genesis, 1))
}

func TestCache_FingerprintMismatchForcesRebuild(t *testing.T) {
	idx := buildMini(t)
	path := CachePath(t.TempDir(), "kjv")
	require.NoError(t, SaveCache(path, idx))

	_, ok, err := LoadCache(path, "kjv", "deadbeef", false)
	require.NoError(t, err)
	assert.False(t, ok)

	// Normalization mode is part of the cache key too.
	_, ok, err = LoadCache(path, "kjv", idx.Fingerprint(), true)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_MissingFileIsAMiss(t *testing.T) {
	_, ok, err := LoadCache(CachePath(t.TempDir(), "kjv"), "kjv", "abc", false)
	require.NoError(t, err)
	assert.False(t, ok)
}
