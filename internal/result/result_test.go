package result

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmhobbs/concord/internal/canon"
	"github.com/jmhobbs/concord/internal/corpus"
	"github.com/jmhobbs/concord/internal/index"
	"github.com/jmhobbs/concord/internal/normalize"
	"github.com/jmhobbs/concord/internal/resolve"
	"github.com/jmhobbs/concord/internal/search"
)

const miniCorpus = `01001001 In the beginning God created the heaven and the earth.
01001002 And the earth was without form, and void; and darkness was upon the face of the deep.
01001003 And God said, Let there be light: and there was light.
43003016 For God so loved the world, that he gave his only begotten Son, that whosoever believeth in him should not perish, but have everlasting life.`

func buildIndex(t *testing.T) *index.Index {
	t.Helper()
	tr, err := corpus.Parse("kjv", strings.NewReader(miniCorpus))
	require.NoError(t, err)
	return index.Build(tr, normalize.New(normalize.Options{}), false)
}

func TestFromRange(t *testing.T) {
	idx := buildIndex(t)

	set := FromRange(idx, resolve.Range{
		Kind:         resolve.KindVerseRange,
		Start:        resolve.Ref{Book: canon.Genesis, Chapter: 1, Verse: 1},
		End:          resolve.Ref{Book: canon.Genesis, Chapter: 1, Verse: 3},
		FirstOrdinal: 0,
		LastOrdinal:  2,
	})

	assert.Equal(t, "kjv", set.Translation)
	assert.False(t, set.Ranked)
	require.Len(t, set.Verses, 3)

	for i, v := range set.Verses {
		assert.Equal(t, canon.Genesis, v.Ref.Book)
		assert.Equal(t, i+1, v.Ref.Verse)
		assert.Equal(t, ScoreUnranked, v.Score)
		assert.Zero(t, v.Rank)
	}
	assert.Contains(t, set.Verses[2].Text, "Let there be light")
}

func TestFromHits(t *testing.T) {
	idx := buildIndex(t)

	// Ranker order wins over canonical order.
	set := FromHits(idx, []search.Hit{
		{Ordinal: 3, Score: 2.5},
		{Ordinal: 0, Score: 1.0},
	})

	assert.True(t, set.Ranked)
	require.Len(t, set.Verses, 2)
	assert.Equal(t, resolve.Ref{Book: canon.John, Chapter: 3, Verse: 16}, set.Verses[0].Ref)
	assert.Equal(t, 1, set.Verses[0].Rank)
	assert.Equal(t, 2.5, set.Verses[0].Score)
	assert.Equal(t, 2, set.Verses[1].Rank)
}

func TestFromHits_Dedup(t *testing.T) {
	idx := buildIndex(t)

	set := FromHits(idx, []search.Hit{
		{Ordinal: 2, Score: 3.0},
		{Ordinal: 2, Score: 3.0},
		{Ordinal: 1, Score: 1.0},
	})

	require.Len(t, set.Verses, 2)
	assert.Equal(t, 1, set.Verses[0].Rank)
	assert.Equal(t, 2, set.Verses[1].Rank)
}

func TestFromHits_Empty(t *testing.T) {
	idx := buildIndex(t)

	set := FromHits(idx, nil)
	assert.True(t, set.Ranked)
	assert.Empty(t, set.Verses)
}
