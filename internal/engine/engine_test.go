package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmhobbs/concord/internal/canon"
	"github.com/jmhobbs/concord/internal/errors"
	"github.com/jmhobbs/concord/internal/search"
)

const kjvFixture = `01001001 In the beginning God created the heaven and the earth.
01001002 And the earth was without form, and void; and darkness was upon the face of the deep.
01001003 And God said, Let there be light: and there was light.
19023001 The LORD is my shepherd; I shall not want.
43003016 For God so loved the world, that he gave his only begotten Son, that whosoever believeth in him should not perish, but have everlasting life.
66022021 The grace of our Lord Jesus Christ be with you all. Amen.`

const asvFixture = `01001001 In the beginning God created the heavens and the earth.
43003016 For God so loved the world, that he gave his only begotten Son, that whosoever believeth on him should not perish, but have eternal life.`

func writeCorpus(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kjv.dat"), []byte(kjvFixture), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "asv.dat"), []byte(asvFixture), 0o644))
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	corpusDir := t.TempDir()
	writeCorpus(t, corpusDir)

	e, err := New(context.Background(), Options{
		CorpusDir: corpusDir,
		CacheDir:  t.TempDir(),
		Backend:   search.BackendPostings,
		Params:    search.DefaultParams(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestEngine_Lookup(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	set, err := e.Lookup(ctx, "", "John 3:16")
	require.NoError(t, err)
	assert.Equal(t, "kjv", set.Translation)
	require.Len(t, set.Verses, 1)
	assert.Equal(t, canon.John, set.Verses[0].Ref.Book)
	assert.Contains(t, set.Verses[0].Text, "everlasting life")

	// Same reference against the other translation.
	set, err = e.Lookup(ctx, "asv", "John 3:16")
	require.NoError(t, err)
	assert.Contains(t, set.Verses[0].Text, "eternal life")
}

func TestEngine_LookupRange(t *testing.T) {
	e := newTestEngine(t)

	set, err := e.Lookup(context.Background(), "kjv", "Gen 1:1-3")
	require.NoError(t, err)
	require.Len(t, set.Verses, 3)
	assert.False(t, set.Ranked)
	assert.Equal(t, 1, set.Verses[0].Ref.Verse)
	assert.Equal(t, 3, set.Verses[2].Ref.Verse)
}

func TestEngine_Search(t *testing.T) {
	e := newTestEngine(t)

	set, err := e.Search(context.Background(), "kjv", "shepherd", 10)
	require.NoError(t, err)
	assert.True(t, set.Ranked)
	require.Len(t, set.Verses, 1)
	assert.Equal(t, canon.Psalms, set.Verses[0].Ref.Book)
	assert.Equal(t, 1, set.Verses[0].Rank)
}

func TestEngine_UnknownTranslation(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Lookup(context.Background(), "niv", "John 3:16")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnknownTranslation, errors.GetCode(err))
}

func TestEngine_Books(t *testing.T) {
	e := newTestEngine(t)

	books, err := e.Books("kjv")
	require.NoError(t, err)
	assert.Equal(t, []canon.Book{canon.Genesis, canon.Psalms, canon.John, canon.Revelation}, books)

	books, err = e.Books("asv")
	require.NoError(t, err)
	assert.Equal(t, []canon.Book{canon.Genesis, canon.John}, books)
}

func TestEngine_Translations(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, []string{"kjv", "asv"}, e.Translations())
}

func TestEngine_CacheReuseGivesSameResults(t *testing.T) {
	corpusDir := t.TempDir()
	cacheDir := t.TempDir()
	writeCorpus(t, corpusDir)
	ctx := context.Background()

	opts := Options{
		CorpusDir: corpusDir,
		CacheDir:  cacheDir,
		Backend:   search.BackendPostings,
		Params:    search.DefaultParams(),
	}

	first, err := New(ctx, opts)
	require.NoError(t, err)
	cold, err := first.Search(ctx, "kjv", "beginning God created", 10)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// Second engine must hit the cache and answer identically.
	second, err := New(ctx, opts)
	require.NoError(t, err)
	defer second.Close()
	warm, err := second.Search(ctx, "kjv", "beginning God created", 10)
	require.NoError(t, err)

	assert.Equal(t, cold, warm)
}

func TestEngine_Reload(t *testing.T) {
	corpusDir := t.TempDir()
	writeCorpus(t, corpusDir)
	ctx := context.Background()

	e, err := New(ctx, Options{
		CorpusDir: corpusDir,
		Backend:   search.BackendPostings,
		Params:    search.DefaultParams(),
	})
	require.NoError(t, err)
	defer e.Close()

	_, err = e.Lookup(ctx, "kjv", "Exodus 1:1")
	require.Error(t, err)

	grown := kjvFixture + "\n02001001 Now these are the names of the children of Israel, which came into Egypt."
	require.NoError(t, os.WriteFile(filepath.Join(corpusDir, "kjv.dat"), []byte(grown), 0o644))
	require.NoError(t, e.Reload(ctx, "kjv"))

	set, err := e.Lookup(ctx, "kjv", "Exodus 1:1")
	require.NoError(t, err)
	require.Len(t, set.Verses, 1)
	assert.Equal(t, canon.Exodus, set.Verses[0].Ref.Book)
}

func TestEngine_Stats(t *testing.T) {
	e := newTestEngine(t)

	stats := e.Stats()
	require.Len(t, stats, 2)
	assert.Equal(t, "kjv", stats[0].Translation)
	assert.Equal(t, 6, stats[0].Verses)
	assert.NotEmpty(t, stats[0].Fingerprint)
}
