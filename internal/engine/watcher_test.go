package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmhobbs/concord/internal/canon"
	"github.com/jmhobbs/concord/internal/search"
)

func TestTranslationFor(t *testing.T) {
	tests := []struct {
		path string
		code string
		ok   bool
	}{
		{path: "/data/corpus/kjv.dat", code: "kjv", ok: true},
		{path: "ASV.dat", code: "asv", ok: true},
		{path: "/data/corpus/notes.txt", ok: false},
		{path: "/data/corpus/kjv.dat.tmp", ok: false},
	}

	for _, tt := range tests {
		code, ok := translationFor(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		if tt.ok {
			assert.Equal(t, tt.code, code)
		}
	}
}

func TestWatch_RebuildsOnCorpusChange(t *testing.T) {
	corpusDir := t.TempDir()
	writeCorpus(t, corpusDir)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e, err := New(ctx, Options{
		CorpusDir: corpusDir,
		Backend:   search.BackendPostings,
		Params:    search.DefaultParams(),
	})
	require.NoError(t, err)
	defer e.Close()

	require.NoError(t, e.Watch(ctx, 50*time.Millisecond))

	grown := kjvFixture + "\n02001001 Now these are the names of the children of Israel, which came into Egypt."
	require.NoError(t, os.WriteFile(filepath.Join(corpusDir, "kjv.dat"), []byte(grown), 0o644))

	// The debounced rebuild lands shortly after the write settles.
	assert.Eventually(t, func() bool {
		set, err := e.Lookup(ctx, "kjv", "Exodus 1:1")
		return err == nil && len(set.Verses) == 1 && set.Verses[0].Ref.Book == canon.Exodus
	}, 5*time.Second, 25*time.Millisecond)
}
