package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmhobbs/concord/internal/canon"
	"github.com/jmhobbs/concord/internal/errors"
)

const miniCorpus = `01001001 In the beginning God created the heaven and the earth.
01001002 And the earth was without form, and void; and darkness was upon the face of the deep.
01001003 And God said, Let there be light: and there was light.
19023001 The LORD is my shepherd; I shall not want.
43003016 For God so loved the world, that he gave his only begotten Son, that whosoever believeth in him should not perish, but have everlasting life.
66022021 The grace of our Lord Jesus Christ be with you all. Amen.
`

func TestParse_MiniCorpus(t *testing.T) {
	tr, err := Parse("kjv", strings.NewReader(miniCorpus))
	require.NoError(t, err)

	require.Len(t, tr.Verses, 6)
	assert.Equal(t, "kjv", tr.Code)
	assert.NotEmpty(t, tr.Fingerprint)

	first := tr.Verses[0]
	assert.Equal(t, canon.Genesis, first.Book)
	assert.Equal(t, 1, first.Chapter)
	assert.Equal(t, 1, first.Verse)
	assert.Equal(t, "In the beginning God created the heaven and the earth.", first.Text)

	last := tr.Verses[5]
	assert.Equal(t, canon.Revelation, last.Book)
	assert.Equal(t, "Revelation 22:21", last.Ref())
}

func TestParse_SortsIntoCanonicalOrder(t *testing.T) {
	shuffled := `43003016 For God so loved the world.
01001001 In the beginning God created the heaven and the earth.
19023001 The LORD is my shepherd; I shall not want.
`
	tr, err := Parse("kjv", strings.NewReader(shuffled))
	require.NoError(t, err)

	require.Len(t, tr.Verses, 3)
	assert.Equal(t, canon.Genesis, tr.Verses[0].Book)
	assert.Equal(t, canon.Psalms, tr.Verses[1].Book)
	assert.Equal(t, canon.John, tr.Verses[2].Book)
}

func TestParse_MalformedLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"short line", "0100\n"},
		{"non-numeric key", "abcdefgh text here\n"},
		{"book out of range", "99001001 no such book\n"},
		{"zero chapter", "01000001 no such chapter\n"},
		{"empty corpus", "\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("kjv", strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Equal(t, errors.CategoryIO, errors.GetCategory(err))
		})
	}
}

func TestParse_FingerprintIsStable(t *testing.T) {
	a, err := Parse("kjv", strings.NewReader(miniCorpus))
	require.NoError(t, err)
	b, err := Parse("kjv", strings.NewReader(miniCorpus))
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)

	c, err := Parse("kjv", strings.NewReader(miniCorpus+"40001001 The book of the generation of Jesus Christ.\n"))
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint, c.Fingerprint)
}

func TestVerse_ID(t *testing.T) {
	v := Verse{Book: canon.John, Chapter: 3, Verse: 16}
	assert.Equal(t, 43003016, v.ID())
}

func TestSet_Get(t *testing.T) {
	tr, err := Parse("kjv", strings.NewReader(miniCorpus))
	require.NoError(t, err)
	set := Set{"kjv": tr}

	got, err := set.Get("KJV")
	require.NoError(t, err)
	assert.Equal(t, tr, got)

	// Empty code falls back to the default translation.
	got, err = set.Get("")
	require.NoError(t, err)
	assert.Equal(t, tr, got)

	_, err = set.Get("niv")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnknownTranslation, errors.GetCode(err))
}
