package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_ExactAliases(t *testing.T) {
	tests := []struct {
		input string
		want  Book
	}{
		{"Genesis", Genesis},
		{"gen", Genesis},
		{"GEN.", Genesis},
		{"Ps", Psalms},
		{"psalm", Psalms},
		{"Song of Songs", SongOfSongs},
		{"song of solomon", SongOfSongs},
		{"John", John},
		{"Rev", Revelation},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Match(tt.input)
			require.Nil(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatch_NumberedBooks(t *testing.T) {
	tests := []struct {
		input string
		want  Book
	}{
		{"1 Kings", Kings1},
		{"1Kings", Kings1},
		{"Kings 1", Kings1},
		{"Kings1", Kings1},
		{"2 Sam", Samuel2},
		{"1 John", John1},
		{"3 Jn", John3},
		{"2 Cor.", Corinthians2},
		{"1 Thess", Thessalonians1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Match(tt.input)
			require.Nil(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatch_NumberedBookWithoutOrdinal(t *testing.T) {
	// Samuel has no bare form; the ordinal is required.
	_, err := Match("Samuel")
	require.NotNil(t, err)

	// An out-of-family ordinal is rejected too.
	_, err = Match("3 Kings")
	require.NotNil(t, err)

	// John without an ordinal is the gospel.
	got, err := Match("John")
	require.Nil(t, err)
	assert.Equal(t, John, got)
}

func TestMatch_FuzzyTypo(t *testing.T) {
	// Single-letter typo resolves when the best candidate is unambiguous.
	got, err := Match("Jonn")
	require.Nil(t, err)
	assert.Equal(t, John, got)

	got, err = Match("Exodis")
	require.Nil(t, err)
	assert.Equal(t, Exodus, got)

	got, err = Match("Revelations")
	require.Nil(t, err)
	assert.Equal(t, Revelation, got)
}

func TestMatch_NoCloseMatch(t *testing.T) {
	for _, input := range []string{"Ddd", "Xyzzy", "", "   "} {
		t.Run(input, func(t *testing.T) {
			_, err := Match(input)
			require.NotNil(t, err)
			assert.Empty(t, err.Ambiguous)
		})
	}
}

func TestMatch_InvalidOrdinal(t *testing.T) {
	_, err := Match("0 Kings")
	require.NotNil(t, err)
}

func TestNormalizeAlias(t *testing.T) {
	assert.Equal(t, "SONG OF SONGS", NormalizeAlias("  song  of   songs "))
	assert.Equal(t, "GEN", NormalizeAlias("Gen."))
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"JOHN", "JOHN", 0},
		{"JONN", "JOHN", 1},
		{"GEN", "GENESIS", 4},
		{"", "AB", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, editDistance(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}
