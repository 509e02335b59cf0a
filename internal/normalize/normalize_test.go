package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_CaseFoldsAndStripsPunctuation(t *testing.T) {
	n := New(Options{})

	terms := n.Terms("And God said, Let there be light: and there was light.")
	assert.Equal(t, []string{
		"and", "god", "said", "let", "there", "be", "light", "and", "there", "was", "light",
	}, terms)
}

func TestTokenize_KeepsIntraWordApostrophes(t *testing.T) {
	n := New(Options{})

	tests := []struct {
		input string
		want  []string
	}{
		{"for his name's sake", []string{"for", "his", "name's", "sake"}},
		{"the LORD’s doing", []string{"the", "lord's", "doing"}},
		{"'quoted words'", []string{"quoted", "words"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Terms(tt.input))
		})
	}
}

func TestTokenize_Positions(t *testing.T) {
	n := New(Options{})

	tokens := n.Tokenize("light of the light")
	require.Len(t, tokens, 4)
	assert.Equal(t, Token{Term: "light", Position: 0}, tokens[0])
	assert.Equal(t, Token{Term: "light", Position: 3}, tokens[3])
}

func TestTokenize_Stemming(t *testing.T) {
	plain := New(Options{})
	stemmed := New(Options{Stemming: true})

	assert.Equal(t, []string{"loved"}, plain.Terms("loved"))
	assert.Equal(t, stemmed.Terms("love"), stemmed.Terms("loved"),
		"morphological variants should normalize to the same term")
}

func TestTokenize_PureFunction(t *testing.T) {
	n := New(Options{Stemming: true})
	input := "For God so loved the world"
	assert.Equal(t, n.Terms(input), n.Terms(input))
}

func TestTokenize_Degenerate(t *testing.T) {
	n := New(Options{})
	assert.Empty(t, n.Tokenize(""))
	assert.Empty(t, n.Tokenize("...!?;:"))
	assert.Empty(t, n.Tokenize("'''"))
}
