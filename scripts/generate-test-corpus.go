//go:build ignore

// Package main generates a synthetic corpus for benchmarking index
// builds and search latency without shipping real translation text.
// Usage: go run scripts/generate-test-corpus.go -books 20 -output testdata/bench
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

var (
	code      = flag.String("code", "gen", "Translation code, names the output file")
	numBooks  = flag.Int("books", 20, "Number of books to generate (1-66)")
	chapters  = flag.Int("chapters", 25, "Chapters per book")
	verses    = flag.Int("verses", 30, "Verses per chapter")
	outputDir = flag.String("output", "testdata/bench", "Output directory")
	seed      = flag.Int64("seed", 42, "Random seed for reproducibility")
)

// vocabulary skews toward a few very common words so term frequencies
// resemble a real text rather than uniform noise.
var vocabulary = []string{
	"the", "the", "the", "and", "and", "of", "of", "unto", "that",
	"lord", "god", "king", "land", "people", "house", "day", "hand",
	"word", "heart", "heaven", "earth", "water", "light", "life",
	"father", "son", "city", "mountain", "river", "covenant", "voice",
	"spirit", "servant", "prophet", "bread", "wine", "fire", "stone",
	"shepherd", "flock", "vineyard", "harvest", "wisdom", "mercy",
	"righteousness", "judgment", "glory", "praise", "offering",
}

func main() {
	flag.Parse()

	if *numBooks < 1 || *numBooks > 66 {
		fmt.Fprintln(os.Stderr, "books must be between 1 and 66")
		os.Exit(1)
	}
	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	path := filepath.Join(*outputDir, *code+".dat")
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create %s: %v\n", path, err)
		os.Exit(1)
	}
	defer f.Close()

	total := 0
	for book := 1; book <= *numBooks; book++ {
		for chapter := 1; chapter <= *chapters; chapter++ {
			for verse := 1; verse <= *verses; verse++ {
				id := book*1_000_000 + chapter*1000 + verse
				fmt.Fprintf(f, "%08d %s\n", id, sentence(rng))
				total++
			}
		}
	}

	fmt.Printf("wrote %d verses to %s\n", total, path)
}

func sentence(rng *rand.Rand) string {
	n := 8 + rng.Intn(18)
	words := make([]string, n)
	for i := range words {
		words[i] = vocabulary[rng.Intn(len(vocabulary))]
	}
	return strings.Join(words, " ")
}
