package search

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"

	"github.com/jmhobbs/concord/internal/errors"
	"github.com/jmhobbs/concord/internal/index"
)

// bleveDoc is the shape indexed per verse. Only the text is searchable;
// the ordinal travels in the document ID.
type bleveDoc struct {
	Text string `json:"text"`
}

// BleveSearcher is an alternative backend built on bleve's in-memory
// index. It exists for ranking parity checks against the postings
// engine and as an escape hatch when bleve's analyzers are wanted.
type BleveSearcher struct {
	bidx bleve.Index
}

// NewBleveSearcher builds an in-memory bleve index over every verse in
// idx. The build cost is paid once up front; searches after that are
// read-only.
func NewBleveSearcher(idx *index.Index) (*BleveSearcher, error) {
	mapping := bleve.NewIndexMapping()
	bidx, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInternal, "create bleve index", err)
	}

	batch := bidx.NewBatch()
	for ordinal := 0; ordinal < idx.VerseCount(); ordinal++ {
		doc := bleveDoc{Text: idx.Verse(ordinal).Text}
		if err := batch.Index(strconv.Itoa(ordinal), doc); err != nil {
			return nil, errors.New(errors.ErrCodeInternal, "index verse", err)
		}
	}
	if err := bidx.Batch(batch); err != nil {
		return nil, errors.New(errors.ErrCodeInternal, "commit bleve batch", err)
	}

	slog.Debug("bleve_index_built",
		slog.String("translation", idx.Translation()),
		slog.Int("verses", idx.VerseCount()))
	return &BleveSearcher{bidx: bidx}, nil
}

// Search runs a match query over the verse text and maps bleve's hits
// back to verse ordinals.
func (s *BleveSearcher) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New(errors.ErrCodeEmptyQuery, "search query is empty", nil)
	}
	if limit <= 0 {
		return []Hit{}, nil
	}

	mq := bleve.NewMatchQuery(query)
	mq.SetField("text")
	req := bleve.NewSearchRequestOptions(mq, limit, 0, false)

	res, err := s.bidx.SearchInContext(ctx, req)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInternal, "bleve search", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		ordinal, err := strconv.Atoi(h.ID)
		if err != nil {
			continue
		}
		hits = append(hits, Hit{Ordinal: ordinal, Score: h.Score})
	}
	return hits, nil
}

// Close releases the in-memory index.
func (s *BleveSearcher) Close() error {
	return s.bidx.Close()
}

var _ Searcher = (*BleveSearcher)(nil)
