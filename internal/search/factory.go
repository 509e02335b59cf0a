package search

import (
	"log/slog"

	"github.com/jmhobbs/concord/internal/errors"
	"github.com/jmhobbs/concord/internal/index"
	"github.com/jmhobbs/concord/internal/normalize"
)

// Backend selects a search implementation.
type Backend string

const (
	// BackendPostings is the default BM25 engine over the verse index.
	BackendPostings Backend = "postings"
	// BackendBleve builds an in-memory bleve index per translation.
	BackendBleve Backend = "bleve"
)

// ParseBackend validates a backend name from configuration.
func ParseBackend(name string) (Backend, error) {
	switch Backend(name) {
	case BackendPostings, BackendBleve:
		return Backend(name), nil
	case "":
		return BackendPostings, nil
	default:
		return "", errors.Newf(errors.ErrCodeConfigInvalid, "unknown search backend %q", name).
			WithDetail("valid", "postings, bleve")
	}
}

// NewSearcher constructs the configured backend over idx.
func NewSearcher(backend Backend, idx *index.Index, norm *normalize.Normalizer, params Params) (Searcher, error) {
	slog.Debug("search_backend_selected",
		slog.String("backend", string(backend)),
		slog.String("translation", idx.Translation()))

	switch backend {
	case BackendBleve:
		return NewBleveSearcher(idx)
	case BackendPostings, "":
		return NewEngine(idx, norm, params), nil
	default:
		return nil, errors.Newf(errors.ErrCodeConfigInvalid, "unknown search backend %q", backend)
	}
}
