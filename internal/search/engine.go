// Package search ranks indexed documents against a free-text query with
// classic TF-IDF.
//
// For each document d and each query term t present in d:
//
//	tf(t, d) = count(t, d) / total terms in d
//	idf(t)   = ln(N / df(t))
//	score(d) = Σ tf(t, d) · idf(t)
//
// where N is the number of indexed documents and df(t) the number of
// documents containing t. Query terms are summed as written, so a term
// repeated in the query counts once per occurrence.
package search

import (
	"context"
	"errors"
	"log/slog"
	"time"

	serrors "github.com/Aman-CERP/seroost/internal/errors"
	"github.com/Aman-CERP/seroost/internal/metrics"
	"github.com/Aman-CERP/seroost/internal/store"
	"github.com/Aman-CERP/seroost/internal/tokenizer"
)

// IndexSource supplies the index a search runs against.
type IndexSource interface {
	Load() (store.Index, error)
}

// FileSource loads the index file at Path on every call.
type FileSource struct {
	Path string
}

// Load implements IndexSource.
func (s FileSource) Load() (store.Index, error) {
	return store.Load(s.Path)
}

// StaticSource serves an in-memory index.
type StaticSource store.Index

// Load implements IndexSource.
func (s StaticSource) Load() (store.Index, error) {
	return store.Index(s), nil
}

// Engine answers queries against an IndexSource.
type Engine struct {
	source  IndexSource
	metrics *metrics.Metrics
}

// New creates an Engine. m may be nil.
func New(source IndexSource, m *metrics.Metrics) *Engine {
	return &Engine{source: source, metrics: m}
}

// Search tokenizes query and returns the ranked documents.
//
// The index is loaded before the query is tokenized, so a missing index
// (ERR_209_INDEX_NOT_FOUND) or a corrupt one (ERR_205_CORRUPT_INDEX) is
// reported even for a blank query. A query without terms fails with
// ERR_404_QUERY_EMPTY. An index in which nothing scores above zero
// yields an empty, non-nil slice and no error.
func (e *Engine) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	start := time.Now()

	results, err := e.search(ctx, query, opts)

	elapsed := time.Since(start)
	e.metrics.SearchServed(outcome(results, err), len(results), elapsed)
	slog.Debug("search",
		slog.String("query", query),
		slog.Int("results", len(results)),
		slog.Duration("latency", elapsed),
		slog.String("error_code", serrors.GetCode(err)))

	return results, err
}

func (e *Engine) search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	idx, err := e.source.Load()
	if err != nil {
		return nil, err
	}
	e.metrics.IndexLoaded(idx.Documents())

	terms := tokenizer.Tokens(query)
	if len(terms) == 0 {
		return nil, serrors.New(serrors.ErrCodeQueryEmpty, "No valid search terms found.", nil).
			WithDetail("query", query)
	}

	if err := ctx.Err(); err != nil {
		return nil, serrors.New(serrors.ErrCodeSearchFailed, "search cancelled", err)
	}

	return Rank(idx, terms, opts), nil
}

func outcome(results []Result, err error) string {
	switch {
	case err == nil && len(results) > 0:
		return metrics.ResultHit
	case err == nil:
		return metrics.ResultZero
	case errors.Is(err, serrors.ErrQueryEmpty):
		return metrics.ResultNoTerms
	case errors.Is(err, serrors.ErrIndexNotFound):
		return metrics.ResultNotFound
	default:
		return metrics.ResultError
	}
}
