// Package index builds a term-frequency index from a directory tree.
//
// A run is three stages joined by two unbounded queues:
//
//	walker → paths → N content workers → documents → aggregator
//
// The walker and aggregator are single goroutines; the workers run in an
// errgroup. Only the aggregator touches the index while the run is live.
package index

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	serrors "github.com/Aman-CERP/seroost/internal/errors"
	"github.com/Aman-CERP/seroost/internal/extract"
	"github.com/Aman-CERP/seroost/internal/metrics"
	"github.com/Aman-CERP/seroost/internal/queue"
	"github.com/Aman-CERP/seroost/internal/scanner"
	"github.com/Aman-CERP/seroost/internal/store"
	"github.com/Aman-CERP/seroost/internal/tokenizer"
	"github.com/Aman-CERP/seroost/internal/ui"
)

// DefaultWorkers is used when the CPU count is unavailable.
const DefaultWorkers = 2

// Options configures a Pipeline.
type Options struct {
	// Workers is the content worker count. Zero means runtime.NumCPU().
	Workers int

	// MaxFileSize is the per-file ceiling in bytes, compared as-is against
	// the file size: a file is skipped only when it is strictly larger.
	// Configured runs always pass a positive value; the config and CLI reject
	// anything else. Leaving it zero is for programmatic callers only and
	// means no ceiling.
	MaxFileSize int64

	// Registry extracts text from files. Nil uses extract.NewRegistry().
	Registry *extract.Registry

	// Renderer receives progress and skip events. Nil discards them.
	Renderer ui.Renderer

	// Metrics records pipeline counters. Nil disables them.
	Metrics *metrics.Metrics
}

// Document is one file's extracted text on its way to the aggregator.
type Document struct {
	Path string
	Text string
}

// Stats summarizes a run.
type Stats struct {
	Discovered         int
	Indexed            int
	SkippedTooLarge    int
	SkippedUnsupported int
	SkippedFailed      int
	SkippedDirs        int
	Terms              int
	Duration           time.Duration
}

// Skipped is the number of discovered files left out of the index.
func (s Stats) Skipped() int {
	return s.SkippedTooLarge + s.SkippedUnsupported + s.SkippedFailed
}

// Pipeline runs indexing passes. A Pipeline may be reused; runs do not
// share state.
type Pipeline struct {
	workers     int
	maxFileSize int64
	registry    *extract.Registry
	renderer    ui.Renderer
	metrics     *metrics.Metrics
}

// NewPipeline creates a Pipeline.
func NewPipeline(opts Options) *Pipeline {
	p := &Pipeline{
		workers:     opts.Workers,
		maxFileSize: opts.MaxFileSize,
		registry:    opts.Registry,
		renderer:    opts.Renderer,
		metrics:     opts.Metrics,
	}
	if p.workers <= 0 {
		p.workers = runtime.NumCPU()
	}
	if p.workers <= 0 {
		p.workers = DefaultWorkers
	}
	if p.registry == nil {
		p.registry = extract.NewRegistry()
	}
	if p.renderer == nil {
		p.renderer = ui.Discard
	}
	return p
}

// Workers returns the resolved worker count.
func (p *Pipeline) Workers() int {
	return p.workers
}

// run holds the counters of a single pass.
type run struct {
	discovered  atomic.Int64
	processed   atomic.Int64
	indexed     atomic.Int64
	tooLarge    atomic.Int64
	unsupported atomic.Int64
	failed      atomic.Int64
	walkDone    atomic.Bool
}

func (r *run) stage() ui.Stage {
	if r.walkDone.Load() {
		return ui.StageIndexing
	}
	return ui.StageScanning
}

type walkResult struct {
	stats scanner.Stats
	err   error
}

// Run indexes every regular file below root and returns the new index.
//
// The context only aborts the run early. A cancelled run still shuts the
// stages down in order, but its partial index is discarded and an error is
// returned, so nothing incomplete is ever persisted.
func (p *Pipeline) Run(ctx context.Context, root string) (store.Index, Stats, error) {
	start := time.Now()
	r := &run{}

	walker := scanner.New(scanner.Options{
		OnFile: func(string) { r.discovered.Add(1) },
		OnDirError: func(path string, err error) {
			p.metrics.FileSkipped(metrics.ReasonUnreadable)
			p.renderer.AddError(ui.ErrorEvent{File: path, Err: err, IsWarn: true})
		},
	})

	paths := queue.New[string](ctx)
	docs := queue.New[Document](ctx)

	walked := make(chan walkResult, 1)
	go func() {
		st, err := walker.Walk(ctx, root, paths.In())
		r.walkDone.Store(true)
		walked <- walkResult{stats: st, err: err}
	}()

	aggregated := make(chan store.Index, 1)
	go func() {
		aggregated <- p.aggregate(docs.Out())
	}()

	var g errgroup.Group
	for i := 0; i < p.workers; i++ {
		g.Go(func() error {
			p.work(ctx, r, paths.Out(), docs.In())
			return nil
		})
	}

	// Shutdown order: walker, path queue, workers, document queue, aggregator.
	walk := <-walked
	paths.Close()
	_ = g.Wait()
	docs.Close()
	idx := <-aggregated

	stats := Stats{
		Discovered:         int(r.discovered.Load()),
		Indexed:            len(idx),
		SkippedTooLarge:    int(r.tooLarge.Load()),
		SkippedUnsupported: int(r.unsupported.Load()),
		SkippedFailed:      int(r.failed.Load()),
		SkippedDirs:        walk.stats.SkippedDirs,
		Terms:              idx.DistinctTerms(),
		Duration:           time.Since(start),
	}

	if err := ctx.Err(); err != nil {
		p.metrics.IndexRun("cancelled", 0, stats.Duration)
		return nil, stats, serrors.New(serrors.ErrCodeIndexFailed, "indexing cancelled", err)
	}
	if walk.err != nil {
		p.metrics.IndexRun("error", 0, stats.Duration)
		var se *serrors.SeroostError
		if errors.As(walk.err, &se) {
			return nil, stats, walk.err
		}
		return nil, stats, serrors.New(serrors.ErrCodeIndexFailed, "failed to walk "+root, walk.err)
	}

	p.metrics.IndexRun("ok", stats.Indexed, stats.Duration)
	return idx, stats, nil
}

// work is one content worker. It drains in until the queue is closed, even
// after cancellation, so the walker never blocks.
func (p *Pipeline) work(ctx context.Context, r *run, in <-chan string, out chan<- Document) {
	for path := range in {
		if ctx.Err() != nil {
			continue
		}

		text, err := p.read(ctx, path)
		processed := int(r.processed.Add(1))
		if err != nil {
			p.skip(r, path, err)
			p.renderer.UpdateProgress(ui.ProgressEvent{
				Stage:   r.stage(),
				Current: processed,
				Total:   int(r.discovered.Load()),
			})
			continue
		}

		out <- Document{Path: path, Text: text}
		r.indexed.Add(1)
		p.renderer.UpdateProgress(ui.ProgressEvent{
			Stage:       r.stage(),
			Current:     processed,
			Total:       int(r.discovered.Load()),
			CurrentFile: path,
		})
	}
}

// read applies the size ceiling and extracts the text of path.
func (p *Pipeline) read(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", serrors.New(serrors.ErrCodeExtractionFailed, "cannot stat file", err).
			WithDetail("path", path)
	}
	if p.maxFileSize > 0 && info.Size() > p.maxFileSize {
		return "", serrors.New(serrors.ErrCodeFileTooLarge, "file exceeds size limit", nil).
			WithDetail("path", path).
			WithDetail("size", strconv.FormatInt(info.Size(), 10)).
			WithDetail("limit", strconv.FormatInt(p.maxFileSize, 10))
	}
	return p.registry.Extract(ctx, path)
}

// skip records a file left out of the index. Skips are diagnostics, never
// errors of the run.
func (p *Pipeline) skip(r *run, path string, err error) {
	reason := metrics.ReasonFailed
	switch serrors.GetCode(err) {
	case serrors.ErrCodeFileTooLarge:
		reason = metrics.ReasonTooLarge
		r.tooLarge.Add(1)
	case serrors.ErrCodeUnsupportedFile:
		reason = metrics.ReasonUnsupported
		r.unsupported.Add(1)
	default:
		r.failed.Add(1)
	}

	attrs := []any{slog.String("path", path), slog.String("reason", reason)}
	for k, v := range serrors.FormatForLog(err) {
		attrs = append(attrs, slog.Any(k, v))
	}
	slog.Debug("skipping file", attrs...)

	p.metrics.FileSkipped(reason)
	p.renderer.AddError(ui.ErrorEvent{File: path, Err: err, IsWarn: true})
}

// aggregate is the single writer of the index. It returns once docs is
// closed and drained.
func (p *Pipeline) aggregate(docs <-chan Document) store.Index {
	idx := make(store.Index)
	for doc := range docs {
		idx[doc.Path] = Frequencies(doc.Text)
		p.metrics.DocumentIndexed()
	}
	return idx
}

// Frequencies counts the terms of text.
func Frequencies(text string) store.TermFreq {
	tf := make(store.TermFreq)
	tok := tokenizer.New(text)
	for {
		term, ok := tok.Next()
		if !ok {
			return tf
		}
		tf[term]++
	}
}
