package index

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/Aman-CERP/seroost/internal/errors"
	"github.com/Aman-CERP/seroost/internal/extract"
	"github.com/Aman-CERP/seroost/internal/metrics"
	"github.com/Aman-CERP/seroost/internal/store"
	"github.com/Aman-CERP/seroost/internal/ui"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// recorder is a ui.Renderer that keeps every event.
type recorder struct {
	mu       sync.Mutex
	progress []ui.ProgressEvent
	skips    []ui.ErrorEvent
}

func (r *recorder) Start(context.Context) error { return nil }
func (r *recorder) Complete(ui.CompletionStats) {}
func (r *recorder) Stop() error { return nil }

func (r *recorder) UpdateProgress(e ui.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, e)
}

func (r *recorder) AddError(e ui.ErrorEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skips = append(r.skips, e)
}

func (r *recorder) files() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.progress {
		if e.CurrentFile != "" {
			out = append(out, e.CurrentFile)
		}
	}
	return out
}

func TestFrequencies(t *testing.T) {
	tf := Frequencies("Rust is great, rust IS fast")

	assert.Equal(t, store.TermFreq{"rust": 2, "is": 2, "great": 1, ",": 1, "fast": 1}, tf)
	assert.Equal(t, 7, tf.Total())
}

func TestFrequencies_Empty(t *testing.T) {
	tf := Frequencies("  \n\t")

	assert.NotNil(t, tf)
	assert.Empty(t, tf)
}

func TestNewPipeline_Workers(t *testing.T) {
	assert.Equal(t, 3, NewPipeline(Options{Workers: 3}).Workers())
	assert.GreaterOrEqual(t, NewPipeline(Options{}).Workers(), 1)
}

func TestPipeline_Run_RustGo(t *testing.T) {
	// Given: the two-document corpus
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "rust.txt"), "Rust is great")
	writeFile(t, filepath.Join(root, "go.txt"), "Go is fine")

	// When: indexing
	idx, stats, err := NewPipeline(Options{Workers: 2}).Run(context.Background(), root)

	// Then: each document maps to its own term counts
	require.NoError(t, err)
	assert.Equal(t, store.Index{
		filepath.Join(root, "rust.txt"): {"rust": 1, "is": 1, "great": 1},
		filepath.Join(root, "go.txt"):   {"go": 1, "is": 1, "fine": 1},
	}, idx)
	assert.Equal(t, 2, stats.Discovered)
	assert.Equal(t, 2, stats.Indexed)
	assert.Zero(t, stats.Skipped())
	assert.Equal(t, 5, stats.Terms)
}

func TestPipeline_Run_SizeCeiling(t *testing.T) {
	// Given: one file under and one over a 16 byte ceiling
	root := t.TempDir()
	small := filepath.Join(root, "small.txt")
	big := filepath.Join(root, "big.txt")
	writeFile(t, small, "tiny")
	writeFile(t, big, strings.Repeat("large ", 10))

	rec := &recorder{}

	// When: indexing
	idx, stats, err := NewPipeline(Options{MaxFileSize: 16, Renderer: rec}).Run(context.Background(), root)

	// Then: the oversized file never becomes a key
	require.NoError(t, err)
	assert.Contains(t, idx, small)
	assert.NotContains(t, idx, big)
	assert.Equal(t, 1, stats.SkippedTooLarge)

	require.Len(t, rec.skips, 1)
	assert.Equal(t, big, rec.skips[0].File)
	assert.True(t, rec.skips[0].IsWarn)
	assert.ErrorIs(t, rec.skips[0].Err, serrors.ErrFileTooLarge)
}

func TestPipeline_Run_CeilingIsExclusive(t *testing.T) {
	// Given: a file exactly at the ceiling and one a single byte over it
	root := t.TempDir()
	atLimit := filepath.Join(root, "at.txt")
	over := filepath.Join(root, "over.txt")
	writeFile(t, atLimit, strings.Repeat("a", 16))
	writeFile(t, over, strings.Repeat("b", 17))

	// When: indexing with a 16 byte ceiling
	idx, stats, err := NewPipeline(Options{MaxFileSize: 16}).Run(context.Background(), root)

	// Then: only the strictly larger file is skipped
	require.NoError(t, err)
	assert.Contains(t, idx, atLimit)
	assert.NotContains(t, idx, over)
	assert.Equal(t, 1, stats.SkippedTooLarge)
}

func TestPipeline_Run_ZeroCeilingDisablesLimit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "big.txt"), strings.Repeat("word ", 1000))

	idx, _, err := NewPipeline(Options{}).Run(context.Background(), root)

	require.NoError(t, err)
	assert.Len(t, idx, 1)
}

func TestPipeline_Run_SkipsUnsupportedAndFailed(t *testing.T) {
	// Given: supported, unknown-extension, extension-less and broken files
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ok.txt"), "fine")
	writeFile(t, filepath.Join(root, "image.png"), "\x89PNG")
	writeFile(t, filepath.Join(root, "Makefile"), "all:")
	writeFile(t, filepath.Join(root, "bad.txt"), "\xff\xfe")

	m := metrics.New()

	// When: indexing
	idx, stats, err := NewPipeline(Options{Metrics: m}).Run(context.Background(), root)

	// Then: only the good file is indexed and the run still succeeds
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "ok.txt")}, keys(idx))
	assert.Equal(t, 4, stats.Discovered)
	assert.Equal(t, 2, stats.SkippedUnsupported)
	assert.Equal(t, 1, stats.SkippedFailed)
	assert.Equal(t, 3, stats.Skipped())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DocsIndexedTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FilesSkippedTotal.WithLabelValues(metrics.ReasonUnsupported)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FilesSkippedTotal.WithLabelValues(metrics.ReasonFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IndexRunsTotal.WithLabelValues("ok")))
}

func TestPipeline_Run_WorkerCountDoesNotChangeIndex(t *testing.T) {
	// Given: a tree with many files
	root := t.TempDir()
	for i := 0; i < 60; i++ {
		dir := filepath.Join(root, string(rune('a'+i%6)))
		content := strings.Repeat("alpha beta ", i%7+1) + "gamma " + string(rune('a'+i%26))
		writeFile(t, filepath.Join(dir, "doc"+string(rune('A'+i%26))+string(rune('0'+i/26))+".txt"), content)
	}

	// When: indexing with one worker and with eight
	one, _, err := NewPipeline(Options{Workers: 1}).Run(context.Background(), root)
	require.NoError(t, err)
	many, _, err := NewPipeline(Options{Workers: 8}).Run(context.Background(), root)
	require.NoError(t, err)

	// Then: the content is identical
	assert.Len(t, one, 60)
	assert.Equal(t, one, many)
}

func TestPipeline_Run_CustomExtractor(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "ignored")

	reg := extract.NewRegistry()
	reg.Register(extract.KindText, func(context.Context, string) (string, error) {
		return "replaced text", nil
	})

	idx, _, err := NewPipeline(Options{Registry: reg}).Run(context.Background(), root)

	require.NoError(t, err)
	assert.Equal(t, store.TermFreq{"replaced": 1, "text": 1}, idx[filepath.Join(root, "a.txt")])
}

func TestPipeline_Run_ExtractorErrorIsSkip(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "x")
	writeFile(t, filepath.Join(root, "b.txt"), "y")

	reg := extract.NewRegistry()
	reg.Register(extract.KindText, func(_ context.Context, path string) (string, error) {
		if filepath.Base(path) == "a.txt" {
			return "", errors.New("boom")
		}
		return "y", nil
	})

	idx, stats, err := NewPipeline(Options{Registry: reg}).Run(context.Background(), root)

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "b.txt")}, keys(idx))
	assert.Equal(t, 1, stats.SkippedFailed)
}

func TestPipeline_Run_ProgressReportsIndexedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, "b.txt"), "b")
	writeFile(t, filepath.Join(root, "c.bin"), "c")

	rec := &recorder{}
	_, _, err := NewPipeline(Options{Renderer: rec}).Run(context.Background(), root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{filepath.Join(root, "a.txt"), filepath.Join(root, "b.txt")}, rec.files())
	assert.Len(t, rec.progress, 3, "one progress event per processed file")
	for _, e := range rec.progress {
		assert.LessOrEqual(t, e.Current, e.Total)
	}
}

func TestPipeline_Run_EmptyTree(t *testing.T) {
	idx, stats, err := NewPipeline(Options{}).Run(context.Background(), t.TempDir())

	require.NoError(t, err)
	assert.NotNil(t, idx)
	assert.Empty(t, idx)
	assert.Zero(t, stats.Discovered)
}

func TestPipeline_Run_InvalidRoot(t *testing.T) {
	_, _, err := NewPipeline(Options{}).Run(context.Background(), filepath.Join(t.TempDir(), "missing"))

	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrInvalidPath)
}

func TestPipeline_Run_CancelledReturnsNoIndex(t *testing.T) {
	// Given: a tree and an already cancelled context
	root := t.TempDir()
	for i := 0; i < 20; i++ {
		writeFile(t, filepath.Join(root, string(rune('a'+i))+".txt"), "word")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// When: indexing
	idx, _, err := NewPipeline(Options{Workers: 4}).Run(ctx, root)

	// Then: the run fails and yields nothing to persist
	require.Error(t, err)
	assert.Nil(t, idx)
	assert.ErrorIs(t, err, context.Canceled)
}

func keys(idx store.Index) []string {
	out := make([]string, 0, len(idx))
	for k := range idx {
		out = append(out, k)
	}
	return out
}
