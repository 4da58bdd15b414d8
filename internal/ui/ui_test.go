package ui

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage_StringAndIcon(t *testing.T) {
	tests := []struct {
		stage Stage
		name  string
		icon  string
	}{
		{StageScanning, "Scanning", "SCAN"},
		{StageIndexing, "Indexing", "INDEX"},
		{StageSaving, "Saving", "SAVE"},
		{StageComplete, "Complete", "DONE"},
		{Stage(42), "Unknown", "???"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.stage.String())
			assert.Equal(t, tt.icon, tt.stage.Icon())
		})
	}
}

func TestNewRenderer_NonTTYIsPlain(t *testing.T) {
	// Given: a buffer, which is never a terminal
	buf := &bytes.Buffer{}

	// When: creating a renderer
	r := NewRenderer(NewConfig(buf))

	// Then: plain output is chosen
	_, ok := r.(*PlainRenderer)
	assert.True(t, ok)
}

func TestNewRenderer_ForcePlain(t *testing.T) {
	r := NewRenderer(NewConfig(&bytes.Buffer{}, WithForcePlain(true), WithNoColor(true), WithRootDir("/docs")))

	_, ok := r.(*PlainRenderer)
	assert.True(t, ok)
}

func TestNewTUIRenderer_RejectsNonTTY(t *testing.T) {
	_, err := NewTUIRenderer(NewConfig(&bytes.Buffer{}))

	assert.Error(t, err)
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(nil))
	assert.False(t, IsTTY(&bytes.Buffer{}))
}

func TestDetectCI(t *testing.T) {
	t.Setenv("CI", "true")

	assert.True(t, DetectCI())
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		require.NoError(t, Discard.Start(context.Background()))
		Discard.UpdateProgress(ProgressEvent{CurrentFile: "x"})
		Discard.AddError(ErrorEvent{})
		Discard.Complete(CompletionStats{})
		require.NoError(t, Discard.Stop())
	})
}

func TestProgressTracker_MonotonicCounts(t *testing.T) {
	// Given: a tracker
	p := NewProgressTracker()

	// When: events arrive out of order
	p.Update(ProgressEvent{Stage: StageIndexing, Current: 5, Total: 10, CurrentFile: "b"})
	p.Update(ProgressEvent{Stage: StageScanning, Current: 3, Total: 8})

	// Then: counts and stage only move forward
	s := p.Stats()
	assert.Equal(t, StageIndexing, s.Stage)
	assert.Equal(t, 5, s.Current)
	assert.Equal(t, 10, s.Total)
	assert.InDelta(t, 0.5, s.Progress, 1e-9)
	assert.Equal(t, "b", s.CurrentFile)
}

func TestProgressTracker_Errors(t *testing.T) {
	p := NewProgressTracker()

	p.AddError(ErrorEvent{IsWarn: true})
	p.AddError(ErrorEvent{IsWarn: true})
	p.AddError(ErrorEvent{})

	s := p.Stats()
	assert.Equal(t, 2, s.WarnCount)
	assert.Equal(t, 1, s.ErrorCount)
}

func TestProgressTracker_ProgressCapped(t *testing.T) {
	p := NewProgressTracker()

	p.Update(ProgressEvent{Current: 12, Total: 10})

	assert.Equal(t, 1.0, p.Stats().Progress)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	assert.Equal(t, "42s", formatDuration(42*time.Second))
	assert.Equal(t, "2m", formatDuration(2*time.Minute))
	assert.Equal(t, "2m 5s", formatDuration(125*time.Second))
	assert.Equal(t, "1h 1m", formatDuration(61*time.Minute))
}

func TestTruncateFilePath(t *testing.T) {
	assert.Equal(t, "a/b.txt", truncateFilePath("a/b.txt", 20))
	assert.Equal(t, ".../file.txt", truncateFilePath("/very/long/dir/file.txt", 12))
	assert.Equal(t, "...dir/file.txt", truncateFilePath("/very/long/dir/file.txt", 15))
	assert.Equal(t, "...ongname", truncateFilePath("averylongname", 10))
}

func TestIndexingModel_View(t *testing.T) {
	// Given: a model with some progress
	tracker := NewProgressTracker()
	m := newIndexingModel(tracker, "/docs")
	m.styles = NoColorStyles()
	tracker.Update(ProgressEvent{Stage: StageIndexing, Current: 1, Total: 2, CurrentFile: "/docs/a.txt"})

	// When: rendering
	view := m.View()

	// Then: header, counts and current file are shown
	assert.Contains(t, view, "seroost indexer • /docs")
	assert.Contains(t, view, "1 / 2 files")
	assert.Contains(t, view, "/docs/a.txt")

	// When: the run completes
	_, _ = m.Update(completeMsg(CompletionStats{Documents: 2, Terms: 7}))

	// Then: the summary replaces progress
	assert.Contains(t, m.View(), "Indexing Complete")
}
