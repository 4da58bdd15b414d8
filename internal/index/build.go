package index

import (
	"context"
	"log/slog"

	"github.com/Aman-CERP/seroost/internal/config"
	"github.com/Aman-CERP/seroost/internal/store"
	"github.com/Aman-CERP/seroost/internal/ui"
)

// Build indexes root and atomically replaces paths.IndexFile with the
// result. The index lock is held for the whole run, so two builds against
// the same file never interleave. A failed or cancelled run leaves the
// previous index untouched.
func (p *Pipeline) Build(ctx context.Context, root string, paths config.Paths) (Stats, error) {
	lock := store.NewLock(paths.LockFile)
	if err := lock.TryLock(); err != nil {
		return Stats{}, err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			slog.Warn("failed to release index lock",
				slog.String("path", lock.Path()),
				slog.String("error", err.Error()))
		}
	}()

	slog.Info("indexing started",
		slog.String("root", root),
		slog.Int("workers", p.workers),
		slog.Int64("max_file_size", p.maxFileSize))

	idx, stats, err := p.Run(ctx, root)
	if err != nil {
		slog.Error("indexing failed", slog.String("root", root), slog.String("error", err.Error()))
		return stats, err
	}

	p.renderer.UpdateProgress(ui.ProgressEvent{
		Stage:   ui.StageSaving,
		Current: stats.Discovered,
		Total:   stats.Discovered,
		Message: "writing " + paths.IndexFile,
	})
	if err := store.Save(paths.IndexFile, idx); err != nil {
		return stats, err
	}

	slog.Info("indexing complete",
		slog.String("root", root),
		slog.String("index", paths.IndexFile),
		slog.Int("documents", stats.Indexed),
		slog.Int("skipped", stats.Skipped()),
		slog.Int("terms", stats.Terms),
		slog.Duration("duration", stats.Duration))

	return stats, nil
}

// CompletionStats converts s for a ui.Renderer.
func (s Stats) CompletionStats(indexFile string) ui.CompletionStats {
	return ui.CompletionStats{
		Documents:   s.Indexed,
		Discovered:  s.Discovered,
		Skipped:     s.Skipped(),
		SkippedDirs: s.SkippedDirs,
		Terms:       s.Terms,
		Duration:    s.Duration,
		IndexFile:   indexFile,
	}
}
