package watcher

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// RebuildFunc is called once per debounced batch.
type RebuildFunc func(ctx context.Context, batch []FileEvent) error

// Run watches root and calls rebuild for every batch of changes until ctx is
// cancelled, which is not an error. Batches arriving while a rebuild is in
// progress are queued. A failing rebuild is logged and watching continues.
func Run(ctx context.Context, root string, opts Options, rebuild RebuildFunc) error {
	w, err := New(opts)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := w.Start(gctx, root)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case err, ok := <-w.Errors():
				if !ok {
					return nil
				}
				slog.Warn("watcher error", slog.String("error", err.Error()))
			case batch, ok := <-w.Events():
				if !ok {
					return nil
				}
				slog.Info("changes detected", slog.Int("paths", len(batch)))
				if err := rebuild(gctx, batch); err != nil {
					if gctx.Err() != nil {
						return nil
					}
					slog.Error("rebuild failed", slog.String("error", err.Error()))
				}
			}
		}
	})

	err = g.Wait()
	_ = w.Stop()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
