package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/seroost/internal/index"
	"github.com/Aman-CERP/seroost/internal/metrics"
	"github.com/Aman-CERP/seroost/internal/output"
	"github.com/Aman-CERP/seroost/internal/ui"
	"github.com/Aman-CERP/seroost/internal/watcher"
)

type indexOptions struct {
	watch       bool
	noTUI       bool
	workers     int
	metricsAddr string
}

func newIndexCmd(a *app) *cobra.Command {
	var opts indexOptions

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Index the configured directory",
		Long: `Walk the configured index path, extract text from every supported file
and replace the index file with the term frequencies.

Files larger than --max-file-size, unsupported files and files whose text
cannot be extracted are skipped and reported. An interrupted run keeps the
previous index.

Use --watch to keep rebuilding as files change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runIndex(ctx, cmd, a, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Rebuild the index whenever files change, until interrupted")
	cmd.Flags().BoolVar(&opts.noTUI, "no-tui", false, "Disable TUI mode, use plain text output")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Content workers (default from config, 0 = number of CPUs)")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. 127.0.0.1:9090")

	return cmd
}

func runIndex(ctx context.Context, cmd *cobra.Command, a *app, opts indexOptions) error {
	root, err := a.cfg.RequireIndexPath()
	if err != nil {
		return err
	}
	if opts.workers == 0 {
		opts.workers = a.cfg.Workers
	}

	var m *metrics.Metrics
	if opts.metricsAddr != "" {
		m = metrics.New()
		addr, shutdown, err := metrics.StartServer(opts.metricsAddr, m)
		if err != nil {
			return err
		}
		defer func() { _ = shutdown(context.Background()) }()
		slog.Info("metrics server listening", slog.String("addr", addr))
	}

	out := output.New(cmd.OutOrStdout(), a.color())
	out.Field("Indexing directory:", root)

	if err := buildIndex(ctx, cmd, a, root, opts.noTUI, opts.workers, m); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	out.Field("Watching for changes in:", root)
	out.Warning("Press Ctrl+C to stop.")

	wopts := watcher.Options{
		Debounce: a.cfg.Watch.Debounce,
		Ignore:   []string{a.paths.IndexFile, a.paths.LockFile},
	}
	return watcher.Run(ctx, root, wopts, func(ctx context.Context, batch []watcher.FileEvent) error {
		out.Fieldf("Changes detected:", "%d paths, rebuilding", len(batch))
		// Rebuilds always use plain output so they scroll instead of
		// taking over the screen.
		return buildIndex(ctx, cmd, a, root, true, opts.workers, m)
	})
}

// buildIndex runs one full rebuild and prints its summary.
func buildIndex(ctx context.Context, cmd *cobra.Command, a *app, root string, noTUI bool, workers int, m *metrics.Metrics) error {
	w := cmd.OutOrStdout()
	out := output.New(w, a.color())

	renderer := ui.NewRenderer(ui.NewConfig(w,
		ui.WithForcePlain(noTUI),
		ui.WithNoColor(!a.color()),
		ui.WithRootDir(root),
	))
	if err := renderer.Start(ctx); err != nil {
		slog.Warn("renderer failed to start", slog.String("error", err.Error()))
	}

	p := index.NewPipeline(index.Options{
		Workers:     workers,
		MaxFileSize: a.cfg.MaxFileSizeBytes(),
		Renderer:    renderer,
		Metrics:     m,
	})
	stats, err := p.Build(ctx, root, a.paths)
	if err == nil {
		renderer.Complete(stats.CompletionStats(a.paths.IndexFile))
	}
	_ = renderer.Stop()

	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			out.Warning("Indexing interrupted; the previous index was kept.")
		}
		return err
	}

	out.Field("Saving index to:", a.paths.IndexFile)
	out.Fieldf("Successfully indexed", "%d documents", stats.Indexed)
	return nil
}
