package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/seroost/internal/mcp"
	"github.com/Aman-CERP/seroost/internal/metrics"
)

func newServeCmd(a *app) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the index to MCP clients over stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout with two tools:

  search        rank documents against a query
  index_status  report on the index file

Stdout carries JSON-RPC only; logs go to the log file. The index file is
re-read after every rebuild, so 'seroost index --watch' can run alongside.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			m := metrics.New()
			if metricsAddr != "" {
				addr, shutdown, err := metrics.StartServer(metricsAddr, m)
				if err != nil {
					return err
				}
				defer func() { _ = shutdown(context.Background()) }()
				slog.Info("metrics server listening", slog.String("addr", addr))
			}

			srv, err := mcp.NewServer(a.cfg, a.paths, m)
			if err != nil {
				return err
			}
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")

	return cmd
}
