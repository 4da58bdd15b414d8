package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	serrors "github.com/Aman-CERP/seroost/internal/errors"
	"github.com/Aman-CERP/seroost/internal/output"
	"github.com/Aman-CERP/seroost/internal/search"
	"github.com/Aman-CERP/seroost/internal/tokenizer"
)

type searchOptions struct {
	limit  int
	format string // "text", "json"
	scopes []string
}

func newSearchCmd(a *app) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <term>...",
		Short: "Rank indexed documents against a query",
		Long: `Rank indexed documents against a free-text query with TF-IDF.

All arguments form one query. Results with a score of zero are omitted.

Examples:
  seroost search "systems programming"
  seroost search rust safety --limit 5
  seroost search "readability" --format json
  seroost search handler --scope ~/src/api`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd, a, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of results (default from config, 10; at most 100)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().StringSliceVarP(&opts.scopes, "scope", "s", nil, "Only show documents under this directory (repeatable)")

	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, a *app, query string, opts searchOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return serrors.ValidationError(fmt.Sprintf("unknown format %q (supported: text, json)", opts.format), nil)
	}
	if opts.limit < 0 {
		return serrors.ValidationError(fmt.Sprintf("--limit must be positive, got %d", opts.limit), nil)
	}
	if opts.limit == 0 {
		opts.limit = a.cfg.Search.Limit
	}

	slog.Info("search_started", slog.String("query", query), slog.Int("limit", opts.limit))

	engine := search.New(search.FileSource{Path: a.paths.IndexFile}, nil)
	results, err := engine.Search(ctx, query, search.SearchOptions{Limit: opts.limit, Scopes: opts.scopes})

	w := cmd.OutOrStdout()
	if err != nil {
		// A missing index and a query without terms are answers, not failures.
		if !errors.Is(err, serrors.ErrIndexNotFound) && !errors.Is(err, serrors.ErrQueryEmpty) {
			return err
		}
		if opts.format == "json" {
			return output.RenderJSONError(w, err)
		}
		return output.RenderTextError(w, err, a.color())
	}

	slog.Info("search_completed", slog.String("query", query), slog.Int("results", len(results)))

	if opts.format == "json" {
		return output.RenderJSON(w, query, results, output.CodeLines(tokenizer.Tokens(query)))
	}
	return output.RenderText(w, query, results, a.color())
}
