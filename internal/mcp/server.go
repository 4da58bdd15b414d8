package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aman-CERP/seroost/internal/config"
	"github.com/Aman-CERP/seroost/internal/index"
	"github.com/Aman-CERP/seroost/internal/logging"
	"github.com/Aman-CERP/seroost/internal/metrics"
	"github.com/Aman-CERP/seroost/internal/output"
	"github.com/Aman-CERP/seroost/internal/search"
	"github.com/Aman-CERP/seroost/internal/store"
	"github.com/Aman-CERP/seroost/internal/tokenizer"
	"github.com/Aman-CERP/seroost/pkg/version"
)

// ServerName is reported to clients during initialization.
const ServerName = "seroost"

// Server exposes search and index_status tools over MCP.
// The index file is re-read when it changes, so a concurrent
// `seroost index` is picked up without a restart.
type Server struct {
	mcp     *mcp.Server
	engine  *search.Engine
	cfg     *config.Config
	paths   config.Paths
	cache   *resultCache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewServer creates a server for the index in paths. m may be nil.
func NewServer(cfg *config.Config, paths config.Paths, m *metrics.Metrics) (*Server, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	cache, err := newResultCache(cfg.Search.CacheSize)
	if err != nil {
		return nil, err
	}

	s := &Server{
		engine:  search.New(search.FileSource{Path: paths.IndexFile}, m),
		cfg:     cfg,
		paths:   paths,
		cache:   cache,
		metrics: m,
		logger:  logging.WithComponent("mcp"),
	}

	s.mcp = mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: version.Version,
	}, nil)
	s.registerTools()

	return s, nil
}

// MCPServer returns the underlying SDK server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search",
		Description: "Rank indexed documents against a free-text query by TF-IDF. Returns paths, scores and, for source files, the matching lines.",
	}, s.searchHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "index_status",
		Description: "Report whether the index exists, how many documents and distinct terms it holds, and whether a rebuild is running.",
	}, s.indexStatusHandler)

	s.logger.Debug("MCP tools registered", slog.Int("count", 2))
}

func (s *Server) searchHandler(ctx context.Context, _ *mcp.CallToolRequest, in SearchInput) (
	*mcp.CallToolResult,
	output.JSONResults,
	error,
) {
	doc, err := s.Search(ctx, in)
	if err != nil {
		return nil, output.JSONResults{}, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatSearchResults(doc)}},
	}, doc, nil
}

func (s *Server) indexStatusHandler(_ context.Context, _ *mcp.CallToolRequest, _ IndexStatusInput) (
	*mcp.CallToolResult,
	IndexStatusOutput,
	error,
) {
	out, err := s.IndexStatus()
	if err != nil {
		return nil, IndexStatusOutput{}, err
	}
	return nil, out, nil
}

// Search runs a query, serving repeated queries from the result cache
// while the index file is unchanged.
func (s *Server) Search(ctx context.Context, in SearchInput) (output.JSONResults, error) {
	requestID := generateRequestID()
	start := time.Now()

	if strings.TrimSpace(in.Query) == "" {
		return output.JSONResults{}, NewInvalidParamsError("query parameter is required")
	}

	limit := in.Limit
	if limit <= 0 {
		limit = s.cfg.Search.Limit
	}
	opts := search.SearchOptions{Limit: limit, Scopes: in.Scope}
	terms := tokenizer.Tokens(in.Query)

	var (
		key       cacheKey
		cacheable bool
	)
	if len(terms) > 0 {
		if info, err := store.Stat(s.paths.IndexFile); err == nil {
			key, cacheable = keyFor(info, terms, opts), s.cache != nil
		}
	}

	var results []search.Result
	if cached, ok := s.cache.get(key); cacheable && ok {
		s.metrics.CacheHit()
		results = cached
	} else {
		if cacheable {
			s.metrics.CacheMiss()
		}
		var err error
		results, err = s.engine.Search(ctx, in.Query, opts)
		if err != nil {
			s.logger.Info("search failed",
				slog.String("request_id", requestID),
				slog.String("query", in.Query),
				slog.String("error", err.Error()))
			return output.JSONResults{}, MapError(err)
		}
		if cacheable {
			s.cache.add(key, results)
		}
	}

	s.logger.Info("search completed",
		slog.String("request_id", requestID),
		slog.String("query", in.Query),
		slog.Int("result_count", len(results)),
		slog.Duration("duration", time.Since(start)))

	return output.BuildJSON(in.Query, results, output.CodeLines(terms)), nil
}

// IndexStatus reports on the index file.
func (s *Server) IndexStatus() (IndexStatusOutput, error) {
	info, err := index.Status(s.paths, s.cfg.IndexPath)
	if err != nil {
		return IndexStatusOutput{}, MapError(err)
	}

	out := IndexStatusOutput{
		IndexFile: info.IndexFile,
		IndexPath: info.IndexPath,
		State:     stateNotIndexed,
		Documents: info.Documents,
		Terms:     info.Terms,
		SizeBytes: info.Size,
	}
	switch {
	case info.Locked:
		out.State = stateIndexing
	case info.Exists:
		out.State = stateReady
	}
	if !info.ModTime.IsZero() {
		out.Modified = info.ModTime.UTC().Format(time.RFC3339)
	}
	return out, nil
}

// Serve runs the server on stdio until ctx is cancelled or the client
// disconnects.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting MCP server",
		slog.String("transport", "stdio"),
		slog.String("index_file", s.paths.IndexFile))

	err := s.mcp.Run(ctx, &mcp.StdioTransport{})
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("MCP server stopped with error", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("MCP server stopped")
	return nil
}

// generateRequestID creates a short ID for log correlation.
func generateRequestID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
