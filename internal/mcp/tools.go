package mcp

// SearchInput is the argument schema of the search tool.
type SearchInput struct {
	Query string   `json:"query" jsonschema:"free-text query; it is tokenized like indexed documents"`
	Limit int      `json:"limit,omitempty" jsonschema:"maximum number of results, default 10, at most 100"`
	Scope []string `json:"scope,omitempty" jsonschema:"restrict results to documents under these directories (OR logic)"`
}

// IndexStatusInput is the argument schema of the index_status tool.
type IndexStatusInput struct{}

// IndexStatusOutput is the result of the index_status tool.
type IndexStatusOutput struct {
	IndexFile string `json:"index_file"`
	IndexPath string `json:"index_path,omitempty"`
	// State is "not_indexed", "ready" or "indexing".
	State     string `json:"state"`
	Documents int    `json:"documents"`
	Terms     int    `json:"distinct_terms"`
	SizeBytes int64  `json:"size_bytes"`
	Modified  string `json:"modified,omitempty"`
}

const (
	stateNotIndexed = "not_indexed"
	stateReady      = "ready"
	stateIndexing   = "indexing"
)
