package search

import "strings"

// DefaultLimit is the number of results returned when no limit is set.
const DefaultLimit = 10

// MaxLimit caps SearchOptions.Limit.
const MaxLimit = 100

// Result is one ranked document.
type Result struct {
	Path  string  `json:"path"`
	Score float64 `json:"score"`
}

// SearchOptions configures a query.
type SearchOptions struct {
	// Limit is the maximum number of results (default 10, max 100).
	Limit int

	// Scopes restricts results to documents under these directories.
	// Multiple scopes match if the path is under any of them.
	Scopes []string
}

func (o SearchOptions) withDefaults() SearchOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	return o
}

// NormalizeScope strips leading and trailing slashes.
func NormalizeScope(scope string) string {
	return strings.Trim(scope, "/")
}

// scopeFilter matches paths under any scope. Scopes end at a directory
// boundary, so "docs/api" does not match "docs/api-v2".
func scopeFilter(scopes []string) func(path string) bool {
	normalized := make([]string, 0, len(scopes))
	for _, s := range scopes {
		if n := NormalizeScope(s); n != "" {
			normalized = append(normalized, n+"/")
		}
	}
	if len(normalized) == 0 {
		return func(string) bool { return true }
	}

	return func(path string) bool {
		p := NormalizeScope(path) + "/"
		for _, scope := range normalized {
			if strings.HasPrefix(p, scope) {
				return true
			}
		}
		return false
	}
}
