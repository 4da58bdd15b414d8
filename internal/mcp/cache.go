package mcp

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Aman-CERP/seroost/internal/search"
	"github.com/Aman-CERP/seroost/internal/store"
)

// cacheKey identifies a result list. The index modification time and size
// are part of the key, so a rebuild makes every older entry unreachable.
type cacheKey struct {
	modTime int64
	size    int64
	terms   string
	limit   int
	scopes  string
}

// resultCache is an LRU of ranked results. A nil cache stores nothing.
type resultCache struct {
	lru *lru.Cache[cacheKey, []search.Result]
}

func newResultCache(size int) (*resultCache, error) {
	if size <= 0 {
		return nil, nil
	}
	c, err := lru.New[cacheKey, []search.Result](size)
	if err != nil {
		return nil, err
	}
	return &resultCache{lru: c}, nil
}

func keyFor(info store.Info, terms []string, opts search.SearchOptions) cacheKey {
	return cacheKey{
		modTime: info.ModTime.UnixNano(),
		size:    info.Size,
		terms:   strings.Join(terms, " "),
		limit:   opts.Limit,
		scopes:  strings.Join(opts.Scopes, "\x00"),
	}
}

func (c *resultCache) get(k cacheKey) ([]search.Result, bool) {
	if c == nil {
		return nil, false
	}
	return c.lru.Get(k)
}

func (c *resultCache) add(k cacheKey, results []search.Result) {
	if c == nil {
		return
	}
	c.lru.Add(k, results)
}

func (c *resultCache) len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
