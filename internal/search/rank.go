package search

import (
	"math"
	"sort"

	"github.com/Aman-CERP/seroost/internal/store"
)

// Rank scores every document of idx against terms and returns those scoring
// above zero, best first, ties broken by path. Scope filters apply before
// the limit.
func Rank(idx store.Index, terms []string, opts SearchOptions) []Result {
	opts = opts.withDefaults()
	keep := scopeFilter(opts.Scopes)

	n := float64(idx.Documents())
	df := idx.DocumentFrequency(terms)

	results := make([]Result, 0)
	for path, tf := range idx {
		if !keep(path) {
			continue
		}
		if score := Score(tf, terms, n, df); score > 0 {
			results = append(results, Result{Path: path, Score: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Path < results[j].Path
	})

	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}

// Score is the TF-IDF score of one document. n is the corpus size and df
// the document frequency of each term. A term missing from df counts as
// appearing in one document.
func Score(tf store.TermFreq, terms []string, n float64, df map[string]int) float64 {
	total := tf.Total()
	if total == 0 {
		return 0
	}

	var score float64
	for _, term := range terms {
		count, ok := tf[term]
		if !ok {
			continue
		}
		docs := df[term]
		if docs == 0 {
			docs = 1
		}
		score += float64(count) / float64(total) * math.Log(n/float64(docs))
	}
	return score
}
