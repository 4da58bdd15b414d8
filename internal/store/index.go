// Package store holds the term-frequency index and its on-disk form.
//
// The index is a single JSON object mapping each document path to an object
// mapping term to occurrence count:
//
//	{"/docs/rust.txt": {"rust": 1, "is": 1, "great": 1}}
//
// Saves replace the whole file atomically; there is no partial update.
package store

// TermFreq maps a term to its number of occurrences in one document.
type TermFreq map[string]int

// Total returns the number of term occurrences in the document.
func (tf TermFreq) Total() int {
	total := 0
	for _, n := range tf {
		total += n
	}
	return total
}

// Index maps a document path to its term frequencies.
type Index map[string]TermFreq

// Documents returns the number of indexed documents.
func (idx Index) Documents() int {
	return len(idx)
}

// DistinctTerms returns the number of distinct terms across all documents.
func (idx Index) DistinctTerms() int {
	seen := make(map[string]struct{})
	for _, tf := range idx {
		for term := range tf {
			seen[term] = struct{}{}
		}
	}
	return len(seen)
}

// DocumentFrequency returns how many documents contain each of terms at
// least once. Terms found in no document are absent from the result.
func (idx Index) DocumentFrequency(terms []string) map[string]int {
	df := make(map[string]int, len(terms))
	for _, term := range terms {
		if _, done := df[term]; done {
			continue
		}
		for _, tf := range idx {
			if tf[term] > 0 {
				df[term]++
			}
		}
	}
	return df
}
