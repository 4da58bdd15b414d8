package extract

import (
	"bufio"
	"os"
	"strings"

	"github.com/Aman-CERP/seroost/internal/tokenizer"
)

// LineMatch is a source line containing at least one query term.
type LineMatch struct {
	Line    int    `json:"line"`
	Content string `json:"content"`
}

// LineMatches returns the 1-based lines of path whose tokens include any of
// terms. Content is the line as written, without the line terminator.
func LineMatches(path string, terms []string) ([]LineMatch, error) {
	want := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		want[t] = struct{}{}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	matches := []LineMatch{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimRight(sc.Text(), "\r")
		tok := tokenizer.New(line)
		for {
			term, ok := tok.Next()
			if !ok {
				break
			}
			if _, hit := want[term]; hit {
				matches = append(matches, LineMatch{Line: n, Content: line})
				break
			}
		}
	}
	return matches, sc.Err()
}
