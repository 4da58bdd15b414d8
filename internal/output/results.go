package output

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"

	serrors "github.com/Aman-CERP/seroost/internal/errors"
	"github.com/Aman-CERP/seroost/internal/extract"
	"github.com/Aman-CERP/seroost/internal/search"
)

// Terminal colors (ANSI 256).
const (
	colorGreen  = "10"
	colorBlue   = "12"
	colorCyan   = "14"
	colorYellow = "11"
	colorRed    = "9"
	colorWhite  = "15"
	colorBgBlue = "4"
)

// ruleWidth is the width of the separator around the result list.
const ruleWidth = 60

// NoMatches is printed when nothing scores above zero.
const NoMatches = "No matching documents found."

type textStyles struct {
	header   lipgloss.Style
	query    lipgloss.Style
	rule     lipgloss.Style
	rank     lipgloss.Style
	filename lipgloss.Style
	score    lipgloss.Style
	empty    lipgloss.Style
}

func newTextStyles(w io.Writer, color bool) textStyles {
	r := lipgloss.NewRenderer(w)
	if !color {
		plain := r.NewStyle()
		return textStyles{plain, plain, plain, plain, plain, plain, plain}
	}
	return textStyles{
		header:   r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorGreen)),
		query:    r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorWhite)).Background(lipgloss.Color(colorBgBlue)),
		rule:     r.NewStyle().Foreground(lipgloss.Color(colorCyan)),
		rank:     r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorYellow)),
		filename: r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorGreen)),
		score:    r.NewStyle().Foreground(lipgloss.Color(colorBlue)),
		empty:    r.NewStyle().Foreground(lipgloss.Color(colorYellow)),
	}
}

// RenderText writes the human-readable result list:
//
//	Search results for: <query>
//	════════…
//	1. /docs/rust.txt (Score: 0.23105)
//	════════…
func RenderText(w io.Writer, query string, results []search.Result, color bool) error {
	s := newTextStyles(w, color)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", s.header.Render("Search results for:"), s.query.Render(query))

	if len(results) == 0 {
		sb.WriteString(s.empty.Render(NoMatches))
		sb.WriteByte('\n')
		_, err := io.WriteString(w, sb.String())
		return err
	}

	rule := s.rule.Render(strings.Repeat("═", ruleWidth))
	sb.WriteString(rule)
	sb.WriteByte('\n')
	for i, r := range results {
		dir, file := filepath.Split(r.Path)
		fmt.Fprintf(&sb, "%s %s%s (%s)\n",
			s.rank.Render(fmt.Sprintf("%d.", i+1)),
			dir,
			s.filename.Render(file),
			s.score.Render(fmt.Sprintf("Score: %.5f", r.Score)))
	}
	sb.WriteString(rule)
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())
	return err
}

// LineFunc returns the matching lines reported for a result.
type LineFunc func(path string) []extract.LineMatch

// CodeLines reports the lines of source-code files that contain any of
// terms. Other files, and files that cannot be read, report none.
func CodeLines(terms []string) LineFunc {
	return func(path string) []extract.LineMatch {
		if !extract.IsSourceCode(path) {
			return []extract.LineMatch{}
		}
		matches, err := extract.LineMatches(path, terms)
		if err != nil {
			return []extract.LineMatch{}
		}
		return matches
	}
}

// JSONResult is one entry of the JSON result list.
type JSONResult struct {
	Rank        int                 `json:"rank"`
	Path        string              `json:"path"`
	Score       float64             `json:"score"`
	LineMatches []extract.LineMatch `json:"line_matches"`
}

// JSONResults is the machine-readable result document.
type JSONResults struct {
	Query   string       `json:"query"`
	Results []JSONResult `json:"results"`
}

// BuildJSON converts ranked results to their JSON form. Scores are rounded
// to five decimals. lines may be nil.
func BuildJSON(query string, results []search.Result, lines LineFunc) JSONResults {
	doc := JSONResults{Query: query, Results: make([]JSONResult, 0, len(results))}
	for i, r := range results {
		matches := []extract.LineMatch{}
		if lines != nil {
			if m := lines(r.Path); m != nil {
				matches = m
			}
		}
		doc.Results = append(doc.Results, JSONResult{
			Rank:        i + 1,
			Path:        r.Path,
			Score:       roundScore(r.Score),
			LineMatches: matches,
		})
	}
	return doc
}

// RenderJSON writes the JSON result document, indented by two spaces.
func RenderJSON(w io.Writer, query string, results []search.Result, lines LineFunc) error {
	data, err := json.MarshalIndent(BuildJSON(query, results, lines), "", "  ")
	if err != nil {
		return serrors.New(serrors.ErrCodeInternal, "failed to encode results", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// RenderJSONError writes err as a JSON object whose "error" key carries the
// message.
func RenderJSONError(w io.Writer, err error) error {
	data, jerr := serrors.FormatJSON(err)
	if jerr != nil {
		return jerr
	}
	data = append(data, '\n')
	_, werr := w.Write(data)
	return werr
}

// RenderTextError writes the one-line message for an expected search
// outcome such as a missing index or a query without terms.
func RenderTextError(w io.Writer, err error, color bool) error {
	msg := err.Error()
	var se *serrors.SeroostError
	if errors.As(err, &se) {
		msg = se.Message
	}

	notFound := serrors.GetCode(err) == serrors.ErrCodeIndexNotFound
	if notFound {
		msg = "Error: " + msg
	}

	style := lipgloss.NewRenderer(w).NewStyle()
	if color {
		if notFound {
			style = style.Bold(true).Foreground(lipgloss.Color(colorRed))
		} else {
			style = style.Foreground(lipgloss.Color(colorYellow))
		}
	}

	_, werr := fmt.Fprintln(w, style.Render(msg))
	return werr
}

func roundScore(s float64) float64 {
	return math.Round(s*1e5) / 1e5
}
