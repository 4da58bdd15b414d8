package mcp

import (
	"fmt"
	"strings"

	"github.com/Aman-CERP/seroost/internal/output"
)

// FormatSearchResults renders results as markdown for clients that only
// show text content.
func FormatSearchResults(doc output.JSONResults) string {
	if len(doc.Results) == 0 {
		return fmt.Sprintf("No results found for \"%s\"", doc.Query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Search Results for \"%s\"\n\n", doc.Query)
	fmt.Fprintf(&sb, "Found %d result", len(doc.Results))
	if len(doc.Results) != 1 {
		sb.WriteString("s")
	}
	sb.WriteString("\n\n")

	for _, r := range doc.Results {
		fmt.Fprintf(&sb, "### %d. %s\n\n", r.Rank, r.Path)
		fmt.Fprintf(&sb, "**Score:** %.5f\n", r.Score)
		if len(r.LineMatches) > 0 {
			sb.WriteString("\n")
			for _, m := range r.LineMatches {
				fmt.Fprintf(&sb, "- L%d: `%s`\n", m.Line, strings.TrimSpace(m.Content))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
