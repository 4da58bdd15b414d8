package ui

import (
	"fmt"
	"io"
	"time"

	json "github.com/goccy/go-json"
)

// StatusInfo describes the persisted index.
type StatusInfo struct {
	IndexFile string    `json:"index_file"`
	IndexPath string    `json:"index_path,omitempty"`
	Exists    bool      `json:"exists"`
	Documents int       `json:"documents"`
	Terms     int       `json:"distinct_terms"`
	Size      int64     `json:"size_bytes"`
	ModTime   time.Time `json:"modified,omitempty"`
	Locked    bool      `json:"locked"`
}

// StatusRenderer displays index status.
type StatusRenderer struct {
	out    io.Writer
	styles Styles
}

// NewStatusRenderer creates a status renderer.
func NewStatusRenderer(out io.Writer, noColor bool) *StatusRenderer {
	return &StatusRenderer{
		out:    out,
		styles: GetStyles(noColor),
	}
}

// Render displays status info to terminal.
func (r *StatusRenderer) Render(info StatusInfo) error {
	_, _ = fmt.Fprintf(r.out, "%s\n\n", r.styles.Header.Render("Index Status"))

	_, _ = fmt.Fprintf(r.out, "  Index file:   %s\n", info.IndexFile)
	if info.IndexPath != "" {
		_, _ = fmt.Fprintf(r.out, "  Indexed dir:  %s\n", info.IndexPath)
	}

	if !info.Exists {
		_, _ = fmt.Fprintf(r.out, "  State:        %s\n", r.styles.Warning.Render("not indexed"))
		_, _ = fmt.Fprintf(r.out, "\n  %s\n", r.styles.Label.Render("Run 'seroost index' to build the index."))
		return nil
	}

	_, _ = fmt.Fprintf(r.out, "  State:        %s\n", r.renderState(info))
	_, _ = fmt.Fprintf(r.out, "  Documents:    %d\n", info.Documents)
	_, _ = fmt.Fprintf(r.out, "  Terms:        %d\n", info.Terms)
	_, _ = fmt.Fprintf(r.out, "  Size:         %s\n", FormatBytes(info.Size))
	if !info.ModTime.IsZero() {
		_, _ = fmt.Fprintf(r.out, "  Last indexed: %s\n", formatTime(info.ModTime))
	}
	return nil
}

// RenderJSON outputs status as JSON.
func (r *StatusRenderer) RenderJSON(info StatusInfo) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(info)
}

func (r *StatusRenderer) renderState(info StatusInfo) string {
	if info.Locked {
		return r.styles.Warning.Render("indexing in progress")
	}
	return r.styles.Success.Render("ready")
}

// formatTime formats a time relative to now.
func formatTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute") + " ago"
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour") + " ago"
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day") + " ago"
	default:
		return t.Format("2006-01-02 15:04")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// FormatBytes formats bytes to human-readable format.
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
