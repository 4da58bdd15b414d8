package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/Aman-CERP/seroost/internal/errors"
	"github.com/Aman-CERP/seroost/internal/extract"
	"github.com/Aman-CERP/seroost/internal/search"
)

func TestRenderText(t *testing.T) {
	// Given: two ranked results
	buf := &bytes.Buffer{}
	results := []search.Result{
		{Path: "/docs/rust.txt", Score: 0.231049},
		{Path: "/docs/go.txt", Score: 0.1},
	}

	// When: rendering without color
	require.NoError(t, RenderText(buf, "rust", results, false))

	// Then: the exact layout is produced
	rule := strings.Repeat("═", 60)
	want := "Search results for: rust\n" +
		rule + "\n" +
		"1. /docs/rust.txt (Score: 0.23105)\n" +
		"2. /docs/go.txt (Score: 0.10000)\n" +
		rule + "\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderText_Empty(t *testing.T) {
	buf := &bytes.Buffer{}

	require.NoError(t, RenderText(buf, "is", nil, false))

	assert.Equal(t, "Search results for: is\nNo matching documents found.\n", buf.String())
}

func TestRenderText_ColorOnBufferHasNoEscapes(t *testing.T) {
	// A buffer is not a terminal, so the renderer picks the ASCII profile.
	buf := &bytes.Buffer{}

	require.NoError(t, RenderText(buf, "rust", []search.Result{{Path: "a/b.txt", Score: 1}}, true))

	assert.NotContains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "1. a/b.txt (Score: 1.00000)")
}

func TestRenderJSON(t *testing.T) {
	// Given: results and a line function
	buf := &bytes.Buffer{}
	results := []search.Result{
		{Path: "/src/main.go", Score: 0.1234567},
		{Path: "/docs/a.txt", Score: 0.05},
	}
	lines := func(path string) []extract.LineMatch {
		if path == "/src/main.go" {
			return []extract.LineMatch{{Line: 3, Content: `fmt.Println("rust")`}}
		}
		return nil
	}

	// When: rendering JSON
	require.NoError(t, RenderJSON(buf, "rust", results, lines))

	// Then: the document has ranks, rounded scores and line matches
	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "rust", doc["query"])

	rs := doc["results"].([]any)
	require.Len(t, rs, 2)
	first := rs[0].(map[string]any)
	assert.Equal(t, float64(1), first["rank"])
	assert.Equal(t, "/src/main.go", first["path"])
	assert.Equal(t, 0.12346, first["score"])
	assert.Equal(t, []any{map[string]any{"line": float64(3), "content": `fmt.Println("rust")`}}, first["line_matches"])

	second := rs[1].(map[string]any)
	assert.Equal(t, float64(2), second["rank"])
	assert.Equal(t, []any{}, second["line_matches"], "non-code results carry an empty list")
}

func TestRenderJSON_Empty(t *testing.T) {
	buf := &bytes.Buffer{}

	require.NoError(t, RenderJSON(buf, "is", []search.Result{}, nil))

	var doc JSONResults
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "is", doc.Query)
	assert.NotNil(t, doc.Results)
	assert.Empty(t, doc.Results)
	assert.Contains(t, buf.String(), `"results": []`)
}

func TestRenderJSONError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "not indexed",
			err:  serrors.New(serrors.ErrCodeIndexNotFound, "index file not found. Please run index first.", nil),
			want: "index file not found. Please run index first.",
		},
		{
			name: "no terms",
			err:  serrors.New(serrors.ErrCodeQueryEmpty, "No valid search terms found.", nil),
			want: "No valid search terms found.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}

			require.NoError(t, RenderJSONError(buf, tt.err))

			var doc map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
			assert.Equal(t, tt.want, doc["error"])
		})
	}
}

func TestRenderTextError(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, RenderTextError(buf, serrors.New(serrors.ErrCodeIndexNotFound, "index file not found. Please run index first.", nil), false))
	assert.Equal(t, "Error: index file not found. Please run index first.\n", buf.String())

	buf.Reset()
	require.NoError(t, RenderTextError(buf, serrors.New(serrors.ErrCodeQueryEmpty, "No valid search terms found.", nil), false))
	assert.Equal(t, "No valid search terms found.\n", buf.String())
}

func TestCodeLines(t *testing.T) {
	// Given: a source file and a text file with the same content
	dir := t.TempDir()
	code := filepath.Join(dir, "main.go")
	text := filepath.Join(dir, "notes.txt")
	content := "package main\n\nfunc Rust() {}\n"
	require.NoError(t, os.WriteFile(code, []byte(content), 0o644))
	require.NoError(t, os.WriteFile(text, []byte(content), 0o644))

	lines := CodeLines([]string{"rust"})

	// Then: only the source file reports lines
	assert.Equal(t, []extract.LineMatch{{Line: 3, Content: "func Rust() {}"}}, lines(code))
	assert.Empty(t, lines(text))
	assert.NotNil(t, lines(filepath.Join(dir, "missing.go")))
}

func TestRenderUsage(t *testing.T) {
	buf := &bytes.Buffer{}

	require.NoError(t, RenderUsage(buf, false))

	out := buf.String()
	for _, want := range []string{
		"SEROOST DETAILED USAGE GUIDE",
		"INSTALLATION",
		"INDEXING DOCUMENTS",
		"SEARCHING DOCUMENTS",
		"$ seroost --index-path ~/documents/samples index",
		"Successfully indexed 2 documents",
	} {
		assert.Contains(t, out, want)
	}
}

func TestWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := New(buf, false)

	w.Field("Indexing directory:", "/docs")
	w.Fieldf("Successfully indexed", "%d documents", 2)
	w.Warning("careful")
	w.Error("broken")
	w.Newline()

	assert.Equal(t, "Indexing directory: /docs\nSuccessfully indexed 2 documents\ncareful\nbroken\n\n", buf.String())
}
