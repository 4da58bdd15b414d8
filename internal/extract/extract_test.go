package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/Aman-CERP/seroost/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"notes.txt", KindText},
		{"NOTES.TXT", KindText},
		{"paper.pdf", KindPDF},
		{"feed.xml", KindXML},
		{"page.xhtml", KindXML},
		{"index.html", KindHTML},
		{"index.HTM", KindHTML},
		{"main.go", KindCode},
		{"lib.rs", KindCode},
		{"App.kt", KindCode},
		{"README.md", KindUnknown},
		{"Makefile", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.path))
		})
	}
	assert.True(t, IsSourceCode("/src/a.py"))
	assert.False(t, IsSourceCode("/src/a.txt"))
}

func TestRegistry_Extract_UnsupportedExtensions(t *testing.T) {
	dir := t.TempDir()
	reg := NewRegistry()

	tests := []struct {
		name   string
		file   string
		reason string
	}{
		{name: "unknown extension", file: "image.png", reason: "unknown_extension"},
		{name: "missing extension", file: "LICENSE", reason: "no_extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, "data")

			_, err := reg.Extract(context.Background(), path)

			require.Error(t, err)
			assert.ErrorIs(t, err, serrors.ErrUnsupportedFile)
			var se *serrors.SeroostError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.reason, se.Details["reason"])
		})
	}
}

func TestRegistry_Extract_FailureIsCoded(t *testing.T) {
	dir := t.TempDir()
	reg := NewRegistry()

	_, err := reg.Extract(context.Background(), filepath.Join(dir, "missing.txt"))

	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrExtractionFailed)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRegistry_Register_OverridesFamily(t *testing.T) {
	reg := NewRegistry()
	reg.Register(KindPDF, func(context.Context, string) (string, error) {
		return "stub text", nil
	})

	text, err := reg.Extract(context.Background(), "/any/file.PDF")

	require.NoError(t, err)
	assert.Equal(t, "stub text", text)
}

func TestReadText_LowercasesASCIIOnly(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "Hello WORLD Ärger")

	text, err := ReadText(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "hello world Ärger", text)
}

func TestReadText_RejectsInvalidUTF8(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bin.txt", string([]byte{0xff, 0xfe, 0x00}))

	_, err := ReadText(context.Background(), path)

	assert.Error(t, err)
}

func TestReadXML(t *testing.T) {
	dir := t.TempDir()

	t.Run("character data", func(t *testing.T) {
		path := writeFile(t, dir, "doc.xml", `<?xml version="1.0"?>
<book lang="en">
  <title>Go IN Action</title>
  <chapter>Channels &amp; Goroutines</chapter>
</book>`)

		text, err := ReadXML(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, "go in action channels & goroutines ", text)
	})

	t.Run("malformed", func(t *testing.T) {
		path := writeFile(t, dir, "bad.xml", `<a><b></a>`)

		_, err := NewRegistry().Extract(context.Background(), path)

		assert.ErrorIs(t, err, serrors.ErrExtractionFailed)
	})
}

func TestReadHTML_BodyTextOnly(t *testing.T) {
	path := writeFile(t, t.TempDir(), "page.html", `<!doctype html>
<html><head><title>Ignored Title</title><style>body{}</style></head>
<body><h1>Seroost</h1><p>Search <b>local</b> docs</p><script>var hidden = 1;</script></body></html>`)

	text, err := ReadHTML(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, []string{"Seroost", "Search", "local", "docs"}, strings.Fields(text))
	assert.NotContains(t, text, "Ignored")
	assert.NotContains(t, text, "hidden")
}

func TestReadHTML_SkipsScriptAndStyle(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "inline script",
			body: `<p>visible</p><script>const secret = "token";</script>`,
			want: []string{"visible"},
		},
		{
			name: "style inside body",
			body: `<style>.hidden { color: red }</style><p>shown</p>`,
			want: []string{"shown"},
		},
		{
			name: "script nested in markup",
			body: `<div><span>outer</span><div><script>track()</script>inner</div></div>`,
			want: []string{"outer", "inner"},
		},
		{
			name: "only script",
			body: `<script>alert(1)</script>`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a page whose body mixes text with script and style elements
			path := writeFile(t, t.TempDir(), "page.html", "<html><body>"+tt.body+"</body></html>")

			// When: extracting
			text, err := ReadHTML(context.Background(), path)

			// Then: only the visible text nodes remain
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.Fields(text))
		})
	}
}

func TestReadPDF_Malformed(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.pdf", "this is not a pdf")

	_, err := NewRegistry().Extract(context.Background(), path)

	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrExtractionFailed)
}
