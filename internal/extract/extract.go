// Package extract turns files into plain text for indexing.
//
// Each supported extension family has one extractor with the same contract:
// a path goes in, text or a coded error comes out. Callers branch on the
// error code:
//   - ERR_407_UNSUPPORTED_FILE: unknown or missing extension
//   - ERR_208_EXTRACTION_FAILED: the file could not be read or parsed
package extract

import (
	"context"
	"path/filepath"
	"strings"

	serrors "github.com/Aman-CERP/seroost/internal/errors"
)

// Kind is an extension family.
type Kind string

const (
	KindUnknown Kind = ""
	KindText    Kind = "text"
	KindPDF     Kind = "pdf"
	KindXML     Kind = "xml"
	KindHTML    Kind = "html"
	KindCode    Kind = "code"
)

// Func extracts the text of one file.
type Func func(ctx context.Context, path string) (string, error)

var kinds = map[string]Kind{
	"txt":   KindText,
	"pdf":   KindPDF,
	"xml":   KindXML,
	"xhtml": KindXML,
	"html":  KindHTML,
	"htm":   KindHTML,
	"rs":    KindCode,
	"py":    KindCode,
	"js":    KindCode,
	"ts":    KindCode,
	"java":  KindCode,
	"cpp":   KindCode,
	"c":     KindCode,
	"h":     KindCode,
	"go":    KindCode,
	"php":   KindCode,
	"rb":    KindCode,
	"swift": KindCode,
	"kt":    KindCode,
}

// Ext returns the lowercased extension of path without the dot.
func Ext(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// KindOf returns the extension family of path.
func KindOf(path string) Kind {
	return kinds[Ext(path)]
}

// IsSourceCode reports whether path has a source-code extension.
func IsSourceCode(path string) bool {
	return KindOf(path) == KindCode
}

// Registry dispatches a path to the extractor for its extension family.
type Registry struct {
	byKind map[Kind]Func
}

// NewRegistry returns a Registry with the built-in extractors.
func NewRegistry() *Registry {
	return &Registry{
		byKind: map[Kind]Func{
			KindText: ReadText,
			KindPDF:  ReadPDF,
			KindXML:  ReadXML,
			KindHTML: ReadHTML,
			KindCode: ReadCode,
		},
	}
}

// Register replaces the extractor for a family.
func (r *Registry) Register(kind Kind, fn Func) {
	r.byKind[kind] = fn
}

// Extract returns the text of path using the extractor for its extension.
func (r *Registry) Extract(ctx context.Context, path string) (string, error) {
	ext := Ext(path)
	if ext == "" {
		return "", serrors.New(serrors.ErrCodeUnsupportedFile,
			"couldn't discern the extension: "+path, nil).
			WithDetail("path", path).
			WithDetail("reason", "no_extension")
	}

	fn, ok := r.byKind[kinds[ext]]
	if !ok {
		return "", serrors.New(serrors.ErrCodeUnsupportedFile,
			"do not know how to process file: "+path, nil).
			WithDetail("path", path).
			WithDetail("extension", ext).
			WithDetail("reason", "unknown_extension")
	}

	text, err := fn(ctx, path)
	if err != nil {
		return "", failed(path, err)
	}
	return text, nil
}

// failed wraps err as an extraction failure unless it is already coded.
func failed(path string, err error) error {
	if serrors.GetCode(err) != "" {
		return err
	}
	return serrors.New(serrors.ErrCodeExtractionFailed,
		"error processing "+string(KindOf(path))+" file: "+path, err).
		WithDetail("path", path)
}

// lowerASCII folds A-Z and leaves every other rune alone.
func lowerASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}
