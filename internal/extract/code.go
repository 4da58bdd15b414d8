package extract

import (
	"context"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// grammars maps extensions to the tree-sitter grammars used to find
// identifiers. Other source extensions are indexed as raw text only.
var grammars = map[string]func() *sitter.Language{
	"go": golang.GetLanguage,
	"js": javascript.GetLanguage,
	"py": python.GetLanguage,
	"ts": typescript.GetLanguage,
}

// ReadCode returns the raw source text. For languages with a grammar, the
// parts of compound identifiers (getUserName, max_file_size) are appended
// on a trailing line so a query for "user" also reaches getUserName.
//
// The appended parts are indexed like any other text: they raise the
// document's term total and the counts of the split words, so TF-IDF scores
// of go, js, py and ts files differ from scoring the raw text alone. Files
// without a grammar, or that fail to parse, score on their raw text.
func ReadCode(ctx context.Context, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", errInvalidUTF8
	}
	text := lowerASCII(string(raw))

	lang, ok := grammars[Ext(path)]
	if !ok {
		return text, nil
	}

	// Identifiers are split on their original casing.
	parts := identifierParts(ctx, lang(), raw)
	if len(parts) == 0 {
		return text, nil
	}
	return text + "\n" + lowerASCII(strings.Join(parts, " ")), nil
}

// identifierParts parses src and returns the sub-words of every compound
// identifier. A source file that fails to parse yields nothing.
func identifierParts(ctx context.Context, lang *sitter.Language, src []byte) []string {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil || tree == nil {
		return nil
	}
	defer tree.Close()

	var parts []string
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.ChildCount() == 0 {
			if strings.HasSuffix(n.Type(), "identifier") {
				word := string(src[n.StartByte():n.EndByte()])
				if split := SplitIdentifier(word); len(split) > 1 {
					parts = append(parts, split...)
				}
			}
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			if child := n.Child(i); child != nil {
				walk(child)
			}
		}
	}
	walk(tree.RootNode())
	return parts
}

// SplitIdentifier splits snake_case and camelCase identifiers.
//
//	"getUserById"     -> ["get", "User", "By", "Id"]
//	"parseHTTPRequest" -> ["parse", "HTTP", "Request"]
//	"max_file_size"   -> ["max", "file", "size"]
func SplitIdentifier(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "_") {
		if part != "" {
			out = append(out, splitCamel(part)...)
		}
	}
	return out
}

func splitCamel(s string) []string {
	var (
		out   []string
		start int
	)
	runes := []rune(s)
	for i := 1; i < len(runes); i++ {
		r := runes[i]
		if !unicode.IsUpper(r) {
			continue
		}
		prevLower := unicode.IsLower(runes[i-1])
		nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if prevLower || (nextLower && unicode.IsUpper(runes[i-1])) {
			out = append(out, string(runes[start:i]))
			start = i
		}
	}
	return append(out, string(runes[start:]))
}
