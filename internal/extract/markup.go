package extract

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ReadXML returns the character data of an XML document, each run followed
// by a space and lowercased (ASCII). Whitespace-only runs are dropped.
// A malformed document is an error.
func ReadXML(_ context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		cd, ok := tok.(xml.CharData)
		if !ok || len(strings.TrimSpace(string(cd))) == 0 {
			continue
		}
		sb.WriteString(lowerASCII(string(cd)))
		sb.WriteByte(' ')
	}
	return sb.String(), nil
}

// ReadHTML returns the text nodes below <body>, each followed by a space.
// Script and style contents are skipped.
func ReadHTML(_ context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return "", err
	}

	body := findElement(doc, atom.Body)
	if body == nil {
		return "", nil
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.TextNode:
				sb.WriteString(c.Data)
				sb.WriteByte(' ')
			case c.Type == html.ElementNode && (c.DataAtom == atom.Script || c.DataAtom == atom.Style):
			default:
				walk(c)
			}
		}
	}
	walk(body)
	return sb.String(), nil
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
