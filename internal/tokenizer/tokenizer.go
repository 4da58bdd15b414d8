// Package tokenizer splits plain text into normalized search terms.
//
// A term is one of:
//   - an alphabetic rune followed by any run of alphanumeric runes, ASCII letters lowercased
//   - a run of numeric runes
//   - any other single non-space character
//
// Alphabetic covers letters, letter numerals (Nl) and Other_Alphabetic marks
// such as Indic vowel signs. Numeric covers every number category (Nd, Nl, No).
// Non-ASCII letters are kept as written; only A-Z are folded.
package tokenizer

import (
	"unicode"
	"unicode/utf8"
)

// Tokenizer is a lazy, single-pass cursor over its input. A consumed
// Tokenizer cannot be rewound; construct a new one over the same text instead.
type Tokenizer struct {
	text string
	pos  int

	spanStart int
	spanEnd   int
}

// New returns a Tokenizer positioned at the start of text.
func New(text string) *Tokenizer {
	return &Tokenizer{text: text}
}

// Next returns the next term. ok is false once the input is exhausted.
func (t *Tokenizer) Next() (term string, ok bool) {
	t.spanStart = t.pos
	t.skipSpace()

	if t.pos >= len(t.text) {
		t.spanEnd = t.pos
		return "", false
	}

	start := t.pos
	r, size := utf8.DecodeRuneInString(t.text[t.pos:])

	switch {
	case isAlphabetic(r):
		t.consume(isAlphanumeric)
		term = lowerASCII(t.text[start:t.pos])
	case unicode.IsNumber(r):
		t.consume(unicode.IsNumber)
		term = t.text[start:t.pos]
	default:
		t.pos += size
		term = t.text[start:t.pos]
	}

	t.spanEnd = t.pos
	return term, true
}

// Span reports the byte range consumed by the most recent call to Next,
// including any whitespace skipped before the term.
func (t *Tokenizer) Span() (start, end int) {
	return t.spanStart, t.spanEnd
}

// Tokens collects every term of text.
func Tokens(text string) []string {
	t := New(text)
	var out []string
	for {
		term, ok := t.Next()
		if !ok {
			return out
		}
		out = append(out, term)
	}
}

func isAlphabetic(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r) || unicode.Is(unicode.Other_Alphabetic, r)
}

func isAlphanumeric(r rune) bool {
	return isAlphabetic(r) || unicode.IsNumber(r)
}

func (t *Tokenizer) skipSpace() {
	t.consume(unicode.IsSpace)
}

func (t *Tokenizer) consume(pred func(rune) bool) {
	for t.pos < len(t.text) {
		r, size := utf8.DecodeRuneInString(t.text[t.pos:])
		if !pred(r) {
			return
		}
		t.pos += size
	}
}

// lowerASCII folds A-Z only, leaving every other rune untouched.
func lowerASCII(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if 'A' <= s[i] && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
