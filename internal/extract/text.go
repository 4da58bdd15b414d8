package extract

import (
	"context"
	"errors"
	"os"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// ReadText returns the file contents with ASCII letters lowercased.
// Files that are not valid UTF-8 are rejected.
func ReadText(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errInvalidUTF8
	}
	return lowerASCII(string(data)), nil
}
