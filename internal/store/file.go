package store

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/renameio"

	serrors "github.com/Aman-CERP/seroost/internal/errors"
)

// Save writes idx to path, creating parent directories as needed.
//
// The payload goes to a temporary file in the same directory which is synced
// and renamed over path. If anything fails, the previous file at path is left
// untouched.
func Save(path string, idx Index) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return serrors.New(serrors.ErrCodeFilePermission, "failed to create index directory", err).
			WithDetail("path", filepath.Dir(path))
	}

	if idx == nil {
		idx = Index{}
	}

	pf, err := renameio.TempFile("", path)
	if err != nil {
		return serrors.New(serrors.ErrCodeFilePermission, "failed to create index file", err).
			WithDetail("path", path)
	}
	defer func() { _ = pf.Cleanup() }()

	if err := pf.Chmod(0o644); err != nil {
		return serrors.Wrap(serrors.ErrCodeIndexFailed, err)
	}

	w := bufio.NewWriter(pf)
	if err := json.NewEncoder(w).Encode(idx); err != nil {
		return serrors.New(serrors.ErrCodeIndexFailed, "failed to encode index", err)
	}
	if err := w.Flush(); err != nil {
		return serrors.New(serrors.ErrCodeIndexFailed, "failed to write index", err).
			WithDetail("path", path)
	}

	if err := pf.CloseAtomicallyReplace(); err != nil {
		return serrors.New(serrors.ErrCodeIndexFailed, "failed to replace index file", err).
			WithDetail("path", path)
	}
	return nil
}

// Load reads the index at path.
//
// A missing file is ERR_209_INDEX_NOT_FOUND. Undecodable content or a
// negative count is ERR_205_CORRUPT_INDEX.
func Load(path string) (Index, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, serrors.New(serrors.ErrCodeIndexNotFound,
				"index file not found. Please run index first.", err).
				WithDetail("path", path).
				WithSuggestion("Run 'seroost index' to build the index")
		}
		return nil, serrors.New(serrors.ErrCodeFilePermission, "failed to open index file", err).
			WithDetail("path", path)
	}
	defer f.Close()

	var idx Index
	if err := json.NewDecoder(bufio.NewReader(f)).Decode(&idx); err != nil {
		return nil, corrupt(path, err)
	}
	if idx == nil {
		return nil, corrupt(path, errors.New("index is not a JSON object"))
	}

	for doc, tf := range idx {
		for term, n := range tf {
			if n < 0 {
				return nil, corrupt(path, fmt.Errorf("negative count %d for term %q in %s", n, term, doc))
			}
		}
		if tf == nil {
			idx[doc] = TermFreq{}
		}
	}
	return idx, nil
}

func corrupt(path string, cause error) error {
	return serrors.New(serrors.ErrCodeCorruptIndex, "index file is corrupt", cause).
		WithDetail("path", path).
		WithSuggestion("Run 'seroost index' to rebuild it")
}

// Info describes the index file on disk.
type Info struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Stat returns Info for the index at path, or ERR_209_INDEX_NOT_FOUND.
func Stat(path string) (Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Info{}, serrors.New(serrors.ErrCodeIndexNotFound, "index file not found", err).
				WithDetail("path", path)
		}
		return Info{}, serrors.Wrap(serrors.ErrCodeFilePermission, err)
	}
	return Info{Path: path, Size: fi.Size(), ModTime: fi.ModTime()}, nil
}
