package scanner

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	serrors "github.com/Aman-CERP/seroost/internal/errors"
)

// Scanner discovers regular files below a root directory.
type Scanner struct {
	opts Options
}

// New creates a Scanner.
func New(opts Options) *Scanner {
	return &Scanner{opts: opts}
}

// Walk sends the path of every regular file under root on paths, in the
// order filepath.WalkDir visits them. Paths are root joined with the
// relative components, so an absolute root yields absolute paths.
//
// Walk does not close paths; the caller owns the channel. Unreadable
// directories are logged and skipped. A symlink to a regular file is sent
// under the link's own path; symlinked directories are never descended into
// and dangling links are skipped. Walk returns early with ctx.Err() if ctx
// is cancelled.
func (s *Scanner) Walk(ctx context.Context, root string, paths chan<- string) (Stats, error) {
	var stats Stats

	info, err := os.Stat(root)
	if err != nil {
		return stats, serrors.New(serrors.ErrCodeInvalidPath, "cannot access directory: "+root, err).
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return stats, serrors.New(serrors.ErrCodeInvalidPath, "not a directory: "+root, nil).
			WithDetail("path", root)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if d == nil && path == root {
				return err
			}
			s.dirError(path, err)
			stats.SkippedDirs++
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			if !s.linksToFile(path) {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		if s.opts.OnFile != nil {
			s.opts.OnFile(path)
		}
		select {
		case paths <- path:
			stats.Files++
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	})

	return stats, err
}

// linksToFile reports whether the symlink at path resolves to a regular file.
func (s *Scanner) linksToFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		slog.Debug("skipping dangling symlink",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return false
	}
	if !info.Mode().IsRegular() {
		slog.Debug("not following symlink", slog.String("path", path))
		return false
	}
	return true
}

func (s *Scanner) dirError(path string, err error) {
	slog.Warn("could not read directory, skipping",
		slog.String("path", path),
		slog.String("error_code", serrors.ErrCodeDirUnreadable),
		slog.String("error", err.Error()))
	if s.opts.OnDirError != nil {
		s.opts.OnDirError(path, serrors.New(serrors.ErrCodeDirUnreadable, "could not read directory: "+path, err))
	}
}
