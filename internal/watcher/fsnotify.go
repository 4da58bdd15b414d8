package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	serrors "github.com/Aman-CERP/seroost/internal/errors"
)

// Watcher watches a directory tree with fsnotify and emits debounced
// batches of changes.
type Watcher struct {
	fsw       *fsnotify.Watcher
	debouncer *Debouncer
	opts      Options
	ignore    map[string]map[string]struct{} // dir -> base names
	root      string

	mu      sync.RWMutex
	events  chan []FileEvent
	errors  chan error
	stopCh  chan struct{}
	stopped bool
}

// New creates a Watcher. Nothing is watched until Start.
func New(opts Options) (*Watcher, error) {
	opts = opts.WithDefaults()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, serrors.New(serrors.ErrCodeInternal, "failed to create file watcher", err)
	}

	w := &Watcher{
		fsw:       fsw,
		debouncer: NewDebouncer(opts.Debounce, opts.BufferSize),
		opts:      opts,
		ignore:    make(map[string]map[string]struct{}),
		events:    make(chan []FileEvent, opts.BufferSize),
		errors:    make(chan error, 10),
		stopCh:    make(chan struct{}),
	}
	for _, p := range opts.Ignore {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		dir, base := filepath.Split(abs)
		dir = filepath.Clean(dir)
		if w.ignore[dir] == nil {
			w.ignore[dir] = make(map[string]struct{})
		}
		w.ignore[dir][base] = struct{}{}
	}
	return w, nil
}

// Start watches root recursively and blocks until ctx is cancelled or Stop
// is called. Directories created later are added as they appear.
func (w *Watcher) Start(ctx context.Context, root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return serrors.New(serrors.ErrCodeInvalidPath, "failed to resolve watch root", err).
			WithDetail("path", root)
	}
	w.root = abs

	if err := w.addRecursive(abs); err != nil {
		_ = w.Stop()
		return serrors.New(serrors.ErrCodeDirUnreadable, "failed to watch directory", err).
			WithDetail("path", abs)
	}

	go w.forward(ctx)

	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.emitError(err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if w.ignored(ev.Name) {
		return
	}

	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		rel = ev.Name
	}
	if rel == "." || rel == ".git" || strings.HasPrefix(rel, ".git"+string(filepath.Separator)) {
		return
	}

	isDir := false
	if info, err := os.Stat(ev.Name); err == nil {
		isDir = info.IsDir()
	}

	var op Operation
	switch {
	case ev.Op&fsnotify.Create != 0:
		op = OpCreate
		if isDir {
			if err := w.addRecursive(ev.Name); err != nil {
				w.emitError(err)
			}
		}
	case ev.Op&fsnotify.Write != 0:
		op = OpModify
	case ev.Op&fsnotify.Remove != 0:
		op = OpDelete
	case ev.Op&fsnotify.Rename != 0:
		op = OpRename
	default:
		// chmod
		return
	}

	slog.Debug("file event", slog.String("path", rel), slog.String("op", op.String()))
	w.debouncer.Add(FileEvent{Path: rel, Operation: op, IsDir: isDir, Timestamp: time.Now()})
}

// ignored reports whether path is one of the ignored files or a temporary
// sibling of one.
func (w *Watcher) ignored(path string) bool {
	names, ok := w.ignore[filepath.Dir(path)]
	if !ok {
		return false
	}
	base := filepath.Base(path)
	if _, hit := names[base]; hit {
		return true
	}
	for name := range names {
		if strings.HasPrefix(base, "."+name) {
			return true
		}
	}
	return false
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			slog.Debug("skipping unwatchable directory", slog.String("path", path), slog.String("error", err.Error()))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" && path != dir {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) forward(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case batch, ok := <-w.debouncer.Output():
			if !ok {
				return
			}
			w.emit(batch)
		}
	}
}

func (w *Watcher) emit(batch []FileEvent) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return
	}
	select {
	case w.events <- batch:
	default:
		slog.Warn("event buffer full, dropping batch", slog.Int("batch_size", len(batch)))
	}
}

func (w *Watcher) emitError(err error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return
	}
	select {
	case w.errors <- err:
	default:
	}
}

// Events returns debounced batches. Closed by Stop.
func (w *Watcher) Events() <-chan []FileEvent {
	return w.events
}

// Errors returns non-fatal watcher errors. Closed by Stop.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Stop releases the watcher. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopCh)
	w.debouncer.Stop()
	err := w.fsw.Close()
	close(w.events)
	close(w.errors)
	return err
}
