package watcher

import (
	"time"
)

// Operation is the kind of change observed for a path.
type Operation int

const (
	// OpCreate indicates a new file or directory.
	OpCreate Operation = iota
	// OpModify indicates changed file contents.
	OpModify
	// OpDelete indicates a removed file or directory.
	OpDelete
	// OpRename indicates a path moved away.
	OpRename
)

// String returns the upper-case operation name.
func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpModify:
		return "MODIFY"
	case OpDelete:
		return "DELETE"
	case OpRename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// FileEvent is one coalesced change.
type FileEvent struct {
	// Path is relative to the watched root.
	Path      string
	Operation Operation
	IsDir     bool
	Timestamp time.Time
}

// Options configures a Watcher.
type Options struct {
	// Debounce is the quiet period before a batch is emitted.
	// Default: 500ms
	Debounce time.Duration

	// BufferSize is the number of batches held for a slow consumer.
	// Default: 16
	BufferSize int

	// Ignore lists absolute file paths whose changes never trigger a batch,
	// typically the index file and its lock. Temporary siblings written
	// during an atomic replace (".<name>*") are ignored too.
	Ignore []string
}

// DefaultOptions returns the default watcher options.
func DefaultOptions() Options {
	return Options{
		Debounce:   500 * time.Millisecond,
		BufferSize: 16,
	}
}

// WithDefaults fills zero fields from DefaultOptions.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.Debounce <= 0 {
		o.Debounce = d.Debounce
	}
	if o.BufferSize <= 0 {
		o.BufferSize = d.BufferSize
	}
	return o
}
