// Package scanner walks a directory tree and emits the paths of the regular
// files it finds. It is the first stage of the indexing pipeline.
package scanner

// Options configures a walk.
type Options struct {
	// OnDirError is called for every directory that could not be read.
	// The directory's subtree is skipped and the walk continues.
	OnDirError func(path string, err error)

	// OnFile is called for each regular file just before it is sent.
	OnFile func(path string)
}

// Stats summarizes a finished walk.
type Stats struct {
	// Files is the number of regular files emitted.
	Files int
	// SkippedDirs is the number of unreadable directories.
	SkippedDirs int
}
