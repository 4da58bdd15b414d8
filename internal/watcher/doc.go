// Package watcher turns file system activity under an indexed directory into
// debounced rebuild triggers for `seroost index --watch`.
//
// Raw fsnotify events are coalesced per path inside a quiet window, so an
// editor save or a git checkout produces one batch instead of hundreds.
//
// Usage:
//
//	err := watcher.Run(ctx, "/path/to/docs", opts, func(ctx context.Context, batch []watcher.FileEvent) error {
//	    _, err := pipeline.Build(ctx, root, paths)
//	    return err
//	})
package watcher
