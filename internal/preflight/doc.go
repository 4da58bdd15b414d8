// Package preflight runs environment checks before indexing.
//
// The checks cover:
//   - the configured directory exists and can be listed
//   - the config directory is writable (config, index and lock live there)
//   - free disk space next to the index file
//   - the open file limit, since every worker holds a file open
//   - whether another run currently holds the index lock
//
//	checker := preflight.New(preflight.WithOutput(os.Stdout))
//	results := checker.RunAll(ctx, preflight.Target{IndexPath: dir, Paths: paths})
//	if checker.HasCriticalFailures(results) {
//	    // refuse to index
//	}
package preflight
