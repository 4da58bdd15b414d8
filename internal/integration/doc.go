// Package integration exercises indexing, persistence, search and watch
// mode together against real files.
package integration
