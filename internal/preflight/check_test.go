package preflight

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/seroost/internal/config"
	"github.com/Aman-CERP/seroost/internal/store"
)

func TestCheckStatus_String(t *testing.T) {
	tests := []struct {
		status CheckStatus
		want   string
	}{
		{StatusPass, "PASS"},
		{StatusWarn, "WARN"},
		{StatusFail, "FAIL"},
		{CheckStatus(9), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}

func TestCheckResult_IsCritical(t *testing.T) {
	tests := []struct {
		name     string
		result   CheckResult
		expected bool
	}{
		{"required pass is not critical", CheckResult{Status: StatusPass, Required: true}, false},
		{"required fail is critical", CheckResult{Status: StatusFail, Required: true}, true},
		{"optional fail is not critical", CheckResult{Status: StatusFail, Required: false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.result.IsCritical())
		})
	}
}

func TestCheckResult_JSON(t *testing.T) {
	data, err := json.Marshal(CheckResult{Name: "disk_space", Status: StatusWarn, Message: "low"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"disk_space","status":"warn","message":"low","required":false}`, string(data))
}

func TestChecker_CheckIndexPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	file := filepath.Join(dir, "a.txt")

	tests := []struct {
		name     string
		path     string
		status   CheckStatus
		critical bool
		message  string
	}{
		{"unset", "", StatusWarn, false, "no directory configured"},
		{"missing", filepath.Join(dir, "missing"), StatusFail, true, "cannot access"},
		{"file", file, StatusFail, true, "is not a directory"},
		{"directory", dir, StatusPass, false, "(1 entries)"},
	}

	checker := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := checker.CheckIndexPath(tt.path)

			assert.Equal(t, "index_path", result.Name)
			assert.Equal(t, tt.status, result.Status)
			assert.Equal(t, tt.critical, result.IsCritical())
			assert.Contains(t, result.Message, tt.message)
		})
	}
}

func TestChecker_CheckWritePermissions_Writable(t *testing.T) {
	// Given: a config directory that does not exist yet
	dir := filepath.Join(t.TempDir(), "seroost")

	// When: checking write permissions
	result := New().CheckWritePermissions(dir)

	// Then: it passes, creates the directory and leaves nothing behind
	assert.Equal(t, StatusPass, result.Status)
	assert.True(t, result.Required)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestChecker_CheckWritePermissions_ReadOnly(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("Skipping read-only test when running as root")
	}

	readOnlyDir := filepath.Join(t.TempDir(), "readonly")
	require.NoError(t, os.Mkdir(readOnlyDir, 0o555))
	defer func() { _ = os.Chmod(readOnlyDir, 0o755) }()

	result := New().CheckWritePermissions(readOnlyDir)

	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Message, "permission denied")
}

func TestChecker_CheckIndexLock(t *testing.T) {
	lockFile := filepath.Join(t.TempDir(), "index.json.lock")
	checker := New()

	assert.Equal(t, StatusPass, checker.CheckIndexLock(lockFile).Status)

	lock := store.NewLock(lockFile)
	require.NoError(t, lock.TryLock())
	defer func() { _ = lock.Unlock() }()

	result := checker.CheckIndexLock(lockFile)
	assert.Equal(t, StatusWarn, result.Status)
	assert.False(t, result.IsCritical())
}

func TestChecker_RunAll(t *testing.T) {
	// Given: a configured directory and a fresh config directory
	docs := t.TempDir()
	paths := config.PathsIn(t.TempDir())
	checker := New()

	// When: running all checks
	results := checker.RunAll(context.Background(), Target{IndexPath: docs, Paths: paths})

	// Then: every check reports and none is critical
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"index_path", "write_permissions", "disk_space", "file_descriptors", "index_lock"}, names)
	assert.False(t, checker.HasCriticalFailures(results))
}

func TestChecker_RunAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := New().RunAll(ctx, Target{Paths: config.PathsIn(t.TempDir())})

	assert.Empty(t, results)
}

func TestChecker_HasCriticalFailures(t *testing.T) {
	checker := New()

	tests := []struct {
		name     string
		results  []CheckResult
		expected bool
	}{
		{"no results", nil, false},
		{"all pass", []CheckResult{{Status: StatusPass, Required: true}}, false},
		{"warning only", []CheckResult{{Status: StatusPass, Required: true}, {Status: StatusWarn}}, false},
		{"optional failure", []CheckResult{{Status: StatusFail}}, false},
		{"required failure", []CheckResult{{Status: StatusPass}, {Status: StatusFail, Required: true}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, checker.HasCriticalFailures(tt.results))
		})
	}
}

func TestChecker_SummaryStatus(t *testing.T) {
	checker := New()

	tests := []struct {
		name     string
		results  []CheckResult
		expected string
	}{
		{"all pass", []CheckResult{{Status: StatusPass}, {Status: StatusPass}}, "ready"},
		{"with warnings", []CheckResult{{Status: StatusPass}, {Status: StatusWarn}}, "ready_with_warnings"},
		{"with critical failure", []CheckResult{{Status: StatusPass}, {Status: StatusFail, Required: true}}, "failed"},
		{"with optional failure", []CheckResult{{Status: StatusFail}}, "ready_with_warnings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, checker.SummaryStatus(tt.results))
		})
	}
}

func TestChecker_PrintResults(t *testing.T) {
	// Given: some check results
	results := []CheckResult{
		{Name: "disk_space", Status: StatusPass, Message: "50 GB free"},
		{Name: "index_lock", Status: StatusWarn, Message: "an indexing run is in progress", Details: "/tmp/index.json.lock"},
		{Name: "index_path", Status: StatusFail, Message: "cannot access /nope", Required: true},
	}

	buf := &bytes.Buffer{}
	checker := New(WithOutput(buf), WithVerbose(true))

	// When: printing results
	checker.PrintResults(results)

	// Then: output contains formatted results and the summary
	out := buf.String()
	assert.Contains(t, out, "[PASS] disk_space: 50 GB free")
	assert.Contains(t, out, "[WARN] index_lock")
	assert.Contains(t, out, "      /tmp/index.json.lock")
	assert.Contains(t, out, "[FAIL] index_path")
	assert.Contains(t, out, "Status: FAILED")
	assert.Contains(t, out, "1 error(s):")
	assert.Contains(t, out, "1 warning(s):")
}
