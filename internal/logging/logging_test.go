package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLogDir_HonoursEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(LogDirEnv, dir)

	assert.Equal(t, dir, DefaultLogDir())
	assert.Equal(t, filepath.Join(dir, "seroost.log"), DefaultLogPath())
}

func TestDefaultLogDir_UnderHome(t *testing.T) {
	t.Setenv(LogDirEnv, "")

	assert.True(t, strings.HasSuffix(DefaultLogDir(), filepath.Join(".seroost", "logs")))
}

func TestConfigs(t *testing.T) {
	t.Setenv(LogDirEnv, t.TempDir())

	def := DefaultConfig()
	assert.Equal(t, "info", def.Level)
	assert.False(t, def.WriteToStderr)

	dbg := DebugConfig()
	assert.Equal(t, "debug", dbg.Level)
	assert.True(t, dbg.WriteToStderr)

	srv := ServeConfig(true)
	assert.Equal(t, "debug", srv.Level)
	assert.False(t, srv.WriteToStderr, "serve must never log to stderr")
}

func TestSetup_WritesJSONToFile(t *testing.T) {
	// Given: a config pointing at a temp file
	path := filepath.Join(t.TempDir(), "logs", "seroost.log")
	cfg := Config{Level: "debug", FilePath: path, MaxSizeMB: 1, MaxFiles: 2}

	// When: logging through the returned logger
	logger, cleanup, err := Setup(cfg)
	require.NoError(t, err)
	logger.Warn("skipping file", slog.String("path", "/docs/big.pdf"))
	cleanup()

	// Then: the record is a JSON line with the attribute
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"skipping file"`)
	assert.Contains(t, string(data), `"path":"/docs/big.pdf"`)
}

func TestSetup_RespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seroost.log")
	logger, cleanup, err := Setup(Config{Level: "warn", FilePath: path, MaxSizeMB: 1, MaxFiles: 1})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Error("shown")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestRotatingWriter_Rotation(t *testing.T) {
	// Given: a writer with a 1MB limit and 2 kept files
	path := filepath.Join(t.TempDir(), "seroost.log")
	w, err := NewRotatingWriter(path, 1, 2)
	require.NoError(t, err)
	defer w.Close()

	chunk := []byte(strings.Repeat("x", 600*1024))

	// When: writing more than three times the limit
	for i := 0; i < 4; i++ {
		_, err := w.Write(chunk)
		require.NoError(t, err)
	}

	// Then: two rotated copies exist and no third
	assert.FileExists(t, path+".1")
	assert.FileExists(t, path+".2")
	assert.NoFileExists(t, path+".3")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.LessOrEqual(t, info.Size(), int64(1024*1024))
}

func TestRotatingWriter_WriteAfterClose(t *testing.T) {
	w, err := NewRotatingWriter(filepath.Join(t.TempDir(), "seroost.log"), 1, 1)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, err = w.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestRotatingWriter_ConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seroost.log")
	w, err := NewRotatingWriter(path, 10, 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = w.Write([]byte("line\n"))
			}
		}()
	}
	wg.Wait()
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 800, strings.Count(string(data), "line\n"))
}
