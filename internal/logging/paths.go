package logging

import (
	"os"
	"path/filepath"
)

// LogDirEnv overrides the log directory. Tests point it at a temp dir.
const LogDirEnv = "SEROOST_LOG_DIR"

// DefaultLogDir returns the log directory (~/.seroost/logs).
// Falls back to the temp directory if the home directory is unavailable.
func DefaultLogDir() string {
	if dir := os.Getenv(LogDirEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".seroost", "logs")
	}
	return filepath.Join(home, ".seroost", "logs")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "seroost.log")
}
