package config

import (
	"os"
	"path/filepath"
)

const (
	// ConfigDirEnv overrides the directory holding config and index files.
	ConfigDirEnv = "SEROOST_CONFIG_DIR"

	// FallbackDir is used when the platform config directory is unknown.
	FallbackDir = "./indeces"

	appDir         = "seroost"
	configFileName = "config.yaml"
	legacyFileName = "config.json"
	indexFileName  = "index.json"
)

// Paths are the files seroost reads and writes. Resolve them once and pass
// the value down; nothing else looks at the environment for locations.
type Paths struct {
	ConfigDir        string
	ConfigFile       string
	LegacyConfigFile string
	IndexFile        string
	LockFile         string
}

// ResolvePaths locates the config directory: $SEROOST_CONFIG_DIR, else
// <os.UserConfigDir>/seroost, else ./indeces.
func ResolvePaths() Paths {
	dir := os.Getenv(ConfigDirEnv)
	if dir == "" {
		if base, err := os.UserConfigDir(); err == nil && base != "" {
			dir = filepath.Join(base, appDir)
		} else {
			dir = FallbackDir
		}
	}
	return PathsIn(dir)
}

// PathsIn returns the default layout under dir.
func PathsIn(dir string) Paths {
	index := filepath.Join(dir, indexFileName)
	return Paths{
		ConfigDir:        dir,
		ConfigFile:       filepath.Join(dir, configFileName),
		LegacyConfigFile: filepath.Join(dir, legacyFileName),
		IndexFile:        index,
		LockFile:         index + ".lock",
	}
}

// ForConfig applies the index_file override from cfg.
func (p Paths) ForConfig(cfg *Config) Paths {
	if cfg != nil && cfg.IndexFile != "" {
		p.IndexFile = cfg.IndexFile
		p.LockFile = cfg.IndexFile + ".lock"
	}
	return p
}
