// Package config resolves where seroost keeps its files and loads the
// persisted settings (chiefly index_path, the directory to index).
//
// Precedence, lowest first: defaults, config file, SEROOST_* environment
// variables, command-line flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/renameio"
	"gopkg.in/yaml.v3"

	serrors "github.com/Aman-CERP/seroost/internal/errors"
)

const (
	// DefaultMaxFileSizeMB is the default per-file size ceiling.
	DefaultMaxFileSizeMB = 25
	// DefaultSearchLimit is the number of ranked results returned.
	DefaultSearchLimit = 10
	// DefaultCacheSize is the number of cached query results in serve mode.
	DefaultCacheSize = 256
	// DefaultDebounce is the quiet period before a watch-mode rebuild.
	DefaultDebounce = 500 * time.Millisecond
)

// Config holds the persisted settings.
type Config struct {
	// IndexPath is the directory that "seroost index" walks.
	IndexPath string `yaml:"index_path,omitempty" json:"index_path,omitempty"`

	// IndexFile overrides the location of index.json.
	IndexFile string `yaml:"index_file,omitempty" json:"index_file,omitempty"`

	// MaxFileSizeMB is the per-file size ceiling in megabytes.
	MaxFileSizeMB int `yaml:"max_file_size_mb,omitempty" json:"max_file_size_mb,omitempty"`

	// Workers is the content worker count (0 = number of CPUs).
	Workers int `yaml:"workers,omitempty" json:"workers,omitempty"`

	Search SearchConfig `yaml:"search,omitempty" json:"search,omitempty"`
	Watch  WatchConfig  `yaml:"watch,omitempty" json:"watch,omitempty"`
}

// SearchConfig configures the query engine.
type SearchConfig struct {
	Limit     int `yaml:"limit,omitempty" json:"limit,omitempty"`
	CacheSize int `yaml:"cache_size,omitempty" json:"cache_size,omitempty"`
}

// WatchConfig configures index --watch.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce,omitempty" json:"debounce,omitempty"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		MaxFileSizeMB: DefaultMaxFileSizeMB,
		Search: SearchConfig{
			Limit:     DefaultSearchLimit,
			CacheSize: DefaultCacheSize,
		},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
	}
}

// Load builds the effective configuration for paths.
func Load(paths Paths) (*Config, error) {
	cfg := NewConfig()

	file, err := readFile(paths)
	if err != nil {
		return nil, err
	}
	if file != nil {
		cfg.mergeWith(file)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, serrors.ConfigError("invalid configuration: "+err.Error(), err).
			WithDetail("path", paths.ConfigFile)
	}
	return cfg, nil
}

// readFile returns the settings stored on disk, or nil if there are none.
// config.yaml wins over a legacy config.json; JSON is read as YAML.
func readFile(paths Paths) (*Config, error) {
	for _, path := range []string{paths.ConfigFile, paths.LegacyConfigFile} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, serrors.New(serrors.ErrCodeConfigPermission, "failed to read config file "+path, err)
		}

		var parsed Config
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, serrors.ConfigError("failed to parse config file "+path, err).
				WithDetail("path", path)
		}
		return &parsed, nil
	}
	return nil, nil
}

// mergeWith copies the non-zero fields of other into c.
func (c *Config) mergeWith(other *Config) {
	if other.IndexPath != "" {
		c.IndexPath = other.IndexPath
	}
	if other.IndexFile != "" {
		c.IndexFile = other.IndexFile
	}
	if other.MaxFileSizeMB != 0 {
		c.MaxFileSizeMB = other.MaxFileSizeMB
	}
	if other.Workers != 0 {
		c.Workers = other.Workers
	}
	if other.Search.Limit != 0 {
		c.Search.Limit = other.Search.Limit
	}
	if other.Search.CacheSize != 0 {
		c.Search.CacheSize = other.Search.CacheSize
	}
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SEROOST_INDEX_PATH"); v != "" {
		c.IndexPath = v
	}
	if v := os.Getenv("SEROOST_INDEX_FILE"); v != "" {
		c.IndexFile = v
	}
	if v := os.Getenv("SEROOST_MAX_FILE_SIZE_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxFileSizeMB = n
		}
	}
	if v := os.Getenv("SEROOST_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
}

// Validate checks ranges.
func (c *Config) Validate() error {
	if c.MaxFileSizeMB <= 0 {
		return fmt.Errorf("max_file_size_mb must be positive, got %d", c.MaxFileSizeMB)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.Search.Limit <= 0 {
		return fmt.Errorf("search.limit must be positive, got %d", c.Search.Limit)
	}
	if c.Search.CacheSize <= 0 {
		return fmt.Errorf("search.cache_size must be positive, got %d", c.Search.CacheSize)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must be non-negative, got %s", c.Watch.Debounce)
	}
	return nil
}

// MaxFileSizeBytes converts the megabyte ceiling to bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}

// RequireIndexPath returns the directory to index or a not-configured error.
func (c *Config) RequireIndexPath() (string, error) {
	if c.IndexPath == "" {
		return "", serrors.New(serrors.ErrCodeConfigNotFound,
			"No index path provided and no saved configuration found.", nil).
			WithSuggestion("run with --index-path first: seroost --index-path /path/to/documents index")
	}
	return c.IndexPath, nil
}

// SetIndexPath records dir as index_path in the config file, keeping every
// other stored setting. The previous file is backed up first.
func SetIndexPath(paths Paths, dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", serrors.New(serrors.ErrCodeInvalidPath, "invalid index path: "+dir, err)
	}

	stored, err := readFile(paths)
	if err != nil {
		return "", err
	}
	if stored == nil {
		stored = &Config{}
	}
	stored.IndexPath = abs

	if _, err := BackupFile(paths.ConfigFile); err != nil {
		return "", serrors.New(serrors.ErrCodeConfigPermission, "failed to back up config file", err)
	}
	if err := stored.WriteYAML(paths.ConfigFile); err != nil {
		return "", err
	}
	return abs, nil
}

// WriteYAML atomically writes c to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return serrors.ConfigError("failed to marshal config", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return serrors.New(serrors.ErrCodeConfigPermission, "failed to create config directory", err)
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return serrors.New(serrors.ErrCodeConfigPermission, "failed to write config file", err).
			WithDetail("path", path)
	}
	return nil
}

// WriteTemplate writes data as the config file. An existing file is kept
// unless force is set, in which case it is backed up first.
func WriteTemplate(paths Paths, data []byte, force bool) error {
	if _, err := os.Stat(paths.ConfigFile); err == nil {
		if !force {
			return serrors.New(serrors.ErrCodeInvalidInput, "config file already exists: "+paths.ConfigFile, nil).
				WithSuggestion("Use --force to replace it; the old file is backed up")
		}
		if _, err := BackupFile(paths.ConfigFile); err != nil {
			return serrors.New(serrors.ErrCodeConfigPermission, "failed to back up config file", err)
		}
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return serrors.ConfigError("invalid config template", err)
	}

	if err := os.MkdirAll(paths.ConfigDir, 0o755); err != nil {
		return serrors.New(serrors.ErrCodeConfigPermission, "failed to create config directory", err)
	}
	if err := renameio.WriteFile(paths.ConfigFile, data, 0o644); err != nil {
		return serrors.New(serrors.ErrCodeConfigPermission, "failed to write config file", err).
			WithDetail("path", paths.ConfigFile)
	}
	return nil
}
