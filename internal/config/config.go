// Package config loads layered configuration: hardcoded defaults, the
// user config file, then CONCORD_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jmhobbs/concord/internal/errors"
)

// Config is the complete concord configuration.
type Config struct {
	Version int           `yaml:"version"`
	Paths   PathsConfig   `yaml:"paths"`
	Search  SearchConfig  `yaml:"search"`
	Text    TextConfig    `yaml:"text"`
	General GeneralConfig `yaml:"general"`
}

// PathsConfig locates the corpus and the index cache on disk.
type PathsConfig struct {
	// CorpusDir holds one <code>.dat file per translation.
	CorpusDir string `yaml:"corpus_dir"`
	// CacheDir holds one index cache database per translation.
	CacheDir string `yaml:"cache_dir"`
}

// SearchConfig tunes free-text search.
type SearchConfig struct {
	// Backend selects the search implementation: "postings" (default)
	// or "bleve".
	Backend string `yaml:"backend"`

	// K1 and B are the BM25 constants. Zero means "use the default";
	// explicit zeros are only reachable via env overrides.
	K1 float64 `yaml:"k1"`
	B  float64 `yaml:"b"`

	// MaxResults caps ranked results per query.
	MaxResults int `yaml:"max_results"`
}

// TextConfig controls query and corpus text normalization.
type TextConfig struct {
	// Stemming folds morphological variants together at index and
	// query time. Changing it invalidates cached indexes.
	Stemming bool `yaml:"stemming"`
}

// GeneralConfig carries cross-cutting settings.
type GeneralConfig struct {
	// Translation is the default corpus code when none is given.
	Translation string `yaml:"translation"`
	LogLevel    string `yaml:"log_level"`
	// NoColor disables styled terminal output.
	NoColor bool `yaml:"no_color"`
	// Watch rebuilds indexes automatically when corpus files change.
	Watch bool `yaml:"watch"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		Version: 1,
		Paths: PathsConfig{
			CorpusDir: defaultDataPath("corpus"),
			CacheDir:  defaultDataPath("cache"),
		},
		Search: SearchConfig{
			Backend:    "postings",
			K1:         1.2,
			B:          0.75,
			MaxResults: 10,
		},
		Text: TextConfig{
			Stemming: false,
		},
		General: GeneralConfig{
			Translation: "kjv",
			LogLevel:    "warn",
		},
	}
}

// defaultDataPath returns a subdirectory of the concord data dir.
func defaultDataPath(sub string) string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "concord", sub)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "concord", sub)
	}
	return filepath.Join(home, ".local", "share", "concord", sub)
}

// UserConfigPath returns the user configuration file path, following
// the XDG base directory convention.
func UserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "concord", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "concord", "config.yaml")
	}
	return filepath.Join(home, ".config", "concord", "config.yaml")
}

// Load builds the effective configuration, in order of increasing
// precedence:
//  1. Hardcoded defaults
//  2. User config file (or path, when non-empty)
//  3. CONCORD_* environment variables
func Load(path string) (*Config, error) {
	cfg := New()

	if path == "" {
		path = os.Getenv("CONCORD_CONFIG")
	}
	if path == "" {
		path = UserConfigPath()
		// A missing default config file is fine.
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}
	if path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadYAML merges configuration from a YAML file over cfg.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("read config file %s", path), err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return errors.New(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("parse config file %s", path), err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c. Booleans that
// default to false are safe to copy unconditionally.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Paths.CorpusDir != "" {
		c.Paths.CorpusDir = other.Paths.CorpusDir
	}
	if other.Paths.CacheDir != "" {
		c.Paths.CacheDir = other.Paths.CacheDir
	}

	if other.Search.Backend != "" {
		c.Search.Backend = other.Search.Backend
	}
	if other.Search.K1 != 0 {
		c.Search.K1 = other.Search.K1
	}
	if other.Search.B != 0 {
		c.Search.B = other.Search.B
	}
	if other.Search.MaxResults != 0 {
		c.Search.MaxResults = other.Search.MaxResults
	}

	if other.Text.Stemming {
		c.Text.Stemming = true
	}

	if other.General.Translation != "" {
		c.General.Translation = other.General.Translation
	}
	if other.General.LogLevel != "" {
		c.General.LogLevel = other.General.LogLevel
	}
	if other.General.NoColor {
		c.General.NoColor = true
	}
	if other.General.Watch {
		c.General.Watch = true
	}
}

// applyEnvOverrides applies CONCORD_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CONCORD_CORPUS_DIR"); v != "" {
		c.Paths.CorpusDir = v
	}
	if v := os.Getenv("CONCORD_CACHE_DIR"); v != "" {
		c.Paths.CacheDir = v
	}
	if v := os.Getenv("CONCORD_SEARCH_BACKEND"); v != "" {
		c.Search.Backend = v
	}
	if v := os.Getenv("CONCORD_BM25_K1"); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && f >= 0 {
			c.Search.K1 = f
		}
	}
	if v := os.Getenv("CONCORD_BM25_B"); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && f >= 0 && f <= 1 {
			c.Search.B = f
		}
	}
	if v := os.Getenv("CONCORD_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Search.MaxResults = n
		}
	}
	if v := os.Getenv("CONCORD_STEMMING"); v != "" {
		c.Text.Stemming = isTruthy(v)
	}
	if v := os.Getenv("CONCORD_TRANSLATION"); v != "" {
		c.General.Translation = v
	}
	if v := os.Getenv("CONCORD_LOG_LEVEL"); v != "" {
		c.General.LogLevel = v
	}
	if v := os.Getenv("NO_COLOR"); v != "" {
		c.General.NoColor = true
	}
	if v := os.Getenv("CONCORD_WATCH"); v != "" {
		c.General.Watch = isTruthy(v)
	}
}

func isTruthy(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes"
}

// Validate rejects configurations no component can act on.
func (c *Config) Validate() error {
	switch c.Search.Backend {
	case "postings", "bleve":
	default:
		return errors.Newf(errors.ErrCodeConfigInvalid, "unknown search backend %q", c.Search.Backend)
	}
	if c.Search.K1 < 0 {
		return errors.Newf(errors.ErrCodeConfigInvalid, "bm25 k1 must be non-negative, got %v", c.Search.K1)
	}
	if c.Search.B < 0 || c.Search.B > 1 {
		return errors.Newf(errors.ErrCodeConfigInvalid, "bm25 b must be in [0,1], got %v", c.Search.B)
	}
	if c.Search.MaxResults <= 0 {
		return errors.Newf(errors.ErrCodeConfigInvalid, "max_results must be positive, got %d", c.Search.MaxResults)
	}
	switch strings.ToLower(c.General.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return errors.Newf(errors.ErrCodeConfigInvalid, "unknown log level %q", c.General.LogLevel)
	}
	return nil
}
