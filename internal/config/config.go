// Package config handles reading and writing the keyscout configuration
// file (~/.keyscout/config.toml).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/avoss/keyscout/internal/learn"
)

// Config holds keyscout configuration settings. Zero values mean "unset":
// the learning store's own defaults apply.
type Config struct {
	DataDir            string  `toml:"data_dir,omitempty"`
	DefaultFormat      string  `toml:"default_format,omitempty"`
	AutoApplyThreshold float64 `toml:"auto_apply_threshold,omitempty"`
	MinEvidenceCount   int     `toml:"min_evidence_count,omitempty"`
	TypoSimilarity     float64 `toml:"typo_similarity,omitempty"`
	SynonymSimilarity  float64 `toml:"synonym_similarity,omitempty"`
	MaxFailedSearches  int     `toml:"max_failed_searches,omitempty"`
	MaxInsights        int     `toml:"max_insights,omitempty"`
}

// validKeys lists the allowed configuration keys.
var validKeys = map[string]bool{
	"data_dir":             true,
	"default_format":       true,
	"auto_apply_threshold": true,
	"min_evidence_count":   true,
	"typo_similarity":      true,
	"synonym_similarity":   true,
	"max_failed_searches":  true,
	"max_insights":         true,
}

// ValidKeys returns the sorted list of valid configuration keys.
func ValidKeys() []string {
	return []string{
		"auto_apply_threshold", "data_dir", "default_format",
		"max_failed_searches", "max_insights", "min_evidence_count",
		"synonym_similarity", "typo_similarity",
	}
}

// Path returns the default config file path (~/.keyscout/config.toml).
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".keyscout", "config.toml")
	}
	return filepath.Join(home, ".keyscout", "config.toml")
}

// DefaultDataDir returns where the JSON documents live when data_dir is
// unset (~/.keyscout).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".keyscout")
	}
	return filepath.Join(home, ".keyscout")
}

// Load reads the config from the default path.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config from a specific path. Returns an empty Config
// if the file does not exist.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config to the default path.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes the config to a specific path, creating parent directories
// as needed.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Learning maps the set thresholds onto a learning config, leaving unset
// keys at their defaults.
func (c *Config) Learning() learn.Config {
	lc := learn.DefaultConfig()
	c.ApplyTo(&lc)
	return lc
}

// ApplyTo overlays the set thresholds onto lc, leaving unset keys alone.
// Used against a loaded learning store so file-config keys win over the
// thresholds persisted in the learning document.
func (c *Config) ApplyTo(lc *learn.Config) {
	if c.AutoApplyThreshold > 0 {
		lc.AutoApplyThreshold = c.AutoApplyThreshold
	}
	if c.MinEvidenceCount > 0 {
		lc.MinEvidenceCount = c.MinEvidenceCount
	}
	if c.TypoSimilarity > 0 {
		lc.TypoSimilarity = c.TypoSimilarity
	}
	if c.SynonymSimilarity > 0 {
		lc.SynonymSimilarity = c.SynonymSimilarity
	}
	if c.MaxFailedSearches > 0 {
		lc.MaxFailedSearches = c.MaxFailedSearches
	}
	if c.MaxInsights > 0 {
		lc.MaxInsights = c.MaxInsights
	}
}

// Get returns the string value of a configuration key.
func (c *Config) Get(key string) (string, error) {
	if !validKeys[key] {
		return "", fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(ValidKeys(), ", "))
	}
	switch key {
	case "data_dir":
		return c.DataDir, nil
	case "default_format":
		return c.DefaultFormat, nil
	case "auto_apply_threshold":
		return formatFloat(c.AutoApplyThreshold), nil
	case "min_evidence_count":
		return formatInt(c.MinEvidenceCount), nil
	case "typo_similarity":
		return formatFloat(c.TypoSimilarity), nil
	case "synonym_similarity":
		return formatFloat(c.SynonymSimilarity), nil
	case "max_failed_searches":
		return formatInt(c.MaxFailedSearches), nil
	case "max_insights":
		return formatInt(c.MaxInsights), nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// Set assigns a value to a configuration key. Thresholds must parse as
// numbers in range; an empty value unsets the key.
func (c *Config) Set(key, value string) error {
	if !validKeys[key] {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(ValidKeys(), ", "))
	}
	switch key {
	case "data_dir":
		c.DataDir = value
	case "default_format":
		if value != "" && value != "table" && value != "json" {
			return fmt.Errorf("default_format must be \"table\" or \"json\", got %q", value)
		}
		c.DefaultFormat = value
	case "auto_apply_threshold":
		return setRatio(&c.AutoApplyThreshold, key, value)
	case "typo_similarity":
		return setRatio(&c.TypoSimilarity, key, value)
	case "synonym_similarity":
		return setRatio(&c.SynonymSimilarity, key, value)
	case "min_evidence_count":
		return setCount(&c.MinEvidenceCount, key, value)
	case "max_failed_searches":
		return setCount(&c.MaxFailedSearches, key, value)
	case "max_insights":
		return setCount(&c.MaxInsights, key, value)
	}
	return nil
}

func setRatio(dst *float64, key, value string) error {
	if value == "" {
		*dst = 0
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%s must be a number between 0 and 1, got %q", key, value)
	}
	if f <= 0 || f > 1 {
		return fmt.Errorf("%s must be between 0 and 1, got %v", key, f)
	}
	*dst = f
	return nil
}

func setCount(dst *int, key, value string) error {
	if value == "" {
		*dst = 0
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fmt.Errorf("%s must be a positive integer, got %q", key, value)
	}
	*dst = n
	return nil
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
