// Package config loads CLI configuration for site2pdf from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-site2pdf/internal/fileutil"
	"github.com/alnah/go-site2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidDuration = errors.New("invalid duration")
)

// Duration parses YAML scalars like "8s" or "500ms" via time.ParseDuration.
type Duration time.Duration

// UnmarshalYAML implements the goccy/go-yaml bytes unmarshaler.
func (d *Duration) UnmarshalYAML(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"'`)
	if raw == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDuration, raw)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds all CLI configuration for PDF rendering.
type Config struct {
	Root        string     `yaml:"root"`        // project root shared with the site generator
	Concurrency int        `yaml:"concurrency"` // batch chunk size (0 = default)
	Log         LogConfig  `yaml:"log"`
	Waits       WaitConfig `yaml:"waits"`
}

// LogConfig defines structured logging options.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// WaitConfig overrides the readiness wait timeouts. Zero values keep the
// library defaults.
type WaitConfig struct {
	ContentLoad       Duration `yaml:"contentLoad"`
	ImageWait         Duration `yaml:"imageWait"`
	FontWait          Duration `yaml:"fontWait"`
	CDNDetect         Duration `yaml:"cdnDetect"`
	StyleProbe        Duration `yaml:"styleProbe"`
	PrecompiledSettle Duration `yaml:"precompiledSettle"`
	CDNSettle         Duration `yaml:"cdnSettle"`
	Scroll            Duration `yaml:"scroll"`
	ScrollStepDelay   Duration `yaml:"scrollStepDelay"`
}

// DefaultConfig returns a neutral configuration relying on library defaults.
func DefaultConfig() *Config {
	return &Config{
		Root: ".",
		Log:  LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns an error if the file is not found (no silent fallback).
func Load(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		resolved, err := resolvePath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return cfg, nil
}

// resolvePath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-site2pdf/
func resolvePath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-site2pdf", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
