// Package config loads the jsonfind settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/jsonfind/internal/pathfilter"
	"github.com/taigrr/jsonfind/internal/types"
)

// FileNames are the settings file names, in lookup order.
var FileNames = []string{".jsonfind.yml", ".jsonfind.yaml", "jsonfind.yml", "jsonfind.yaml"}

// Config represents the settings for a workspace.
type Config struct {
	Include      []string `yaml:"include,omitempty"`
	Exclude      []string `yaml:"exclude,omitempty"`
	Extensions   []string `yaml:"extensions,omitempty"`
	Limit        int      `yaml:"limit"`
	Workers      int      `yaml:"workers"`
	DisplayWidth int      `yaml:"display_width"`
}

// New creates a Config with default values.
// Workers is zero, which means one worker per CPU.
func New() *Config {
	return &Config{
		Include:      []string{},
		Exclude:      []string{},
		Extensions:   []string{".json"},
		Limit:        50,
		Workers:      0,
		DisplayWidth: 50,
	}
}

// Load loads a Config from a YAML file. Keys missing from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Find searches for a settings file in dir and its parents. It returns an
// empty string when there is none.
func Find(dir string) string {
	currentDir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		for _, name := range FileNames {
			configPath := filepath.Join(currentDir, name)
			if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate reports every problem with the settings at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Limit < 0 {
		errs = append(errs, fmt.Errorf("limit must not be negative, got %d", c.Limit))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.DisplayWidth < 0 {
		errs = append(errs, fmt.Errorf("display_width must not be negative, got %d", c.DisplayWidth))
	}

	for _, pattern := range slices.Concat(c.Include, c.Exclude) {
		if strings.TrimSpace(pattern) == "" {
			errs = append(errs, errors.New("empty glob pattern"))
			continue
		}
		if _, err := pathfilter.Compile(pattern); err != nil {
			errs = append(errs, fmt.Errorf("invalid glob pattern '%s': %w", pattern, err))
		}
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, fmt.Errorf("extension '%s' must start with a dot", ext))
		}
	}

	return errors.Join(errs...)
}

// Marshal renders the settings as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// PathFilter returns the document filter settings.
func (c *Config) PathFilter() *types.PathFilterConfig {
	return &types.PathFilterConfig{
		IgnoredPatterns:   c.Exclude,
		IncludedPatterns:  c.Include,
		AllowedExtensions: c.Extensions,
	}
}
