// Package config loads the CLI's YAML configuration file: the fresher's
// starting seed, conversion-error substrings to suppress, and the default
// entry file to parse when none is given on the command line.
package config

import (
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// Config is the CLI's on-disk configuration, loaded from flowql.yaml (or a
// path given with --config).
type Config struct {
	// FresherSeed is the first TypeVar minted for a run, letting tests (and
	// reproducible CI runs) pin type-variable numbering.
	FresherSeed int `yaml:"fresherSeed"`

	// SuppressErrors lists substrings; a conversion or parse error
	// containing one of them is dropped from CLI output. Useful for
	// silencing a known, accepted gap while iterating.
	SuppressErrors []string `yaml:"suppressErrors"`

	// EntryFile is parsed when the CLI is invoked with no file argument.
	EntryFile string `yaml:"entryFile"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{FresherSeed: 0}
}

// Load reads and parses path. A missing file is not an error: Default is
// returned instead, since most commands run perfectly well unconfigured.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Suppressed reports whether msg contains any configured suppression
// substring.
func (c *Config) Suppressed(msg string) bool {
	for _, s := range c.SuppressErrors {
		if s != "" && strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
