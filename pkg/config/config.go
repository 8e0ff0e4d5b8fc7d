// Package config holds runtime configuration: defaults, an optional YAML
// overlay, and validation of the directory arguments before the pipeline
// touches anything.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Depth is the level of date-based folder nesting.
type Depth string

const (
	DepthNone  Depth = "none"  // everything directly under the output root
	DepthYear  Depth = "year"  // YYYY/
	DepthMonth Depth = "month" // YYYY/MM - Mon/ (default)
	DepthDay   Depth = "day"   // YYYY/MM - Mon/DD - Day/
)

// Config holds all runtime settings. Populate with [Default], optionally
// overlay a YAML file via [LoadFile], apply CLI flags, then [Validate].
type Config struct {
	// Paths (CLI-only, not read from the config file).
	Inputs []string `yaml:"-"` // one or more source directories
	Output string   `yaml:"-"` // destination root (also the archive stem)

	// Classification and placement.
	Depth        Depth  `yaml:"depth"`         // default: month
	Compress     string `yaml:"compress"`      // archive format; empty = plain copy
	RenameSuffix string `yaml:"rename_suffix"` // default: "_#"

	// Deduplication.
	Algorithm string `yaml:"algorithm"` // default: sha256
	Workers   int    `yaml:"workers"`   // hash concurrency; <2 = sequential

	// Scanning. Empty means the built-in media extension list.
	Extensions []string `yaml:"extensions"`

	// Debug enables verbose logging.
	Debug bool `yaml:"-"`
}

// Default returns the configuration matching the CLI defaults.
func Default() Config {
	return Config{
		Depth:        DepthMonth,
		RenameSuffix: "_#",
		Algorithm:    "sha256",
	}
}

// LoadFile overlays settings from a YAML file onto c. Fields absent from the
// file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate checks the directory arguments and enum fields. It runs before
// the pipeline so a bad path can never interrupt a half-finished copy.
func (c *Config) Validate() error {
	switch c.Depth {
	case DepthNone, DepthYear, DepthMonth, DepthDay:
		// valid
	default:
		return fmt.Errorf("invalid depth %q (use none, year, month or day)", c.Depth)
	}

	if len(c.Inputs) == 0 {
		return fmt.Errorf("at least one input directory is required")
	}
	for _, dir := range c.Inputs {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("input %s: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("input %s: not a directory", dir)
		}
	}

	if c.Output == "" {
		return fmt.Errorf("output directory is required")
	}
	if info, err := os.Stat(c.Output); err == nil && !info.IsDir() {
		return fmt.Errorf("output %s: not a directory", c.Output)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	return nil
}
