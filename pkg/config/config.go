/*
Package config manages TOML config for the wordbrew pipelines.
*/
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Pipeline PipelineConfig `toml:"pipeline"`
	Lookup   LookupConfig   `toml:"lookup"`
	Paths    PathsConfig    `toml:"paths"`
}

// PipelineConfig has scoring and year-window options.
type PipelineConfig struct {
	Profile    string `toml:"profile"`
	MinYear    int    `toml:"min_year"`
	MaxYear    int    `toml:"max_year"`
	FlushEvery int    `toml:"flush_every"`
}

// LookupConfig holds remote definition lookup options.
type LookupConfig struct {
	Retries int    `toml:"retries"`
	BaseURL string `toml:"base_url"`
}

// PathsConfig points at the static data directories.
type PathsConfig struct {
	Reference string `toml:"reference"`
	Tags      string `toml:"tags"`
	Cache     string `toml:"cache"`
}

// DefaultConfig returns the builtin defaults.
func DefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			Profile:    "tiered",
			MinYear:    2000,
			MaxYear:    2019,
			FlushEvery: 100,
		},
		Lookup: LookupConfig{
			Retries: 3,
		},
		Paths: PathsConfig{
			Reference: "data/reference",
			Tags:      "data/tags",
			Cache:     "data/cache",
		},
	}
}

// LoadConfig loads configuration from path, falling back to builtin
// defaults when path is empty or missing. Fields absent from the file keep
// their defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := SaveConfig(config, path); err != nil {
			log.Warnf("Config file %s not found and could not be created: %v. Using builtin defaults", path, err)
			return config, nil
		}
		log.Debugf("Created default config file at: %s", path)
		return config, nil
	}
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(config)
}

// Validate checks cross-field invariants.
func (c *Config) Validate() error {
	if _, err := c.Profile(); err != nil {
		return err
	}
	if c.Pipeline.MinYear > c.Pipeline.MaxYear {
		return fmt.Errorf("min_year %d is above max_year %d", c.Pipeline.MinYear, c.Pipeline.MaxYear)
	}
	if c.Lookup.Retries < 1 {
		return fmt.Errorf("lookup retries must be at least 1, got %d", c.Lookup.Retries)
	}
	return nil
}

// Profile resolves the named scoring profile.
func (c *Config) Profile() (Profile, error) {
	profile, known := profiles[c.Pipeline.Profile]
	if !known {
		return Profile{}, fmt.Errorf("unknown scoring profile %q", c.Pipeline.Profile)
	}
	return profile, nil
}

// Profile bundles a score weight with per-length admission thresholds.
type Profile struct {
	Name   string
	Weight int64
	// Thresholds maps word length to the minimum admissible score;
	// lengths not present fall back to Base.
	Thresholds map[int]int64
	Base       int64
}

// Threshold returns the minimum score for one word length.
func (p Profile) Threshold(length int) int64 {
	if threshold, tiered := p.Thresholds[length]; tiered {
		return threshold
	}
	return p.Base
}

// The two scoring profiles the pipelines have shipped with. Tiered is the
// current default: shorter words are both rarer per form and noisier, so
// they need a higher bar. Score barriers are fairly arbitrary.
var profiles = map[string]Profile{
	"tiered": {
		Name:   "tiered",
		Weight: 5,
		Thresholds: map[int]int64{
			4: 200_000,
			5: 100_000,
			6: 30_000,
			7: 10_000,
			8: 2_500,
		},
	},
	"flat": {
		Name:   "flat",
		Weight: 3,
		Base:   10_000,
	},
}
