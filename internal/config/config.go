// Package config loads the tool configuration: tunable comparison
// weights, autosave intervals, and output preferences. Values flow into
// the engine and autosave layers through their functional options; this
// package stays free of domain imports.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration, loaded from birch.yaml with
// BIRCH_* environment overrides.
type Config struct {
	// Library is the directory holding the recipe library.
	Library string `yaml:"library" mapstructure:"library"`

	// Format is the default output format: text or json.
	Format string `yaml:"format" mapstructure:"format"`

	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Compare  CompareConfig  `yaml:"compare" mapstructure:"compare"`
	Autosave AutosaveConfig `yaml:"autosave" mapstructure:"autosave"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" mapstructure:"level"`
}

// CompareConfig holds the similarity weighting. The weights are a
// tuning surface, not a contract: scoring normalizes by their sum.
type CompareConfig struct {
	IngredientWeight  float64 `yaml:"ingredient_weight" mapstructure:"ingredient_weight"`
	InstructionWeight float64 `yaml:"instruction_weight" mapstructure:"instruction_weight"`
	MetadataWeight    float64 `yaml:"metadata_weight" mapstructure:"metadata_weight"`
}

// AutosaveConfig holds the draft autosave tunables.
type AutosaveConfig struct {
	Enabled     bool          `yaml:"enabled" mapstructure:"enabled"`
	SkipInitial bool          `yaml:"skip_initial" mapstructure:"skip_initial"`
	Debounce    time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

// Default returns the built-in configuration, the base layer under
// file and environment overrides.
func Default() *Config {
	return &Config{
		Library: ".",
		Format:  "text",
		Log:     LogConfig{Level: "info"},
		Compare: CompareConfig{
			IngredientWeight:  0.5,
			InstructionWeight: 0.35,
			MetadataWeight:    0.15,
		},
		Autosave: AutosaveConfig{
			Enabled:     true,
			SkipInitial: true,
			Debounce:    2 * time.Second,
		},
	}
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate rejects values the rest of the system cannot work with.
func (c *Config) Validate() error {
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("config: format must be text or json, got %q", c.Format)
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("config: log.level must be debug, info, warn, or error, got %q", c.Log.Level)
	}
	w := c.Compare
	if w.IngredientWeight < 0 || w.InstructionWeight < 0 || w.MetadataWeight < 0 {
		return fmt.Errorf("config: compare weights must be non-negative")
	}
	if w.IngredientWeight+w.InstructionWeight+w.MetadataWeight == 0 {
		return fmt.Errorf("config: compare weights must not all be zero")
	}
	if c.Autosave.Debounce <= 0 {
		return fmt.Errorf("config: autosave.debounce must be positive, got %s", c.Autosave.Debounce)
	}
	return nil
}
