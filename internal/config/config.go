package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EditSettings holds the engine tunables.
type EditSettings struct {
	MinChunkDuration float64 `yaml:"min_chunk_duration"`
	MaxChunkDuration float64 `yaml:"max_chunk_duration"`

	// TargetDuration is the edited episode's duration budget in seconds.
	// Zero means "derive from TargetRatio and the source duration".
	TargetDuration float64 `yaml:"target_duration"`
	TargetRatio    float64 `yaml:"target_ratio"`

	Language   string `yaml:"language"`
	CutFillers bool   `yaml:"cut_fillers"`
	StrictCuts bool   `yaml:"strict_cuts"`
}

// Config holds the full application configuration.
type Config struct {
	EditSettings `yaml:",inline"`

	MaxConcurrentAnalyses int `yaml:"max_concurrent_analyses"`
	MaxRetries            int `yaml:"max_retries"`
	APIRateLimitPerMin    int `yaml:"api_rate_limit_per_min"`
}

// Default returns a Config with the standard editing defaults.
func Default() *Config {
	return &Config{
		EditSettings: EditSettings{
			MinChunkDuration: 30,
			MaxChunkDuration: 60,
			TargetRatio:      0.25,
			Language:         "pt",
			CutFillers:       true,
		},
		MaxConcurrentAnalyses: 3,
		MaxRetries:            3,
		APIRateLimitPerMin:    30,
	}
}

// LoadFile reads a YAML config file over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine would reject.
func (c *Config) Validate() error {
	if c.MinChunkDuration <= 0 {
		return fmt.Errorf("min_chunk_duration must be positive, got %.2f", c.MinChunkDuration)
	}
	if c.MinChunkDuration > c.MaxChunkDuration {
		return fmt.Errorf("min_chunk_duration %.2f exceeds max_chunk_duration %.2f",
			c.MinChunkDuration, c.MaxChunkDuration)
	}
	if c.TargetDuration < 0 {
		return fmt.Errorf("target_duration must not be negative, got %.2f", c.TargetDuration)
	}
	if c.TargetDuration == 0 && (c.TargetRatio <= 0 || c.TargetRatio > 1) {
		return fmt.Errorf("target_ratio must be in (0, 1], got %.2f", c.TargetRatio)
	}
	if c.MaxConcurrentAnalyses < 1 {
		return fmt.Errorf("max_concurrent_analyses must be at least 1, got %d", c.MaxConcurrentAnalyses)
	}
	return nil
}

// ResolveTarget returns the effective target duration for a source of the
// given length.
func (c *Config) ResolveTarget(sourceDuration float64) float64 {
	if c.TargetDuration > 0 {
		return c.TargetDuration
	}
	return sourceDuration * c.TargetRatio
}
