// Package config loads the tool configuration from defaults, an optional
// YAML file and PARALLEL_RECOLOR_* environment variables through viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ironsheep/parallel-recolor/internal/bigmath"
	"github.com/ironsheep/parallel-recolor/internal/errors"
	"github.com/ironsheep/parallel-recolor/internal/logging"
	"github.com/ironsheep/parallel-recolor/internal/recolor"
)

// EnvPrefix prefixes every environment variable, e.g. PARALLEL_RECOLOR_RECOLOR_WORKERS.
const EnvPrefix = "PARALLEL_RECOLOR"

// Config represents the complete tool configuration
type Config struct {
	Recolor  RecolorConfig  `mapstructure:"recolor"`
	PowerSum PowerSumConfig `mapstructure:"powersum"`
	Runner   RunnerConfig   `mapstructure:"runner"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// RecolorConfig controls the image recolor command
type RecolorConfig struct {
	// Source is the image to read (default: ./resources/many-flowers.jpg)
	Source string `mapstructure:"source"`
	// Destination is where the recolored image is written (default: ./out/many-flowers.jpg)
	Destination string `mapstructure:"destination"`
	// Workers is the number of strips processed concurrently (default: 4)
	Workers int `mapstructure:"workers"`
	// RemainderPolicy is "last" or "drop" (default: "last")
	RemainderPolicy string `mapstructure:"remainder_policy"`
	// JPEGQuality is the encoder quality for JPEG destinations, 1-100 (default: 95)
	JPEGQuality int `mapstructure:"jpeg_quality"`
}

// PowerSumConfig controls the power-sum command
type PowerSumConfig struct {
	// Strategy is "squaring" or "unary" (default: "squaring")
	Strategy string `mapstructure:"strategy"`
}

// RunnerConfig controls the task runner
type RunnerConfig struct {
	// Limit caps concurrently running work units, 0 = one goroutine per unit (default: 0)
	Limit int `mapstructure:"limit"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	// Level is debug, info, warn or error (default: "warn")
	Level string `mapstructure:"level"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Recolor: RecolorConfig{
			Source:          "./resources/many-flowers.jpg",
			Destination:     "./out/many-flowers.jpg",
			Workers:         4,
			RemainderPolicy: recolor.RemainderToLast.String(),
			JPEGQuality:     95,
		},
		PowerSum: PowerSumConfig{
			Strategy: bigmath.Squaring.String(),
		},
		Runner: RunnerConfig{
			Limit: 0,
		},
		Logging: LoggingConfig{
			Level: logging.LevelWarn,
		},
	}
}

// SetDefaults registers default values with v
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("recolor.source", defaults.Recolor.Source)
	v.SetDefault("recolor.destination", defaults.Recolor.Destination)
	v.SetDefault("recolor.workers", defaults.Recolor.Workers)
	v.SetDefault("recolor.remainder_policy", defaults.Recolor.RemainderPolicy)
	v.SetDefault("recolor.jpeg_quality", defaults.Recolor.JPEGQuality)

	v.SetDefault("powersum.strategy", defaults.PowerSum.Strategy)

	v.SetDefault("runner.limit", defaults.Runner.Limit)

	v.SetDefault("logging.level", defaults.Logging.Level)
}

// New returns a viper instance with defaults and environment binding applied.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	// Replace dots with underscores for nested keys in env vars
	// e.g., PARALLEL_RECOLOR_RECOLOR_WORKERS for recolor.workers
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile points v at an explicit config file, or searches the default
// locations when path is empty. A missing file in the default locations is
// not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(Dir())
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Load decodes v into a Config and validates it
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and returns the first problem found
func (c *Config) Validate() error {
	if c.Recolor.Workers <= 0 {
		return errors.NewInvalidArgument("recolor.workers", c.Recolor.Workers, "must be positive")
	}
	if c.Recolor.JPEGQuality < 1 || c.Recolor.JPEGQuality > 100 {
		return errors.NewInvalidArgument("recolor.jpeg_quality", c.Recolor.JPEGQuality, "must be within 1-100")
	}
	if _, err := recolor.ParseRemainderPolicy(c.Recolor.RemainderPolicy); err != nil {
		return err
	}
	if _, err := bigmath.ParseStrategy(c.PowerSum.Strategy); err != nil {
		return err
	}
	if c.Runner.Limit < 0 {
		return errors.NewInvalidArgument("runner.limit", c.Runner.Limit, "must not be negative")
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return errors.NewInvalidArgument("logging.level", c.Logging.Level, err.Error())
	}
	return nil
}

// RemainderPolicy returns the parsed recolor remainder policy
func (c *Config) RemainderPolicy() recolor.RemainderPolicy {
	p, _ := recolor.ParseRemainderPolicy(c.Recolor.RemainderPolicy)
	return p
}

// Strategy returns the parsed exponentiation strategy
func (c *Config) Strategy() bigmath.Strategy {
	s, _ := bigmath.ParseStrategy(c.PowerSum.Strategy)
	return s
}

// Dir returns the user config directory for the tool
func Dir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "parallel-recolor")
	}
	return "."
}
