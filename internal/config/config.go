package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/giovanni/movieschema/movie"
)

// Config captures the runtime configuration of moviecheck derived from
// environment variables.
type Config struct {
	LogLevel  string
	LogFormat string
	Input     string
	Output    string
	MaxYear   int
}

// Load reads configuration from environment variables, applying defaults and validation.
func Load() (Config, error) {
	cfg := Config{
		LogLevel:  getEnv("MOVIECHECK_LOG_LEVEL", "info"),
		LogFormat: getEnv("MOVIECHECK_LOG_FORMAT", "console"),
		Input:     getEnv("MOVIECHECK_INPUT", "json"),
		Output:    getEnv("MOVIECHECK_OUTPUT", "json"),
	}

	maxYear, err := getEnvInt("MOVIECHECK_MAX_YEAR", movie.MaxYear)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxYear = maxYear

	// Input and Output can still be overridden by flags; Validate covers them.
	if err := cfg.validateFixed(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the whole configuration. Call it after flag overrides.
func (c Config) Validate() error {
	if err := c.validateFixed(); err != nil {
		return err
	}
	if !isFormat(c.Input) {
		return fmt.Errorf("MOVIECHECK_INPUT must be json or yaml, got %q", c.Input)
	}
	if !isFormat(c.Output) {
		return fmt.Errorf("MOVIECHECK_OUTPUT must be json or yaml, got %q", c.Output)
	}
	return nil
}

func (c Config) validateFixed() error {
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("MOVIECHECK_LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	if c.MaxYear < movie.MinYear {
		return fmt.Errorf("MOVIECHECK_MAX_YEAR must be at least %d", movie.MinYear)
	}
	return nil
}

func isFormat(s string) bool {
	return s == "json" || s == "yaml"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}
