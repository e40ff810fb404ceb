// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/csrprep/csr"
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("pipeline: invalid config")

// Config selects the preprocessing stages and the input policy.
// It can be loaded from YAML:
//
//	complex: true          # inputs are interleaved complex values; lift first
//	dedupe: true           # merge duplicate entries (after lifting)
//	structure_check: true  # full O(n+nnz) structural validation on Analyze
//	validate_finite: false # reject NaN/Inf on Analyze and Refresh
//	log_level: info        # debug | info | warn | error
type Config struct {
	Complex        bool   `json:"complex" yaml:"complex"`
	Dedupe         bool   `json:"dedupe" yaml:"dedupe"`
	StructureCheck bool   `json:"structure_check" yaml:"structure_check"`
	ValidateFinite bool   `json:"validate_finite" yaml:"validate_finite"`
	LogLevel       string `json:"log_level" yaml:"log_level"`
}

// DefaultConfig returns a real-valued, deduplicating, fully checked config.
func DefaultConfig() Config {
	return Config{
		Complex:        false,
		Dedupe:         true,
		StructureCheck: csr.DefaultStructureCheck,
		ValidateFinite: csr.DefaultValidateNaNInf,
		LogLevel:       "info",
	}
}

// ParseConfig decodes YAML over DefaultConfig, so omitted keys keep their
// defaults, and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("pipeline: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("pipeline: read config %s: %w", path, err)
	}

	return ParseConfig(data)
}

// Validate checks the log level.
func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level parses LogLevel; an empty string means info.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}

	return lvl, nil
}

// csrOptions maps the input policy onto transformer options.
func (c Config) csrOptions(logger *slog.Logger) []csr.Option {
	opts := []csr.Option{csr.WithLogger(logger)}
	if c.StructureCheck {
		opts = append(opts, csr.WithStructureCheck())
	} else {
		opts = append(opts, csr.WithSkipStructureCheck())
	}
	if c.ValidateFinite {
		opts = append(opts, csr.WithValidateNaNInf())
	} else {
		opts = append(opts, csr.WithNoValidateNaNInf())
	}

	return opts
}
