// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package config holds the benchmark settings: defaults that reproduce the
// standard 256x256 run, a YAML file, and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ajroetker/matbench/matmul"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Output formats accepted by Format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Config holds all benchmark settings.
type Config struct {
	// Matrix dimension; A and B are N x N.
	N int `yaml:"n"`

	// Tile edge for the blocked strategies.
	Block int `yaml:"block"`

	// Timed trials per strategy; the best one is reported.
	Repeats int `yaml:"repeats"`

	// Timed trials for the naive strategy, which is much slower.
	NaiveRepeats int `yaml:"naive_repeats"`

	// The naive strategy only runs when N <= NaiveMaxN.
	NaiveMaxN int `yaml:"naive_max_n"`

	// Edge of the leading block compared in the correctness check. The check
	// only runs when N >= CheckSize.
	CheckSize int `yaml:"check_size"`

	// Seed for the random input matrices.
	Seed uint64 `yaml:"seed"`

	// Tolerances for the correctness check (allclose semantics).
	Atol float64 `yaml:"atol"`
	Rtol float64 `yaml:"rtol"`

	// Run one untimed library multiplication before timing.
	Warmup bool `yaml:"warmup"`

	// Report format: text, json or yaml.
	Format string `yaml:"format"`

	// Strategies to time, by name.
	Strategies []string `yaml:"strategies"`
}

// DefaultConfig returns the standard run: n=256, block=64, 3 trials.
func DefaultConfig() *Config {
	return &Config{
		N:            256,
		Block:        matmul.DefaultBlockSize,
		Repeats:      3,
		NaiveRepeats: 1,
		NaiveMaxN:    128,
		CheckSize:    128,
		Seed:         0,
		Atol:         matmul.DefaultAtol,
		Rtol:         matmul.DefaultRtol,
		Warmup:       true,
		Format:       FormatText,
		Strategies: []string{
			matmul.StrategyLibrary.String(),
			matmul.StrategyBlocked.String(),
			matmul.StrategyNaive.String(),
		},
	}
}

// Load reads configuration from a YAML file on top of the defaults, then
// applies environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies MATBENCH_* environment variables.
func (c *Config) applyEnvOverrides() error {
	ints := []struct {
		env string
		dst *int
	}{
		{"MATBENCH_N", &c.N},
		{"MATBENCH_BLOCK", &c.Block},
		{"MATBENCH_REPEATS", &c.Repeats},
	}
	for _, o := range ints {
		v := os.Getenv(o.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, o.env, v, err)
		}
		*o.dst = n
	}

	if v := os.Getenv("MATBENCH_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: MATBENCH_SEED=%q: %w", ErrInvalid, v, err)
		}
		c.Seed = seed
	}
	if v := os.Getenv("MATBENCH_FORMAT"); v != "" {
		c.Format = v
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.N < 1 {
		return fmt.Errorf("%w: n must be at least 1, got %d", ErrInvalid, c.N)
	}
	if c.Block < 1 {
		return fmt.Errorf("%w: block must be at least 1, got %d", ErrInvalid, c.Block)
	}
	if c.Repeats < 1 {
		return fmt.Errorf("%w: repeats must be at least 1, got %d", ErrInvalid, c.Repeats)
	}
	if c.NaiveRepeats < 1 {
		return fmt.Errorf("%w: naive_repeats must be at least 1, got %d", ErrInvalid, c.NaiveRepeats)
	}
	if c.CheckSize < 1 {
		return fmt.Errorf("%w: check_size must be at least 1, got %d", ErrInvalid, c.CheckSize)
	}
	if c.Atol < 0 || c.Rtol < 0 {
		return fmt.Errorf("%w: tolerances must be non-negative, got atol=%g rtol=%g", ErrInvalid, c.Atol, c.Rtol)
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("%w: unknown format %q", ErrInvalid, c.Format)
	}
	if _, err := c.ParsedStrategies(); err != nil {
		return err
	}
	return nil
}

// ParsedStrategies resolves Strategies to matmul strategies, dropping
// duplicates.
func (c *Config) ParsedStrategies() ([]matmul.Strategy, error) {
	if len(c.Strategies) == 0 {
		return nil, fmt.Errorf("%w: no strategies selected", ErrInvalid)
	}
	var out []matmul.Strategy
	for _, name := range c.Strategies {
		s, err := matmul.ParseStrategy(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out, nil
}
