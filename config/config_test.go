// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/matbench/matmul"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 256, cfg.N)
	assert.Equal(t, 64, cfg.Block)
	assert.Equal(t, 3, cfg.Repeats)
	assert.Equal(t, 1, cfg.NaiveRepeats)
	assert.Equal(t, 128, cfg.NaiveMaxN)
	assert.Equal(t, 128, cfg.CheckSize)
	assert.Equal(t, uint64(0), cfg.Seed)
	assert.Equal(t, 1e-8, cfg.Atol)
	assert.Equal(t, 1e-5, cfg.Rtol)
	assert.True(t, cfg.Warmup)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, []string{"library", "blocked", "naive"}, cfg.Strategies)
	require.NoError(t, cfg.Validate())
}

func TestLoadNoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
n: 512
block: 32
strategies: [blocked, blocked-library]
format: json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 512, cfg.N)
	assert.Equal(t, 32, cfg.Block)
	assert.Equal(t, []string{"blocked", "blocked-library"}, cfg.Strategies)
	assert.Equal(t, FormatJSON, cfg.Format)
	// Unset keys keep their defaults.
	assert.Equal(t, 3, cfg.Repeats)
	assert.True(t, cfg.Warmup)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("n: [1, 2"), 0o644))
		_, err := Load(path)
		assert.ErrorContains(t, err, "failed to parse config")
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Run("values override file and defaults", func(t *testing.T) {
		t.Setenv("MATBENCH_N", "64")
		t.Setenv("MATBENCH_BLOCK", "16")
		t.Setenv("MATBENCH_REPEATS", "5")
		t.Setenv("MATBENCH_SEED", "7")
		t.Setenv("MATBENCH_FORMAT", "yaml")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 64, cfg.N)
		assert.Equal(t, 16, cfg.Block)
		assert.Equal(t, 5, cfg.Repeats)
		assert.Equal(t, uint64(7), cfg.Seed)
		assert.Equal(t, FormatYAML, cfg.Format)
	})

	t.Run("malformed integer", func(t *testing.T) {
		t.Setenv("MATBENCH_N", "big")
		_, err := Load("")
		require.ErrorIs(t, err, ErrInvalid)
		assert.Contains(t, err.Error(), "MATBENCH_N")
	})

	t.Run("malformed seed", func(t *testing.T) {
		t.Setenv("MATBENCH_SEED", "-1")
		_, err := Load("")
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"zero n", func(c *Config) { c.N = 0 }, "n must be at least 1"},
		{"negative n", func(c *Config) { c.N = -4 }, "n must be at least 1"},
		{"zero block", func(c *Config) { c.Block = 0 }, "block must be at least 1"},
		{"zero repeats", func(c *Config) { c.Repeats = 0 }, "repeats must be at least 1"},
		{"zero naive repeats", func(c *Config) { c.NaiveRepeats = 0 }, "naive_repeats must be at least 1"},
		{"zero check size", func(c *Config) { c.CheckSize = 0 }, "check_size must be at least 1"},
		{"negative atol", func(c *Config) { c.Atol = -1 }, "tolerances must be non-negative"},
		{"unknown format", func(c *Config) { c.Format = "csv" }, `unknown format "csv"`},
		{"no strategies", func(c *Config) { c.Strategies = nil }, "no strategies selected"},
		{"unknown strategy", func(c *Config) { c.Strategies = []string{"strassen"} }, "unknown strategy"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestValidateBlockLargerThanN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.N = 10
	cfg.Block = 64
	assert.NoError(t, cfg.Validate())
}

func TestParsedStrategiesDedup(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategies = []string{"blocked", "library", "blocked"}

	got, err := cfg.ParsedStrategies()
	require.NoError(t, err)
	assert.Equal(t, []matmul.Strategy{matmul.StrategyBlocked, matmul.StrategyLibrary}, got)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "matbench.yaml")
	cfg := DefaultConfig()
	cfg.N = 1024
	cfg.Strategies = []string{"blocked-library"}

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
