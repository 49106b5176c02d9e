// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/matbench/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootTextReport(t *testing.T) {
	out, err := execute(t, "--n", "32", "--block", "8", "--repeats", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "Running n=32, block=8", lines[0])
	assert.Contains(t, out, "library: min ")
	assert.Contains(t, out, "blocked: min ")
	assert.Contains(t, out, "naive (32x32): ")
	assert.NotContains(t, out, "correctness", "n below check size skips the check")
}

func TestRootJSONReport(t *testing.T) {
	out, err := execute(t, "--n", "24", "--block", "5", "--strategies", "blocked,blocked-library", "--format", "json")
	require.NoError(t, err)

	var report struct {
		N       int `json:"n"`
		Block   int `json:"block"`
		Results []struct {
			Strategy string `json:"strategy"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 24, report.N)
	assert.Equal(t, 5, report.Block)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "blocked", report.Results[0].Strategy)
	assert.Equal(t, "blocked-library", report.Results[1].Strategy)
}

func TestRootFlagsOverrideConfigFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.N = 16
	cfg.Block = 4
	cfg.Repeats = 1
	cfg.Format = config.FormatJSON
	path := filepath.Join(t.TempDir(), "matbench.yaml")
	require.NoError(t, cfg.Save(path))

	out, err := execute(t, "--config", path, "--block", "8")
	require.NoError(t, err)

	var report struct {
		N     int `json:"n"`
		Block int `json:"block"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 16, report.N, "unset flags keep the file value")
	assert.Equal(t, 8, report.Block)
}

func TestRootRejectsInvalidInput(t *testing.T) {
	_, err := execute(t, "--n", "0")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = execute(t, "--n", "16", "--strategies", "strassen")
	assert.Error(t, err)

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCPUInfoCommand(t *testing.T) {
	out, err := execute(t, "cpuinfo")
	require.NoError(t, err)
	assert.Contains(t, out, "GOARCH")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "matbench.yaml")

	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+path+"\n", out)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().N, loaded.N)

	_, err = execute(t, "config", "init", path)
	assert.ErrorContains(t, err, "already exists")

	require.NoError(t, os.WriteFile(path, []byte("n: 1\n"), 0o644))
	_, err = execute(t, "config", "init", "--force", path)
	require.NoError(t, err)
	loaded, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().N, loaded.N)
}
