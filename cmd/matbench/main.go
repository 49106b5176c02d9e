// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command matbench compares matrix multiplication strategies on random
// square matrices.
//
// Usage:
//
//	matbench [flags]
//	matbench cpuinfo
//	matbench config init [path]
//
// Examples:
//
//	matbench
//	matbench --n 1024 --block 128 --strategies library,blocked,blocked-library
//	matbench --n 128 --format json
//	matbench --config matbench.yaml --verbose
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ajroetker/matbench/bench"
	"github.com/ajroetker/matbench/config"
)

// errChecksFailed makes the process exit non-zero after the report has been
// printed.
var errChecksFailed = errors.New("correctness check failed")

// options holds the values bound to command-line flags.
type options struct {
	configPath string
	verbose    bool

	n          int
	block      int
	repeats    int
	seed       uint64
	format     string
	strategies []string
}

// cli carries the state shared by the command tree.
type cli struct {
	opts   options
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "matbench",
		Short: "Compare matrix multiplication strategies",
		Long: `matbench multiplies two random N x N matrices with several strategies
and reports their timings:

  library          one BLAS GEMM call (gonum)
  blocked          cache-blocked tiling in pure Go
  blocked-library  tiling with each tile product done by BLAS
  naive            the textbook triple loop (only for small N)

When N is at least the check size, the leading block of every product is
compared with the library product.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.initLogger,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
		Args: cobra.NoArgs,
		RunE: c.runBenchmark,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&c.opts.configPath, "config", "", "path to a YAML config file")
	pf.BoolVarP(&c.opts.verbose, "verbose", "v", false, "enable debug logging")

	defaults := config.DefaultConfig()
	f := rootCmd.Flags()
	f.IntVar(&c.opts.n, "n", defaults.N, "matrix dimension")
	f.IntVar(&c.opts.block, "block", defaults.Block, "block size for the blocked strategies")
	f.IntVar(&c.opts.repeats, "repeats", defaults.Repeats, "timed trials per strategy")
	f.Uint64Var(&c.opts.seed, "seed", defaults.Seed, "random seed for the input matrices")
	f.StringVar(&c.opts.format, "format", defaults.Format, "report format: text, json or yaml")
	f.StringSliceVar(&c.opts.strategies, "strategies", defaults.Strategies, "strategies to time")

	rootCmd.AddCommand(newCPUInfoCmd(), newConfigCmd())
	return rootCmd
}

func (c *cli) initLogger(cmd *cobra.Command, args []string) error {
	cfg := zap.NewProductionConfig()
	if c.opts.verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.logger = logger
	return nil
}

// loadConfig resolves the configuration: defaults, then the config file and
// environment, then flags the user set explicitly.
func (c *cli) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(c.opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("n") {
		cfg.N = c.opts.n
	}
	if flags.Changed("block") {
		cfg.Block = c.opts.block
	}
	if flags.Changed("repeats") {
		cfg.Repeats = c.opts.repeats
	}
	if flags.Changed("seed") {
		cfg.Seed = c.opts.seed
	}
	if flags.Changed("format") {
		cfg.Format = c.opts.format
	}
	if flags.Changed("strategies") {
		cfg.Strategies = c.opts.strategies
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *cli) runBenchmark(cmd *cobra.Command, args []string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, err := bench.NewRunner(cfg, c.logger)
	if err != nil {
		return err
	}
	report, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}

	if err := report.Write(cmd.OutOrStdout(), cfg.Format); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if !report.Passed() {
		return errChecksFailed
	}
	return nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
