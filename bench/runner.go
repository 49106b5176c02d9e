// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package bench times the matmul strategies against each other on random
// square matrices and checks the tiled results against the library product.
//
// Usage:
//
//	runner, err := bench.NewRunner(config.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	report, err := runner.Run(ctx)
//	if err != nil {
//	    return err
//	}
//	report.WriteText(os.Stdout)
package bench

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ajroetker/matbench/config"
	"github.com/ajroetker/matbench/internal/cpuinfo"
	"github.com/ajroetker/matbench/matmul"
)

// runOrder is the order strategies are timed in: the library first so its
// product is available as the reference, the slow naive loop last.
var runOrder = []matmul.Strategy{
	matmul.StrategyLibrary,
	matmul.StrategyBlocked,
	matmul.StrategyBlockedLibrary,
	matmul.StrategyNaive,
}

// Runner executes one benchmark configuration.
type Runner struct {
	cfg        *config.Config
	strategies []matmul.Strategy
	logger     *zap.Logger
	cpu        cpuinfo.Info
}

// NewRunner validates cfg and returns a Runner. A nil logger disables logging.
func NewRunner(cfg *config.Config, logger *zap.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	strategies, err := cfg.ParsedStrategies()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:        cfg,
		strategies: strategies,
		logger:     logger,
		cpu:        cpuinfo.Detect(),
	}, nil
}

// Run generates the input matrices and times every selected strategy.
//
// The sequence is: an untimed library warm-up, the timed strategies in
// library, blocked, blocked-library, naive order, then the correctness
// checks. The naive loop only runs when N <= NaiveMaxN, and the checks only
// when N >= CheckSize.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	cfg := r.cfg
	n := cfg.N
	start := time.Now()

	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: start,
		N:         n,
		Block:     cfg.Block,
		Seed:      cfg.Seed,
		CPU:       r.cpu,
	}
	logger := r.logger.With(zap.String("run_id", report.RunID))
	logger.Info("starting benchmark",
		zap.Int("n", n),
		zap.Int("block", cfg.Block),
		zap.Int("repeats", cfg.Repeats),
		zap.Uint64("seed", cfg.Seed),
		zap.Stringer("cpu", r.cpu))

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	a := matmul.NewRandom(n, n, rng)
	b := matmul.NewRandom(n, n, rng)

	if cfg.Warmup {
		logger.Debug("warm-up", zap.Stringer("strategy", matmul.StrategyLibrary))
		if err := matmul.StrategyLibrary.MulInto(matmul.New(n, n), a, b, 0); err != nil {
			return nil, fmt.Errorf("warm-up: %w", err)
		}
	}

	products := make(map[matmul.Strategy]*matmul.Matrix)
	for _, s := range runOrder {
		if !slices.Contains(r.strategies, s) {
			continue
		}

		repeats := cfg.Repeats
		if s == matmul.StrategyNaive {
			if n > cfg.NaiveMaxN {
				reason := fmt.Sprintf("n=%d exceeds naive_max_n=%d", n, cfg.NaiveMaxN)
				logger.Debug("skipping strategy", zap.Stringer("strategy", s), zap.String("reason", reason))
				report.Skipped = append(report.Skipped, Skip{Strategy: s.String(), Reason: reason})
				continue
			}
			repeats = cfg.NaiveRepeats
		}

		res, c, err := r.timeStrategy(ctx, logger, s, a, b, repeats)
		if err != nil {
			return nil, err
		}
		report.Results = append(report.Results, res)
		products[s] = c
	}

	if n >= cfg.CheckSize {
		checks, err := r.check(logger, a, b, products)
		if err != nil {
			return nil, err
		}
		report.Checks = checks
	}

	report.Elapsed = time.Since(start)
	logger.Info("benchmark finished",
		zap.Int("strategies", len(report.Results)),
		zap.Bool("passed", report.Passed()),
		zap.Duration("elapsed", report.Elapsed))
	return report, nil
}

func (r *Runner) timeStrategy(ctx context.Context, logger *zap.Logger, s matmul.Strategy, a, b *matmul.Matrix, repeats int) (Result, *matmul.Matrix, error) {
	n := a.Rows
	c := matmul.New(n, n)

	logger.Debug("timing strategy", zap.Stringer("strategy", s), zap.Int("repeats", repeats))

	var mulErr error
	timing, err := TimeFunc(ctx, func() {
		if mulErr == nil {
			mulErr = s.MulInto(c, a, b, r.cfg.Block)
		}
	}, repeats)
	if err != nil {
		return Result{}, nil, fmt.Errorf("%s: %w", s, err)
	}
	if mulErr != nil {
		return Result{}, nil, fmt.Errorf("%s: %w", s, mulErr)
	}

	res := Result{
		Strategy: s.String(),
		Size:     n,
		Timing:   timing,
		GFLOPS:   GFLOPS(matmul.FLOPs(n, n, n), timing.Min),
	}
	if s.UsesBlock() {
		res.Block = r.cfg.Block
	}

	logger.Debug("strategy timed",
		zap.Stringer("strategy", s),
		zap.Duration("min", timing.Min),
		zap.Float64("gflops", res.GFLOPS))
	return res, c, nil
}

// check compares the leading CheckSize block of every non-library product
// against the library product, computing the reference if the library
// strategy was not timed.
func (r *Runner) check(logger *zap.Logger, a, b *matmul.Matrix, products map[matmul.Strategy]*matmul.Matrix) ([]Check, error) {
	ref, ok := products[matmul.StrategyLibrary]
	if !ok {
		var err error
		ref, err = matmul.StrategyLibrary.Mul(a, b, 0)
		if err != nil {
			return nil, fmt.Errorf("reference product: %w", err)
		}
	}

	size := r.cfg.CheckSize
	want := ref.Leading(size, size)

	var checks []Check
	for _, s := range runOrder {
		c, ok := products[s]
		if !ok || s == matmul.StrategyLibrary {
			continue
		}
		got := c.Leading(size, size)
		check := Check{
			Strategy:   s.String(),
			Size:       size,
			Close:      matmul.AllClose(got.Data, want.Data, r.cfg.Rtol, r.cfg.Atol),
			MaxAbsDiff: matmul.MaxAbsDiff(got.Data, want.Data),
			Atol:       r.cfg.Atol,
			Rtol:       r.cfg.Rtol,
		}
		if check.Close {
			logger.Debug("correctness check passed", zap.Stringer("strategy", s), zap.Float64("max_abs_diff", check.MaxAbsDiff))
		} else {
			logger.Warn("correctness check failed", zap.Stringer("strategy", s), zap.Float64("max_abs_diff", check.MaxAbsDiff))
		}
		checks = append(checks, check)
	}
	return checks, nil
}
