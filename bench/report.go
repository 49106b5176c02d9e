// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ajroetker/matbench/config"
	"github.com/ajroetker/matbench/internal/cpuinfo"
	"github.com/ajroetker/matbench/matmul"
)

// Report is the outcome of one benchmark run.
type Report struct {
	RunID     string        `json:"run_id" yaml:"run_id"`
	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	N         int           `json:"n" yaml:"n"`
	Block     int           `json:"block" yaml:"block"`
	Seed      uint64        `json:"seed" yaml:"seed"`
	CPU       cpuinfo.Info  `json:"cpu" yaml:"cpu"`
	Results   []Result      `json:"results" yaml:"results"`
	Skipped   []Skip        `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Checks    []Check       `json:"checks,omitempty" yaml:"checks,omitempty"`
	Elapsed   time.Duration `json:"elapsed_ns" yaml:"elapsed"`
}

// Result is the timing of one strategy.
type Result struct {
	Strategy string `json:"strategy" yaml:"strategy"`
	// Size is the edge of the square matrices actually multiplied.
	Size   int     `json:"size" yaml:"size"`
	Block  int     `json:"block,omitempty" yaml:"block,omitempty"`
	Timing Timing  `json:"timing" yaml:"timing"`
	GFLOPS float64 `json:"gflops" yaml:"gflops"`
}

// Skip records a selected strategy that did not run.
type Skip struct {
	Strategy string `json:"strategy" yaml:"strategy"`
	Reason   string `json:"reason" yaml:"reason"`
}

// Check is the comparison of one strategy's product against the library
// product on their leading Size x Size block.
type Check struct {
	Strategy   string  `json:"strategy" yaml:"strategy"`
	Size       int     `json:"size" yaml:"size"`
	Close      bool    `json:"close" yaml:"close"`
	MaxAbsDiff float64 `json:"max_abs_diff" yaml:"max_abs_diff"`
	Atol       float64 `json:"atol" yaml:"atol"`
	Rtol       float64 `json:"rtol" yaml:"rtol"`
}

// Passed reports whether every correctness check passed.
func (r *Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Close {
			return false
		}
	}
	return true
}

// Write encodes the report in the given format.
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case config.FormatText:
		return r.WriteText(w)
	case config.FormatJSON:
		return r.WriteJSON(w)
	case config.FormatYAML:
		return r.WriteYAML(w)
	default:
		return fmt.Errorf("bench: unknown report format %q", format)
	}
}

// WriteText prints the human-readable summary:
//
//	Running n=256, block=64
//	library: min 0.000912s, mean 0.000950s, trials [0.001001 0.000912 0.000937] (36.79 GFLOP/s)
//	blocked: min 0.021330s, ...
//	blocked correctness: true
func (r *Report) WriteText(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Running n=%d, block=%d\n", r.N, r.Block)
	fmt.Fprintf(&sb, "cpu: %s\n", r.CPU)

	for _, res := range r.Results {
		label := res.Strategy
		if res.Strategy == matmul.StrategyNaive.String() {
			label = fmt.Sprintf("%s (%dx%d)", res.Strategy, res.Size, res.Size)
		}
		t := res.Timing
		if len(t.TrialSeconds) == 1 {
			fmt.Fprintf(&sb, "%s: %.6fs (%.2f GFLOP/s)\n", label, t.MinSeconds, res.GFLOPS)
			continue
		}
		trials := make([]string, len(t.TrialSeconds))
		for i, s := range t.TrialSeconds {
			trials[i] = fmt.Sprintf("%.6f", s)
		}
		fmt.Fprintf(&sb, "%s: min %.6fs, mean %.6fs, trials [%s] (%.2f GFLOP/s)\n",
			label, t.MinSeconds, t.MeanSeconds, strings.Join(trials, " "), res.GFLOPS)
	}

	for _, c := range r.Checks {
		fmt.Fprintf(&sb, "%s correctness: %t\n", c.Strategy, c.Close)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteJSON encodes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteYAML encodes the report as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
