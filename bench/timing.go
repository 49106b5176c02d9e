// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// ErrRepeats is returned when fewer than one trial is requested.
var ErrRepeats = errors.New("bench: repeats must be at least 1")

// Timing summarizes repeated wall-clock measurements of one function.
// The Seconds fields carry the same values for encoded reports.
type Timing struct {
	Trials []time.Duration `json:"-" yaml:"-"`
	Min    time.Duration   `json:"-" yaml:"-"`

	TrialSeconds  []float64 `json:"trials_s" yaml:"trials_s"`
	MinSeconds    float64   `json:"min_s" yaml:"min_s"`
	MeanSeconds   float64   `json:"mean_s" yaml:"mean_s"`
	StdDevSeconds float64   `json:"stddev_s" yaml:"stddev_s"`
}

// NewTiming builds a Timing from raw trial durations. It panics on an empty
// slice.
func NewTiming(trials []time.Duration) Timing {
	if len(trials) == 0 {
		panic("bench: no trials")
	}

	secs := lo.Map(trials, func(d time.Duration, _ int) float64 { return d.Seconds() })
	mean, std := stat.MeanStdDev(secs, nil)
	if len(secs) < 2 || math.IsNaN(std) {
		std = 0
	}

	minTrial := lo.Min(trials)
	return Timing{
		Trials:        trials,
		Min:           minTrial,
		TrialSeconds:  secs,
		MinSeconds:    minTrial.Seconds(),
		MeanSeconds:   mean,
		StdDevSeconds: std,
	}
}

// TimeFunc calls fn repeats times and measures each call with the monotonic
// clock. The context is checked before every trial; a cancelled context
// aborts the measurement and returns its error.
func TimeFunc(ctx context.Context, fn func(), repeats int) (Timing, error) {
	if repeats < 1 {
		return Timing{}, fmt.Errorf("%w: got %d", ErrRepeats, repeats)
	}

	trials := make([]time.Duration, 0, repeats)
	for range repeats {
		if err := ctx.Err(); err != nil {
			return Timing{}, err
		}
		t0 := time.Now()
		fn()
		trials = append(trials, time.Since(t0))
	}
	return NewTiming(trials), nil
}

// GFLOPS returns the rate of flops floating-point operations done in d.
// A zero duration yields 0 rather than +Inf so reports stay encodable.
func GFLOPS(flops int64, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(flops) / d.Seconds() / 1e9
}
