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

// Package cpuinfo reports the CPU features that determine how fast the
// BLAS-backed strategy can go, so benchmark results carry their context.
package cpuinfo

import (
	"fmt"
	"io"
	"runtime"
	"slices"
)

// Level represents the widest SIMD instruction set detected.
type Level int

const (
	// LevelScalar indicates no usable SIMD extension.
	LevelScalar Level = iota

	// LevelSSE2 indicates SSE2 instructions (x86-64 baseline).
	LevelSSE2

	// LevelAVX2 indicates AVX2 instructions (256-bit SIMD).
	LevelAVX2

	// LevelAVX512 indicates AVX-512 instructions (512-bit SIMD).
	LevelAVX512

	// LevelNEON indicates ARM NEON instructions (128-bit SIMD).
	LevelNEON

	// LevelSVE indicates ARM SVE instructions (scalable vector).
	LevelSVE
)

// String returns a human-readable name for the level.
func (l Level) String() string {
	switch l {
	case LevelScalar:
		return "scalar"
	case LevelSSE2:
		return "sse2"
	case LevelAVX2:
		return "avx2"
	case LevelAVX512:
		return "avx512"
	case LevelNEON:
		return "neon"
	case LevelSVE:
		return "sve"
	default:
		return "unknown"
	}
}

// MarshalText lets reports encode the level by name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Info describes the machine a benchmark ran on.
type Info struct {
	GOOS     string   `json:"goos" yaml:"goos"`
	GOARCH   string   `json:"goarch" yaml:"goarch"`
	NumCPU   int      `json:"num_cpu" yaml:"num_cpu"`
	Level    Level    `json:"level" yaml:"level"`
	Width    int      `json:"width_bytes" yaml:"width_bytes"`
	Features []string `json:"features" yaml:"features"`
}

// Detect returns the Info for the running process.
func Detect() Info {
	level, width := detectLevel()
	features := detectFeatures()
	slices.Sort(features)
	return Info{
		GOOS:     runtime.GOOS,
		GOARCH:   runtime.GOARCH,
		NumCPU:   runtime.NumCPU(),
		Level:    level,
		Width:    width,
		Features: features,
	}
}

// MaxLanes returns how many float64 values fit in one SIMD register.
func (i Info) MaxLanes() int {
	return i.Width / 8
}

// String is a one-line summary, e.g. "linux/amd64 avx2 (32 bytes), 8 CPUs".
func (i Info) String() string {
	return fmt.Sprintf("%s/%s %s (%d bytes), %d CPUs", i.GOOS, i.GOARCH, i.Level, i.Width, i.NumCPU)
}

// Write prints the full feature listing.
func (i Info) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "GOOS: %s\nGOARCH: %s\nNumCPU: %d\n\n", i.GOOS, i.GOARCH, i.NumCPU); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "SIMD level: %s\nSIMD width: %d bytes (%d float64 lanes)\n", i.Level, i.Width, i.MaxLanes()); err != nil {
		return err
	}
	if len(i.Features) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nFeatures:"); err != nil {
		return err
	}
	for _, f := range i.Features {
		if _, err := fmt.Fprintf(w, "  %s\n", f); err != nil {
			return err
		}
	}
	return nil
}
