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

package matmul

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Default tolerances for AllClose, matching the usual allclose defaults.
const (
	DefaultRtol = 1e-5
	DefaultAtol = 1e-8
)

// AllClose reports whether every element satisfies
//
//	|a[i] - b[i]| <= atol + rtol*|b[i]|
//
// b is the reference, so the test is not symmetric. NaN never compares
// close, infinities only match an equal infinity, and slices of different
// length are never close.
func AllClose(a, b []float64, rtol, atol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i, want := range b {
		got := a[i]
		if got == want {
			continue
		}
		if math.IsNaN(got) || math.IsNaN(want) || math.IsInf(got, 0) || math.IsInf(want, 0) {
			return false
		}
		if math.Abs(got-want) > atol+rtol*math.Abs(want) {
			return false
		}
	}
	return true
}

// MaxAbsDiff returns max |a[i] - b[i]|. It panics if the lengths differ.
func MaxAbsDiff(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("matmul: slice lengths differ")
	}
	if len(a) == 0 {
		return 0
	}
	return floats.Distance(a, b, math.Inf(1))
}
