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
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense row-major float64 matrix.
type Matrix struct {
	Rows int
	Cols int
	Data []float64
}

// New returns a zeroed rows x cols matrix.
func New(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic("matmul: negative matrix dimension")
	}
	return &Matrix{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// NewRandom returns a rows x cols matrix with entries drawn uniformly from
// [0, 1) in row-major order.
func NewRandom(rows, cols int, rng *rand.Rand) *Matrix {
	m := New(rows, cols)
	for i := range m.Data {
		m.Data[i] = rng.Float64()
	}
	return m
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.Data[i*m.Cols+j]
}

// Set stores v at row i, column j.
func (m *Matrix) Set(i, j int, v float64) {
	m.Data[i*m.Cols+j] = v
}

// Leading returns a copy of the top-left rows x cols block, clipped to the
// matrix shape.
func (m *Matrix) Leading(rows, cols int) *Matrix {
	rows = min(rows, m.Rows)
	cols = min(cols, m.Cols)
	out := New(rows, cols)
	for i := range rows {
		copy(out.Data[i*cols:(i+1)*cols], m.Data[i*m.Cols:i*m.Cols+cols])
	}
	return out
}

// Dense returns a gonum view of m. The view shares storage with m.
// Like mat.NewDense it panics for an empty matrix.
func (m *Matrix) Dense() *mat.Dense {
	return mat.NewDense(m.Rows, m.Cols, m.Data)
}
