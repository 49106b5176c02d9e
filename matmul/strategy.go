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
	"errors"
	"fmt"
)

var (
	// ErrShape is returned when operand dimensions do not line up.
	ErrShape = errors.New("matmul: dimension mismatch")

	// ErrBlockSize is returned for a non-positive tile size.
	ErrBlockSize = errors.New("matmul: block size must be positive")

	// ErrUnknownStrategy is returned by ParseStrategy for unrecognized names.
	ErrUnknownStrategy = errors.New("matmul: unknown strategy")
)

// Strategy identifies one of the multiplication kernels.
type Strategy int

const (
	// StrategyNaive is the textbook triple loop (NaiveMatMul).
	StrategyNaive Strategy = iota

	// StrategyBlocked is pure Go cache tiling (BlockedMatMul).
	StrategyBlocked

	// StrategyLibrary is a single BLAS GEMM call (LibraryMatMul).
	StrategyLibrary

	// StrategyBlockedLibrary is tiling with BLAS tile products
	// (BlockedLibraryMatMul).
	StrategyBlockedLibrary
)

// Strategies lists every strategy in declaration order.
var Strategies = []Strategy{StrategyNaive, StrategyBlocked, StrategyLibrary, StrategyBlockedLibrary}

// String returns the name used on the command line and in reports.
func (s Strategy) String() string {
	switch s {
	case StrategyNaive:
		return "naive"
	case StrategyBlocked:
		return "blocked"
	case StrategyLibrary:
		return "library"
	case StrategyBlockedLibrary:
		return "blocked-library"
	default:
		return "unknown"
	}
}

// UsesBlock reports whether the strategy takes a tile size.
func (s Strategy) UsesBlock() bool {
	return s == StrategyBlocked || s == StrategyBlockedLibrary
}

// ParseStrategy maps a name produced by String back to its Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// MulInto computes dst = a * b with strategy s. block is ignored by
// strategies that do not tile.
func (s Strategy) MulInto(dst, a, b *Matrix, block int) error {
	if a.Cols != b.Rows {
		return fmt.Errorf("%w: A is %dx%d, B is %dx%d", ErrShape, a.Rows, a.Cols, b.Rows, b.Cols)
	}
	if dst.Rows != a.Rows || dst.Cols != b.Cols {
		return fmt.Errorf("%w: C is %dx%d, want %dx%d", ErrShape, dst.Rows, dst.Cols, a.Rows, b.Cols)
	}
	if s.UsesBlock() && block <= 0 {
		return fmt.Errorf("%w: got %d", ErrBlockSize, block)
	}

	m, n, k := a.Rows, b.Cols, a.Cols
	switch s {
	case StrategyNaive:
		NaiveMatMul(a.Data, b.Data, dst.Data, m, n, k)
	case StrategyBlocked:
		BlockedMatMul(a.Data, b.Data, dst.Data, m, n, k, block)
	case StrategyLibrary:
		LibraryMatMul(a.Data, b.Data, dst.Data, m, n, k)
	case StrategyBlockedLibrary:
		BlockedLibraryMatMul(a.Data, b.Data, dst.Data, m, n, k, block)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return nil
}

// Mul returns a * b computed with strategy s.
func (s Strategy) Mul(a, b *Matrix, block int) (*Matrix, error) {
	if a.Cols != b.Rows {
		return nil, fmt.Errorf("%w: A is %dx%d, B is %dx%d", ErrShape, a.Rows, a.Cols, b.Rows, b.Cols)
	}
	c := New(a.Rows, b.Cols)
	if err := s.MulInto(c, a, b, block); err != nil {
		return nil, err
	}
	return c, nil
}
