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
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// LibraryMatMul computes C = A * B with a single BLAS GEMM call.
//
// The call goes through blas64, so the implementation is gonum's native
// assembly-backed one unless the process registered another with blas64.Use.
func LibraryMatMul(a, b, c []float64, m, n, k int) {
	checkSlices(a, b, c, m, n, k)
	if m == 0 || n == 0 {
		return
	}
	if k == 0 {
		clear(c[:m*n])
		return
	}

	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
		general(a, 0, 0, m, k, k),
		general(b, 0, 0, k, n, n),
		0,
		general(c, 0, 0, m, n, n))
}

// BlockedLibraryMatMul computes C = A * B by walking block x block tiles and
// delegating every tile product to BLAS:
//
//	C[ii:ii+bs, jj:jj+bs] += A[ii:ii+bs, kk:kk+bs] * B[kk:kk+bs, jj:jj+bs]
//
// This measures how much of the library's speed survives when it only ever
// sees small operands.
func BlockedLibraryMatMul(a, b, c []float64, m, n, k, block int) {
	checkSlices(a, b, c, m, n, k)
	if block <= 0 {
		panic("matmul: block size must be positive")
	}

	clear(c[:m*n])

	for i0 := 0; i0 < m; i0 += block {
		rows := min(block, m-i0)
		for j0 := 0; j0 < n; j0 += block {
			cols := min(block, n-j0)
			cTile := general(c, i0, j0, rows, cols, n)
			for p0 := 0; p0 < k; p0 += block {
				depth := min(block, k-p0)
				blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
					general(a, i0, p0, rows, depth, k),
					general(b, p0, j0, depth, cols, n),
					1,
					cTile)
			}
		}
	}
}

// general returns a rows x cols view of the row-major data whose top-left
// element is (r0, c0) and whose row length is stride.
func general(data []float64, r0, c0, rows, cols, stride int) blas64.General {
	return blas64.General{
		Rows:   rows,
		Cols:   cols,
		Stride: stride,
		Data:   data[r0*stride+c0:],
	}
}
