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

// DefaultBlockSize is the tile edge used when none is given.
// 3 tiles of 64x64 float64 = 3 * 64 * 64 * 8 = 96KB, within a typical L2.
const DefaultBlockSize = 64

// BlockedMatMul computes C = A * B using cache tiling.
//
//   - A is M x K (row-major)
//   - B is K x N (row-major)
//   - C is M x N (row-major)
//
// The output is walked in block x block tiles; for each tile the K dimension
// is consumed block columns at a time so one tile of A, B and C is live at
// once. Inside a tile the loop order is i, p, j: A[i,p] is hoisted and B and C
// are streamed along their rows. Tiles at the right and bottom edges are
// clipped when a dimension is not a multiple of block.
func BlockedMatMul(a, b, c []float64, m, n, k, block int) {
	checkSlices(a, b, c, m, n, k)
	if block <= 0 {
		panic("matmul: block size must be positive")
	}

	clear(c[:m*n])

	for i0 := 0; i0 < m; i0 += block {
		iEnd := min(i0+block, m)

		for j0 := 0; j0 < n; j0 += block {
			jEnd := min(j0+block, n)

			for p0 := 0; p0 < k; p0 += block {
				pEnd := min(p0+block, k)

				for i := i0; i < iEnd; i++ {
					cRow := c[i*n+j0 : i*n+jEnd]
					for p := p0; p < pEnd; p++ {
						aip := a[i*k+p]
						bRow := b[p*n+j0 : p*n+jEnd]
						for j, bpj := range bRow {
							cRow[j] += aip * bpj
						}
					}
				}
			}
		}
	}
}
