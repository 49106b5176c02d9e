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

// NaiveMatMul computes C = A * B with the textbook triple loop.
// C[i,j] = sum(A[i,p] * B[p,j]) for p in 0..K-1
//
//   - A is M x K (row-major)
//   - B is K x N (row-major)
//   - C is M x N (row-major)
//
// Every output cell is accumulated in a scalar and written once, so C does
// not need to be cleared by the caller. B is walked down its columns, which
// is exactly the access pattern the blocked kernel avoids.
func NaiveMatMul(a, b, c []float64, m, n, k int) {
	checkSlices(a, b, c, m, n, k)

	for i := range m {
		aRow := a[i*k : i*k+k]
		for j := range n {
			var sum float64
			for p, aip := range aRow {
				sum += aip * b[p*n+j]
			}
			c[i*n+j] = sum
		}
	}
}

// FLOPs returns the floating-point operation count of one M x K by K x N
// product: one multiply and one add per inner step.
func FLOPs(m, n, k int) int64 {
	return 2 * int64(m) * int64(n) * int64(k)
}

func checkSlices(a, b, c []float64, m, n, k int) {
	if len(a) < m*k {
		panic("matmul: A slice too short")
	}
	if len(b) < k*n {
		panic("matmul: B slice too short")
	}
	if len(c) < m*n {
		panic("matmul: C slice too short")
	}
}
