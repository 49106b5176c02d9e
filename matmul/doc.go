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

// Package matmul provides float64 matrix multiplication kernels that are
// compared against each other by the benchmark harness.
//
// All kernels use row-major storage and the same argument convention:
//
//	// C = A * B where A is MxK, B is KxN, C is MxN
//	a := make([]float64, M*K)
//	b := make([]float64, K*N)
//	c := make([]float64, M*N)
//
//	matmul.BlockedMatMul(a, b, c, M, N, K, 64)
//
// The available strategies are:
//   - NaiveMatMul: textbook triple loop
//   - BlockedMatMul: cache-blocked tiling in pure Go
//   - LibraryMatMul: a single BLAS GEMM call through gonum
//   - BlockedLibraryMatMul: tiling with each tile product delegated to BLAS
//
// Matrix and Strategy wrap the raw kernels with shape checking for callers
// that prefer errors to panics.
package matmul
