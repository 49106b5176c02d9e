package matmul_test

import (
	"fmt"

	"github.com/ajroetker/matbench/matmul"
)

func ExampleBlockedMatMul() {
	// 2x3 * 3x2 = 2x2
	a := []float64{1, 2, 3, 4, 5, 6}
	b := []float64{7, 8, 9, 10, 11, 12}
	c := make([]float64, 4)

	matmul.BlockedMatMul(a, b, c, 2, 2, 3, 2)
	fmt.Println(c)
	// Output: [58 64 139 154]
}

func ExampleStrategy_Mul() {
	a := &matmul.Matrix{Rows: 2, Cols: 2, Data: []float64{1, 2, 3, 4}}
	b := &matmul.Matrix{Rows: 2, Cols: 2, Data: []float64{5, 6, 7, 8}}

	for _, s := range matmul.Strategies {
		c, err := s.Mul(a, b, matmul.DefaultBlockSize)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf("%s: %v\n", s, c.Data)
	}
	// Output:
	// naive: [19 22 43 50]
	// blocked: [19 22 43 50]
	// library: [19 22 43 50]
	// blocked-library: [19 22 43 50]
}

func ExampleAllClose() {
	ref := []float64{1, 2, 3}
	got := []float64{1, 2, 3.0000000001}

	fmt.Println(matmul.AllClose(got, ref, matmul.DefaultRtol, matmul.DefaultAtol))
	// Output: true
}
