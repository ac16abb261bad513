// SPDX-License-Identifier: MIT

package pca_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/AndersHqst/estimating-gaze-direction/pca"
)

// ExampleFit reduces points on a line to a single coordinate and recovers
// them without loss.
func ExampleFit() {
	X := mat.NewDense(4, 2, []float64{
		1, 2,
		2, 4,
		3, 6,
		4, 8,
	})
	m, err := pca.Fit(X)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	back, _ := m.Reconstruct(X, 1)
	mse, _ := pca.ReconstructionError(X, back)
	fmt.Printf("values: %.3f %.3f\n", m.Basis().Values()[0], m.Basis().Values()[1])
	fmt.Printf("mse at k=1: %.3f\n", mse)

	// Output:
	// values: 2.000 0.000
	// mse at k=1: 0.000
}

// ExampleAnalyzeVariance shows the shortfall curve that a user inspects
// before picking k.
func ExampleAnalyzeVariance() {
	r, err := pca.AnalyzeVariance([]float64{4, 2, 1, 1}, 0.7)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("k:", r.K)
	for i, s := range r.Shortfall {
		fmt.Printf("k=%d shortfall=%.3f\n", i+1, s)
	}

	// Output:
	// k: 2
	// k=1 shortfall=0.500
	// k=2 shortfall=0.250
}
