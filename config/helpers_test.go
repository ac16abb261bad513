// SPDX-License-Identifier: MIT

package config

import "gonum.org/v1/gonum/mat"

func pcaFixture() *mat.Dense {
	return mat.NewDense(4, 2, []float64{1, 2, 2, 1, 3, 5, 4, 3})
}
