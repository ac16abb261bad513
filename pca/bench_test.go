// SPDX-License-Identifier: MIT
// Package pca_test provides benchmarks for the fit and the per-frame recover
// path, using deterministic random samples.
package pca_test

import (
	"fmt"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/AndersHqst/estimating-gaze-direction/pca"
)

// sinks to defeat dead-code elimination
var (
	sinkModel *pca.Model
	sinkDense *mat.Dense
)

func BenchmarkFit(b *testing.B) {
	b.ReportAllocs()
	for _, f := range []int{64, 256} {
		b.Run(fmt.Sprintf("f=%d", f), func(b *testing.B) {
			X := correlatedSamples(1337, 2*f, f)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := pca.Fit(X)
				if err != nil {
					b.Fatal(err)
				}
				sinkModel = m
			}
		})
	}
}

// BenchmarkRecoverSamples measures one viewer frame: a single 20-coefficient
// sample mapped back to a 28×42 eye image.
func BenchmarkRecoverSamples(b *testing.B) {
	b.ReportAllocs()
	m := mustFit(b, correlatedSamples(4242, 2000, 28*42))
	coeffs := mat.NewDense(1, 20, nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out, err := m.RecoverSamples(coeffs, 20)
		if err != nil {
			b.Fatal(err)
		}
		sinkDense = out
	}
}
