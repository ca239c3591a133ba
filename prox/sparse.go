// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prox

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Sparse is the proximal operator of the ℓ1-norm penalty 𝜆·Σ|𝜃ᵢⱼ|,
// realized as elementwise soft thresholding with threshold 𝜆/𝜌.
type Sparse struct {
	penalty float64
}

// NewSparse creates a soft-thresholding operator with ℓ1 weight penalty.
func NewSparse(penalty float64) (*Sparse, error) {
	if !(penalty > 0) {
		return nil, fmt.Errorf("%w: sparse penalty must be positive", ErrInvalidConfig)
	}
	return &Sparse{penalty: penalty}, nil
}

// Apply shrinks every element toward zero by penalty/rho, zeroing elements
// inside the threshold band.
func (s *Sparse) Apply(v mat.Matrix, rho float64) (*mat.Dense, error) {
	lambda := s.penalty / rho
	out := mat.DenseCopyOf(v)
	out.Apply(func(_, _ int, x float64) float64 {
		switch {
		case x >= lambda:
			return x - lambda
		case x <= -lambda:
			return x + lambda
		}
		return 0
	}, out)
	return out, nil
}

// Objective returns the ℓ1-norm of theta over all elements.
func (s *Sparse) Objective(theta mat.Matrix) float64 {
	r, c := theta.Dims()
	sum := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			sum += math.Abs(theta.At(i, j))
		}
	}
	return sum
}
