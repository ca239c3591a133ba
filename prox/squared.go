// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prox

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SquaredError is the proximal operator of the squared distance to a fixed
// reference point. Its proximal map is the closed-form weighted average
//
//	(𝐯 + 𝐱ᵒᵇˢ/𝜌) / (1 + 1/𝜌)
//
// which interpolates between the reference (𝜌 → 0) and the input (𝜌 → ∞).
type SquaredError struct {
	observed *mat.Dense
}

// NewSquaredError creates an operator anchored at observed. The reference
// is copied, so later mutation of the caller's matrix has no effect.
func NewSquaredError(observed mat.Matrix) (*SquaredError, error) {
	if observed == nil {
		return nil, fmt.Errorf("%w: squared_error requires an observed reference", ErrInvalidConfig)
	}
	return &SquaredError{observed: mat.DenseCopyOf(observed)}, nil
}

// Apply returns the weighted average of v and the stored reference.
func (s *SquaredError) Apply(v mat.Matrix, rho float64) (*mat.Dense, error) {
	or, oc := s.observed.Dims()
	vr, vc := v.Dims()
	if vr != or || vc != oc {
		return nil, fmt.Errorf("prox: squared_error: point is %d×%d, want %d×%d", vr, vc, or, oc)
	}
	out := mat.NewDense(or, oc, nil)
	scale := 1 / (1 + 1/rho)
	for i := 0; i < or; i++ {
		for j := 0; j < oc; j++ {
			out.Set(i, j, (v.At(i, j)+s.observed.At(i, j)/rho)*scale)
		}
	}
	return out, nil
}

// Objective returns the Euclidean distance between theta and the reference.
func (s *SquaredError) Objective(theta mat.Matrix) float64 {
	var d mat.Dense
	d.Sub(s.observed, theta)
	return mat.Norm(&d, 2)
}
