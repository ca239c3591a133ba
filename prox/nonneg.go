// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prox

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// NonNeg projects onto the non-negative orthant: the proximal operator of
// the indicator function of {𝛉 : 𝜃ᵢⱼ ≥ 0}.
type NonNeg struct{}

// NewNonNeg creates a non-negativity projection.
func NewNonNeg() *NonNeg { return &NonNeg{} }

// Apply clamps every element at zero. The weight is ignored: projections
// do not depend on it.
func (*NonNeg) Apply(v mat.Matrix, _ float64) (*mat.Dense, error) {
	out := mat.DenseCopyOf(v)
	out.Apply(func(_, _ int, x float64) float64 {
		return math.Max(x, 0)
	}, out)
	return out, nil
}

// Objective returns 0 when theta is elementwise non-negative and +Inf
// otherwise.
func (*NonNeg) Objective(theta mat.Matrix) float64 {
	r, c := theta.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if theta.At(i, j) < 0 {
				return math.Inf(1)
			}
		}
	}
	return 0
}
