// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prox

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// NucNorm is the proximal operator of the nuclear-norm penalty 𝜆·Σσᵢ:
// soft thresholding of the singular spectrum.
type NucNorm struct {
	penalty float64
}

// NewNucNorm creates a nuclear-norm operator with weight penalty.
func NewNucNorm(penalty float64) (*NucNorm, error) {
	if !(penalty > 0) {
		return nil, fmt.Errorf("%w: nucnorm penalty must be positive", ErrInvalidConfig)
	}
	return &NucNorm{penalty: penalty}, nil
}

// Apply factorizes v = U·Σ·Vᵀ, shrinks each singular value by penalty/rho
// clamping at zero, and reconstructs from the thresholded spectrum.
func (n *NucNorm) Apply(v mat.Matrix, rho float64) (*mat.Dense, error) {
	var svd mat.SVD
	if !svd.Factorize(v, mat.SVDThin) {
		return nil, errors.New("prox: nucnorm: singular value decomposition did not converge")
	}
	s := svd.Values(nil)
	thr := n.penalty / rho
	for i, sv := range s {
		s[i] = math.Max(sv-thr, 0)
	}
	var u, rsv mat.Dense
	svd.UTo(&u)
	svd.VTo(&rsv)
	var out mat.Dense
	out.Product(&u, mat.NewDiagDense(len(s), s), rsv.T())
	return &out, nil
}

// Objective returns the nuclear norm of theta, computed from the singular
// values alone. A failed factorization reports the NaN sentinel.
func (n *NucNorm) Objective(theta mat.Matrix) float64 {
	var svd mat.SVD
	if !svd.Factorize(theta, mat.SVDNone) {
		return math.NaN()
	}
	return floats.Sum(svd.Values(nil))
}
