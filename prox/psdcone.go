// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prox

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// PSDCone is the Euclidean projection onto the positive-semidefinite
// cone: eigen-decompose the symmetric input, clamp negative eigenvalues
// at zero, reconstruct.
//
// The cone membership objective is left undefined and reports the NaN
// sentinel.
type PSDCone struct {
	noObjective
}

// NewPSDCone creates a positive-semidefinite cone projection.
func NewPSDCone() *PSDCone { return &PSDCone{} }

// Apply projects the symmetric matrix v onto the PSD cone. The weight is
// ignored: projections do not depend on it.
func (*PSDCone) Apply(v mat.Matrix, _ float64) (*mat.Dense, error) {
	r, c := v.Dims()
	if r != c {
		return nil, fmt.Errorf("prox: semidefinite_cone: point must be square, got %d×%d", r, c)
	}

	// Symmetrize to guard against floating-point asymmetry in the input.
	sym := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			sym.SetSym(i, j, 0.5*(v.At(i, j)+v.At(j, i)))
		}
	}

	var es mat.EigenSym
	if !es.Factorize(sym, true) {
		return nil, errors.New("prox: semidefinite_cone: eigendecomposition did not converge")
	}
	vals := es.Values(nil)
	for i, ev := range vals {
		vals[i] = math.Max(ev, 0)
	}
	var q mat.Dense
	es.VectorsTo(&q)

	var out mat.Dense
	out.Product(&q, mat.NewDiagDense(len(vals), vals), q.T())
	return &out, nil
}
