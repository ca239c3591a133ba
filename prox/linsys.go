// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prox

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LinSys is the proximal operator of the least-squares data term
// ½‖A·𝛉 − b‖₂². The proximal map has the closed form
//
//	(𝜌·I + AᵀA)·𝛉 = 𝜌·𝐯 + Aᵀb
//
// so the normal-equation matrix AᵀA and vector Aᵀb are precomputed once
// at construction.
type LinSys struct {
	a, b *mat.Dense
	p    *mat.Dense // AᵀA
	q    *mat.Dense // Aᵀb
}

// NewLinSys creates a least-squares operator for the system A·x = b.
// b may carry multiple right-hand sides as columns.
func NewLinSys(a, b mat.Matrix) (*LinSys, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: linsys requires both A and b", ErrInvalidConfig)
	}
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br {
		return nil, fmt.Errorf("%w: linsys A is %d×%d but b has %d rows", ErrInvalidConfig, ar, ac, br)
	}
	ls := &LinSys{
		a: mat.DenseCopyOf(a),
		b: mat.DenseCopyOf(b),
		p: mat.NewDense(ac, ac, nil),
		q: mat.NewDense(ac, bc, nil),
	}
	ls.p.Mul(ls.a.T(), ls.a)
	ls.q.Mul(ls.a.T(), ls.b)
	return ls, nil
}

// Apply solves the regularized normal equations with a dense solve.
// A singular system is surfaced as the solver's error.
func (l *LinSys) Apply(v mat.Matrix, rho float64) (*mat.Dense, error) {
	qr, qc := l.q.Dims()
	vr, vc := v.Dims()
	if vr != qr || vc != qc {
		return nil, fmt.Errorf("prox: linsys: point is %d×%d, want %d×%d", vr, vc, qr, qc)
	}

	m := mat.DenseCopyOf(l.p)
	for i := 0; i < qr; i++ {
		m.Set(i, i, m.At(i, i)+rho)
	}

	rhs := mat.NewDense(qr, qc, nil)
	rhs.Scale(rho, v)
	rhs.Add(rhs, l.q)

	var out mat.Dense
	if err := out.Solve(m, rhs); err != nil {
		return nil, fmt.Errorf("prox: linsys: %w", err)
	}
	return &out, nil
}

// Objective returns ½‖A·theta − b‖₂².
func (l *LinSys) Objective(theta mat.Matrix) float64 {
	var r mat.Dense
	r.Mul(l.a, theta)
	r.Sub(&r, l.b)
	norm := mat.Norm(&r, 2)
	return 0.5 * norm * norm
}
