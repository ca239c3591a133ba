// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prox provides proximal operators for first-order and
// splitting-based optimization algorithms such as proximal gradient
// descent and ADMM.
//
// A proximal operator maps a point 𝐯 to the minimizer of
//
//	𝒇(𝛉) + (𝜌/2)‖𝛉 − 𝐯‖²
//
// where 𝒇 is a penalty, constraint indicator or data-fidelity term and
// 𝜌 is a positive weight: larger 𝜌 keeps the result closer to 𝐯.
// Every variant in this package implements the same Operator contract so
// an outer optimization loop can treat heterogeneous penalties uniformly.
//
// Points are gonum dense matrices; vectors are n×1 matrices.
package prox

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Operator is the contract shared by every proximal operator.
//
// Instances are immutable after construction and safe for concurrent use
// across distinct instances. Unless a variant documents otherwise, a single
// instance is also safe for concurrent calls on itself.
type Operator interface {
	// Apply maps v to its proximal point under the operator's penalty.
	// The weight rho must be strictly positive; this is the caller's
	// responsibility and is not re-checked. The input is never mutated
	// and the result never aliases it.
	Apply(v mat.Matrix, rho float64) (*mat.Dense, error)

	// Objective evaluates the underlying penalty at theta, for monitoring
	// and convergence checks only. It may cost more than Apply. Variants
	// without a cheap penalty evaluation return NaN; hard constraints
	// return 0 when satisfied and +Inf when violated.
	Objective(theta mat.Matrix) float64
}

// ApplyFunc is a bare proximal mapping supplied directly by the caller.
type ApplyFunc func(v mat.Matrix, rho float64) (*mat.Dense, error)

// Bind wraps a bare mapping into a full Operator whose Objective reports
// the NaN sentinel.
func Bind(fn ApplyFunc) Operator {
	return funcOperator{fn}
}

type funcOperator struct{ fn ApplyFunc }

func (f funcOperator) Apply(v mat.Matrix, rho float64) (*mat.Dense, error) {
	return f.fn(v, rho)
}

func (f funcOperator) Objective(mat.Matrix) float64 { return math.NaN() }

// noObjective is embedded by variants whose penalty is not cheaply
// evaluated. It supplies the NaN sentinel mandated by the contract.
type noObjective struct{}

func (noObjective) Objective(mat.Matrix) float64 { return math.NaN() }

// flatten copies v into a row-major slice.
func flatten(v mat.Matrix) (r, c int, data []float64) {
	r, c = v.Dims()
	data = make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data = append(data, v.At(i, j))
		}
	}
	return
}
