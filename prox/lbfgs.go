// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prox

import (
	"fmt"
	"slices"

	"github.com/curioloop/optimizer/lbfgsb"
	"github.com/curioloop/optimizer/numdiff"
	"gonum.org/v1/gonum/mat"
)

// ObjectiveGrad evaluates a smooth objective 𝒇 at x and writes its
// gradient 𝒇′(x) into g.
type ObjectiveGrad func(x, g []float64) (f float64)

// Bound is a box constraint on one variable of the inner minimization.
// Use NaN for a missing lower or upper bound.
type Bound = lbfgsb.Bound

const (
	defaultProxIters = 20
	lbfgsCorrections = 10
	// Inner stop tolerances matching the usual L-BFGS-B defaults.
	lbfgsEpsFactor = 1e7
	lbfgsGradTol   = 1e-5
)

// LBFGSSpec specifies a proximal operator for a general smooth objective,
// minimized with the bound-constrained limited-memory BFGS backend.
type LBFGSSpec struct {
	// Eval computes the objective and gradient.
	Eval ObjectiveGrad
	// MaxIterations bounds the inner minimization (default 20).
	MaxIterations int
	// Bounds optionally box-constrains every variable of the flattened
	// point. When set, its length must equal the point size.
	Bounds []Bound
}

// New validates the spec and creates the operator.
func (s *LBFGSSpec) New() (*LBFGS, error) {
	spec := *s
	switch {
	case spec.Eval == nil:
		return nil, fmt.Errorf("%w: lbfgs requires an objective/gradient function", ErrInvalidConfig)
	case spec.MaxIterations < 0:
		return nil, fmt.Errorf("%w: lbfgs iteration budget must not be negative", ErrInvalidConfig)
	}
	if spec.MaxIterations == 0 {
		spec.MaxIterations = defaultProxIters
	}
	spec.Bounds = slices.Clone(spec.Bounds)
	return &LBFGS{spec: spec}, nil
}

// LBFGS minimizes the augmented objective
//
//	𝒇(𝛉) + (𝜌/2)‖𝛉 − 𝐯‖²
//
// starting from 𝐯, for at most the configured iteration budget, and
// returns the minimizer found. The augmentation is captured per call, so
// distinct instances never interfere; a single instance must still not be
// applied concurrently with itself because calls share the configured
// bounds.
type LBFGS struct {
	spec LBFGSSpec
}

// Apply runs the bounded quasi-Newton minimization of the augmented
// objective anchored at v with weight rho.
func (l *LBFGS) Apply(v mat.Matrix, rho float64) (*mat.Dense, error) {
	r, c, v0 := flatten(v)
	n := r * c

	if l.spec.Bounds != nil && len(l.spec.Bounds) != n {
		return nil, fmt.Errorf("prox: lbfgs: %d bounds for a %d-variable point", len(l.spec.Bounds), n)
	}

	// The anchor and weight live in this closure only, never on the
	// instance: two concurrent calls on distinct instances cannot
	// observe each other's state.
	eval := func(x, g []float64) (f float64) {
		f = l.spec.Eval(x, g)
		quad := 0.0
		for i, xi := range x {
			d := xi - v0[i]
			quad += d * d
			g[i] += rho * d
		}
		return f + 0.5*rho*quad
	}

	p := lbfgsb.Problem{
		N: n, M: lbfgsCorrections,
		Eval: eval,
		Stop: lbfgsb.Termination{
			MaxIterations:     l.spec.MaxIterations,
			EpsAccuracyFactor: lbfgsEpsFactor,
			ProjGradTolerance: lbfgsGradTol,
		},
		Bounds: l.spec.Bounds,
	}
	opt, err := p.New(nil)
	if err != nil {
		return nil, fmt.Errorf("prox: lbfgs: %w", err)
	}

	res := opt.Fit(v0, opt.Init())
	return mat.NewDense(r, c, res.X), nil
}

// Objective returns the caller-supplied objective at theta, without the
// quadratic augmentation.
func (l *LBFGS) Objective(theta mat.Matrix) float64 {
	_, _, x := flatten(theta)
	g := make([]float64, len(x))
	return l.spec.Eval(x, g)
}

// ApproxGrad adapts a bare objective to an ObjectiveGrad by estimating the
// gradient with central finite differences.
func ApproxGrad(f func(x []float64) float64) ObjectiveGrad {
	return func(x, g []float64) float64 {
		if len(x) == 0 {
			return f(x)
		}
		as := numdiff.ApproxSpec{
			N: len(x), M: 1,
			Method: numdiff.Central,
			Object: func(x, y []float64) { y[0] = f(x) },
		}
		if err := as.Diff(x, g); err != nil {
			panic(err)
		}
		return f(x)
	}
}
