// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prox

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Config carries the construction-time arguments for the registered
// operator variants. Each variant reads only the fields it documents and
// ignores the rest.
type Config struct {
	// Penalty is the scalar penalty strength (nucnorm, sparse, tvd, smooth).
	Penalty float64
	// Axis selects the smoothing axis: 0 for rows, 1 for columns (smooth).
	Axis int
	// A and B define the linear system A·x = b (linsys).
	A, B mat.Matrix
	// Observed is the reference point to stay close to (squared_error).
	Observed mat.Matrix
	// Eval is the smooth objective/gradient pair (lbfgs).
	Eval ObjectiveGrad
	// MaxIterations bounds the inner minimization (lbfgs).
	MaxIterations int
	// Bounds optionally box-constrains the inner minimization (lbfgs).
	Bounds []Bound
	// Denoise overrides the built-in denoising backend (tvd).
	Denoise Denoiser
}

type constructor func(Config) (Operator, error)

// registry maps every built-in variant to its constructor.
// Resolution failures happen here, never inside Apply.
var registry = map[string]constructor{
	"nucnorm":           newNucNormOp,
	"sparse":            newSparseOp,
	"nonneg":            newNonNegOp,
	"linsys":            newLinSysOp,
	"squared_error":     newSquaredErrorOp,
	"lbfgs":             newLBFGSOp,
	"tvd":               newTVDOp,
	"smooth":            newSmoothOp,
	"semidefinite_cone": newPSDConeOp,
}

// Names returns the sorted names of all registered variants.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New resolves id into a ready-to-call Operator.
//
// The identifier is either the name of a registered variant, in which case
// an instance is constructed from cfg, or a mapping supplied directly (an
// ApplyFunc or a full Operator). A direct mapping is wrapped so that it
// satisfies the whole contract, with Objective defaulting to the NaN
// sentinel. Anything else fails with ErrUnknownOperator or
// ErrInvalidIdentifier.
func New(id any, cfg Config) (Operator, error) {
	switch v := id.(type) {
	case string:
		ctor, ok := registry[v]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, v)
		}
		return ctor(cfg)
	case Operator:
		if v == nil {
			return nil, fmt.Errorf("%w: nil operator", ErrInvalidIdentifier)
		}
		return v, nil
	case ApplyFunc:
		if v == nil {
			return nil, fmt.Errorf("%w: nil mapping", ErrInvalidIdentifier)
		}
		return Bind(v), nil
	case func(mat.Matrix, float64) (*mat.Dense, error):
		if v == nil {
			return nil, fmt.Errorf("%w: nil mapping", ErrInvalidIdentifier)
		}
		return Bind(v), nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidIdentifier, id)
	}
}

func newNucNormOp(c Config) (Operator, error) {
	op, err := NewNucNorm(c.Penalty)
	if err != nil {
		return nil, err
	}
	return op, nil
}

func newSparseOp(c Config) (Operator, error) {
	op, err := NewSparse(c.Penalty)
	if err != nil {
		return nil, err
	}
	return op, nil
}

func newNonNegOp(Config) (Operator, error) {
	return NewNonNeg(), nil
}

func newLinSysOp(c Config) (Operator, error) {
	op, err := NewLinSys(c.A, c.B)
	if err != nil {
		return nil, err
	}
	return op, nil
}

func newSquaredErrorOp(c Config) (Operator, error) {
	op, err := NewSquaredError(c.Observed)
	if err != nil {
		return nil, err
	}
	return op, nil
}

func newLBFGSOp(c Config) (Operator, error) {
	spec := LBFGSSpec{
		Eval:          c.Eval,
		MaxIterations: c.MaxIterations,
		Bounds:        c.Bounds,
	}
	op, err := spec.New()
	if err != nil {
		return nil, err
	}
	return op, nil
}

func newTVDOp(c Config) (Operator, error) {
	if c.Denoise != nil {
		op, err := NewTVDWith(c.Penalty, c.Denoise)
		if err != nil {
			return nil, err
		}
		return op, nil
	}
	op, err := NewTVD(c.Penalty)
	if err != nil {
		return nil, err
	}
	return op, nil
}

func newSmoothOp(c Config) (Operator, error) {
	op, err := NewSmooth(c.Axis, c.Penalty)
	if err != nil {
		return nil, err
	}
	return op, nil
}

func newPSDConeOp(Config) (Operator, error) {
	return NewPSDCone(), nil
}
