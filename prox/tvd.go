// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prox

import (
	"fmt"

	"github.com/curioloop/proxop/tvdenoise"
	"gonum.org/v1/gonum/mat"
)

// Denoiser is a total-variation denoising backend. It denoises x with the
// given data-fidelity weight: larger weight keeps the result closer to x.
type Denoiser func(x *mat.Dense, weight float64) (*mat.Dense, error)

// TVD is the total-variation denoising proximal operator. It delegates to
// a Bregman-iteration style denoising backend with fidelity weight 𝜌/𝛾.
//
// The total-variation penalty itself is not cheaply evaluated here, so
// Objective reports the NaN sentinel.
type TVD struct {
	noObjective
	gamma   float64
	denoise Denoiser
}

// NewTVD creates a total-variation operator with penalty gamma, backed by
// the built-in split-Bregman solver.
func NewTVD(gamma float64) (*TVD, error) {
	return NewTVDWith(gamma, defaultDenoiser)
}

// NewTVDWith creates a total-variation operator with a caller-supplied
// backend. A nil backend is permitted here: the missing backend is
// reported by the first Apply that needs it, never papered over by
// returning the input unchanged.
func NewTVDWith(gamma float64, d Denoiser) (*TVD, error) {
	if !(gamma > 0) {
		return nil, fmt.Errorf("%w: tvd penalty must be positive", ErrInvalidConfig)
	}
	return &TVD{gamma: gamma, denoise: d}, nil
}

// Apply denoises v with fidelity weight rho/gamma.
func (t *TVD) Apply(v mat.Matrix, rho float64) (*mat.Dense, error) {
	if t.denoise == nil {
		return nil, fmt.Errorf("%w: tvd has no denoiser", ErrNoBackend)
	}
	out, err := t.denoise(mat.DenseCopyOf(v), rho/t.gamma)
	if err != nil {
		return nil, fmt.Errorf("prox: tvd: %w", err)
	}
	return out, nil
}

func defaultDenoiser(x *mat.Dense, weight float64) (*mat.Dense, error) {
	return tvdenoise.Denoise(x, weight)
}
