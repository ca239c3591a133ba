// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prox

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestTVDMissingBackend(t *testing.T) {
	op, err := NewTVDWith(1, nil)
	if err != nil {
		t.Fatal("TestTVDMissingBackend:", err)
	}
	got, err := op.Apply(vec(1, 2, 3), 1)
	switch {
	case got != nil:
		t.Fatal("TestTVDMissingBackend: a silent identity fallback is disallowed")
	case !errors.Is(err, ErrNoBackend):
		t.Fatal("TestTVDMissingBackend: want ErrNoBackend, got", err)
	}
}

func TestTVDDelegation(t *testing.T) {
	// The backend must receive weight rho/gamma and its failures must
	// surface unchanged.
	var gotWeight float64
	backend := func(x *mat.Dense, weight float64) (*mat.Dense, error) {
		gotWeight = weight
		return x, nil
	}
	op, err := NewTVDWith(2, backend)
	if err != nil {
		t.Fatal("TestTVDDelegation:", err)
	}
	if _, err = op.Apply(vec(1), 8); err != nil {
		t.Fatal("TestTVDDelegation:", err)
	}
	if gotWeight != 4 {
		t.Fatal("TestTVDDelegation: want weight 4, got", gotWeight)
	}

	fail := errors.New("backend exploded")
	op, err = NewTVDWith(2, func(*mat.Dense, float64) (*mat.Dense, error) {
		return nil, fail
	})
	if err != nil {
		t.Fatal("TestTVDDelegation:", err)
	}
	if _, err = op.Apply(vec(1), 8); !errors.Is(err, fail) {
		t.Fatal("TestTVDDelegation: backend failure was swallowed, got", err)
	}
}

func TestTVDBuiltin(t *testing.T) {
	op, err := NewTVD(1)
	if err != nil {
		t.Fatal("TestTVDBuiltin:", err)
	}

	// A constant image is a fixed point of the denoiser.
	flat := mat.NewDense(3, 3, []float64{5, 5, 5, 5, 5, 5, 5, 5, 5})
	got, err := op.Apply(flat, 1)
	switch {
	case err != nil:
		t.Fatal("TestTVDBuiltin:", err)
	case !matClose(got, flat, 1e-9):
		t.Fatal("TestTVDBuiltin: constant image drifted")
	}

	// A huge weight keeps the result near the input.
	x := vec(1, 5, 2, 8)
	got, err = op.Apply(x, 1e6)
	switch {
	case err != nil:
		t.Fatal("TestTVDBuiltin:", err)
	case !matClose(got, x, 0.05):
		t.Fatal("TestTVDBuiltin: large weight must stay near the input")
	}
}

func TestTVDObjective(t *testing.T) {
	op, err := NewTVD(1)
	if err != nil {
		t.Fatal("TestTVDObjective:", err)
	}
	if !math.IsNaN(op.Objective(vec(1, 2))) {
		t.Fatal("TestTVDObjective: total variation objective is unsupported, want NaN")
	}
}
