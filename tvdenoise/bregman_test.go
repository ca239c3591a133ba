package tvdenoise

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// totalVariation sums the anisotropic gradient magnitudes.
func totalVariation(x *mat.Dense) float64 {
	r, c := x.Dims()
	tv := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if i < r-1 {
				tv += math.Abs(x.At(i+1, j) - x.At(i, j))
			}
			if j < c-1 {
				tv += math.Abs(x.At(i, j+1) - x.At(i, j))
			}
		}
	}
	return tv
}

func maxAbsDiff(a, b *mat.Dense) float64 {
	r, c := a.Dims()
	d := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d = math.Max(d, math.Abs(a.At(i, j)-b.At(i, j)))
		}
	}
	return d
}

func TestDenoiseConstant(t *testing.T) {
	x := mat.NewDense(4, 3, nil)
	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			x.Set(i, j, 2.5)
		}
	}
	got, err := Denoise(x, 1)
	switch {
	case err != nil:
		t.Fatal("TestDenoiseConstant:", err)
	case maxAbsDiff(got, x) > 1e-9:
		t.Fatal("TestDenoiseConstant: constant input drifted")
	}
}

func TestDenoiseReducesVariation(t *testing.T) {
	// A noisy two-level signal: denoising must strictly lower its total
	// variation without running away from the data.
	noisy := mat.NewDense(8, 1, []float64{
		0.1, -0.2, 0.15, -0.1, 5.2, 4.8, 5.1, 4.9,
	})
	got, err := Denoise(noisy, 0.5)
	switch {
	case err != nil:
		t.Fatal("TestDenoiseReducesVariation:", err)
	case totalVariation(got) >= totalVariation(noisy):
		t.Fatal("TestDenoiseReducesVariation: total variation did not decrease")
	case maxAbsDiff(got, noisy) > 5:
		t.Fatal("TestDenoiseReducesVariation: result ran away from the data")
	}
}

func TestDenoiseAnisotropic(t *testing.T) {
	noisy := mat.NewDense(4, 4, []float64{
		0.1, -0.2, 4.9, 5.2,
		-0.1, 0.2, 5.1, 4.8,
		0.2, -0.1, 4.8, 5.1,
		-0.2, 0.1, 5.2, 4.9,
	})
	s := Spec{Weight: 0.5, Anisotropic: true}
	got, err := s.Denoise(noisy)
	switch {
	case err != nil:
		t.Fatal("TestDenoiseAnisotropic:", err)
	case totalVariation(got) >= totalVariation(noisy):
		t.Fatal("TestDenoiseAnisotropic: total variation did not decrease")
	}
}

func TestDenoiseFidelity(t *testing.T) {
	// A huge weight makes fidelity dominate: the result hugs the input.
	x := mat.NewDense(2, 3, []float64{1, 7, 2, 8, 3, 9})
	s := Spec{Weight: 1e6, MaxIterations: 2000, Tol: 1e-12}
	got, err := s.Denoise(x)
	switch {
	case err != nil:
		t.Fatal("TestDenoiseFidelity:", err)
	case maxAbsDiff(got, x) > 1e-3:
		t.Fatal("TestDenoiseFidelity: large weight must track the input")
	}
}

func TestDenoiseInputUntouched(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{1, 9, 9, 1})
	want := mat.DenseCopyOf(x)
	if _, err := Denoise(x, 0.5); err != nil {
		t.Fatal("TestDenoiseInputUntouched:", err)
	}
	if maxAbsDiff(x, want) != 0 {
		t.Fatal("TestDenoiseInputUntouched: input was mutated")
	}
}

func TestDenoiseSpecErrors(t *testing.T) {
	x := mat.NewDense(2, 2, nil)
	cases := []Spec{
		{Weight: 0},
		{Weight: -1},
		{Weight: math.Inf(1)},
		{Weight: 1, MaxIterations: -1},
		{Weight: 1, Tol: -1e-3},
	}
	for _, s := range cases {
		if _, err := s.Denoise(x); err == nil {
			t.Fatal("TestDenoiseSpecErrors: spec must fail:", s)
		}
	}
	s := Spec{Weight: 1}
	if _, err := s.Denoise(nil); err == nil {
		t.Fatal("TestDenoiseSpecErrors: nil input must fail")
	}
}
