package processing_test

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-radarqc/internal/testutil"
	"github.com/cwbudde/algo-radarqc/processing"
)

func TestIdentityPassthrough(t *testing.T) {
	in := []float64{1, -2, 3}

	out, err := processing.Identity{}.Process(in)
	if err != nil {
		t.Fatal(err)
	}
	if &out[0] != &in[0] {
		t.Fatal("non-copy identity should return the input slice")
	}

	out, err = processing.Identity{Copy: true}.Process(in)
	if err != nil {
		t.Fatal(err)
	}
	if &out[0] == &in[0] {
		t.Fatal("copy identity should return a fresh slice")
	}
	testutil.RequireSliceNearlyEqual(t, out, in, 0)
}

func TestEmptyCompositeIsIdentity(t *testing.T) {
	in := []float64{1, 2, 3}
	out, err := processing.NewComposite().Process(in)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, out, in, 0)
}

func TestCompositeOrderSensitivity(t *testing.T) {
	in := []float64{-1.0}

	absFirst := processing.NewComposite(
		processing.Abs{},
		processing.NewGainCalculator(),
	)
	out, err := absFirst.Process(in)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, out, []float64{0}, 0)

	gainFirst := processing.NewComposite(
		processing.NewGainCalculator(),
		processing.Abs{},
	)
	rev, err := gainFirst.Process(in)
	if err != nil {
		t.Fatal(err)
	}
	// Gain of negative power is -Inf; Abs turns it into +Inf. The two
	// orders must not agree.
	if !math.IsInf(rev[0], 1) {
		t.Fatalf("reversed chain = %v, want +Inf", rev[0])
	}
	if rev[0] == out[0] {
		t.Fatal("composition should not be commutative here")
	}
}

func TestCompositeFailFastAtomic(t *testing.T) {
	in := []float64{-1.0, 2.0}
	chain := processing.NewComposite(
		processing.NewGainCalculator(processing.WithStrict(true)),
		processing.Abs{},
	)

	out, err := chain.Process(in)
	if !errors.Is(err, processing.ErrInvalidSample) {
		t.Fatalf("err = %v, want ErrInvalidSample", err)
	}
	if out != nil {
		t.Fatalf("failed chain returned output %v", out)
	}
	// Input must be untouched by the completed part of the chain.
	testutil.RequireSliceNearlyEqual(t, in, []float64{-1.0, 2.0}, 0)
}

func TestApplyComplexDispatch(t *testing.T) {
	in := []complex128{complex(3, 4), complex(-1, 0)}

	// Abs has a native complex path: magnitude, zero imaginary part.
	out, err := processing.ApplyComplex(processing.Abs{}, in)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireComplexSliceNearlyEqual(t, out,
		[]complex128{complex(5, 0), complex(1, 0)}, 1e-12)

	// Rectifier has none: real and imaginary parts clamp independently.
	out, err = processing.ApplyComplex(processing.Rectifier{}, []complex128{complex(-2, 5)})
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireComplexSliceNearlyEqual(t, out, []complex128{complex(0, 5)}, 0)
}

func TestCompositeComplexChain(t *testing.T) {
	chain := processing.NewComposite(processing.Abs{}, processing.Abs{})
	out, err := chain.ProcessComplex([]complex128{complex(0, -2)})
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireComplexSliceNearlyEqual(t, out, []complex128{complex(2, 0)}, 1e-12)
}
