package processing_test

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-radarqc/internal/testutil"
	"github.com/cwbudde/algo-radarqc/processing"
)

func TestCalculateGain(t *testing.T) {
	cases := []struct {
		name      string
		signal    []float64
		reference float64
		want      []float64
	}{
		{"unit power, zero reference", []float64{1.0}, 0.0, []float64{0.0}},
		{"ten times power", []float64{10.0}, 0.0, []float64{10.0}},
		{"hundredfold against reference", []float64{100.0}, 4.2, []float64{15.8}},
		{"mixed row", []float64{1, 10, 100}, 10, []float64{-10, 0, 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := processing.CalculateGain(tc.signal, tc.reference)
			testutil.RequireSliceNearlyEqual(t, got, tc.want, 1e-12)
		})
	}
}

func TestCalculateGainNonPositive(t *testing.T) {
	got := processing.CalculateGain([]float64{0, -4, 1}, 0)
	if !math.IsInf(got[0], -1) || !math.IsInf(got[1], -1) {
		t.Fatalf("non-positive power = %v, want -Inf entries", got[:2])
	}
	if got[2] != 0 {
		t.Fatalf("unit power = %v, want 0", got[2])
	}
}

func TestGainCalculatorDefaultMatchesPureFunction(t *testing.T) {
	in := []float64{0.5, 2, 200}
	out, err := processing.NewGainCalculator(processing.WithReference(3)).Process(in)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, out, processing.CalculateGain(in, 3), 1e-12)
}

func TestGainCalculatorImpedance(t *testing.T) {
	// 50 V² across a 50 Ω front end is one watt: 0 dBW.
	g := processing.NewGainCalculator(processing.WithImpedance(50))
	out, err := g.Process([]float64{50.0, 500.0})
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, out, []float64{0, 10}, 1e-12)
}

func TestGainCalculatorStrict(t *testing.T) {
	g := processing.NewGainCalculator(processing.WithStrict(true))

	if _, err := g.Process([]float64{1, 0}); !errors.Is(err, processing.ErrInvalidSample) {
		t.Fatalf("zero power: err = %v, want ErrInvalidSample", err)
	}
	if _, err := g.Process([]float64{-1}); !errors.Is(err, processing.ErrInvalidSample) {
		t.Fatalf("negative power: err = %v, want ErrInvalidSample", err)
	}
	out, err := g.Process([]float64{10})
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, out, []float64{10}, 1e-12)
}

func TestGainCalculatorDoesNotMutateInput(t *testing.T) {
	in := []float64{4, 9}
	if _, err := processing.NewGainCalculator().Process(in); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, in, []float64{4, 9}, 0)
}
