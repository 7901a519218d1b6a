package processing

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Normalize rescales a row affinely so its minimum maps to 0 and its
// maximum to 1. A constant row has no such scaling and fails with
// [ErrInvalidSample].
type Normalize struct{}

// Process implements [SignalProcessor].
func (Normalize) Process(signal []float64) ([]float64, error) {
	if len(signal) == 0 {
		return []float64{}, nil
	}

	lo := floats.Min(signal)
	hi := floats.Max(signal)
	if hi == lo {
		return nil, fmt.Errorf("constant signal cannot be normalized: %w", ErrInvalidSample)
	}

	inv := 1 / (hi - lo)
	out := make([]float64, len(signal))
	for i, v := range signal {
		out[i] = (v - lo) * inv
	}
	return out, nil
}
