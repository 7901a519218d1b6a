package processing

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Abs replaces every sample with its magnitude: absolute value for real
// rows, complex magnitude (zero imaginary part) for complex rows.
//
// SeaSonde receivers flag outliers by storing spurious negative power;
// Abs recovers a usable magnitude from such samples. It is idempotent.
type Abs struct{}

// Process implements [SignalProcessor].
func (Abs) Process(signal []float64) ([]float64, error) {
	out := make([]float64, len(signal))
	for i, v := range signal {
		out[i] = math.Abs(v)
	}
	return out, nil
}

// ProcessComplex implements [ComplexProcessor]. The magnitude is computed
// with a SIMD kernel over unpacked real and imaginary parts.
func (Abs) ProcessComplex(signal []complex128) ([]complex128, error) {
	if len(signal) == 0 {
		return []complex128{}, nil
	}

	re, im, buf := getScratch(len(signal))
	defer putScratch(buf)

	for i, c := range signal {
		re[i] = real(c)
		im[i] = imag(c)
	}

	mag := make([]float64, len(signal))
	vecmath.Magnitude(mag, re, im)

	out := make([]complex128, len(signal))
	for i, m := range mag {
		out[i] = complex(m, 0)
	}
	return out, nil
}

// Rectifier clamps negative samples to zero, discarding the outlier
// markers instead of folding them back into the signal.
type Rectifier struct{}

// Process implements [SignalProcessor].
func (Rectifier) Process(signal []float64) ([]float64, error) {
	out := make([]float64, len(signal))
	for i, v := range signal {
		if v < 0 {
			v = 0
		}
		out[i] = v
	}
	return out, nil
}
