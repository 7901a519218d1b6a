// Package processing implements the spectra-processing pipeline applied to
// decoded Cross-Spectrum data.
//
// The package offers two kinds of transforms:
//
//   - Per-row signal processors implementing [SignalProcessor]: Abs,
//     Rectifier, GainCalculator, Normalize, Identity, and an ordered
//     Composite chain. Each maps one spectrum row to a new row of the same
//     length, sample i to sample i.
//   - The cross-range [NoiseFloorFilter], which operates on one antenna's
//     full range-cell × Doppler-cell matrix and therefore does not fit the
//     per-row contract.
//
// Processors are pure: they return fresh slices and never mutate their
// input, so a failing stage in a chain leaves nothing partially applied.
package processing

import (
	"errors"
	"fmt"
)

// Errors returned by processors and filters.
var (
	// ErrInvalidSample reports a sample outside a processor's valid domain,
	// e.g. non-positive power handed to a strict gain calculation.
	ErrInvalidSample = errors.New("processing: sample outside valid domain")

	// ErrInsufficientRangeCells reports a cross-range filter invoked on a
	// matrix with too few range cells for its statistic.
	ErrInsufficientRangeCells = errors.New("processing: not enough range cells")

	// ErrLengthMismatch reports input rows of unequal length.
	ErrLengthMismatch = errors.New("processing: row length mismatch")
)

// SignalProcessor transforms one antenna's spectrum row. The result has the
// same length and sample order as the input; implementations return a fresh
// slice and leave the input untouched.
type SignalProcessor interface {
	Process(signal []float64) ([]float64, error)
}

// ComplexProcessor is implemented by processors whose complex semantics
// differ from processing real and imaginary parts independently (e.g. Abs,
// which takes the complex magnitude). Callers should prefer ProcessComplex
// when available and otherwise fall back to [SplitComplex].
type ComplexProcessor interface {
	ProcessComplex(signal []complex128) ([]complex128, error)
}

// SplitComplex applies p independently to the real and imaginary parts of
// signal and recombines them. This is the fallback complex semantics for
// processors that do not implement [ComplexProcessor].
func SplitComplex(p SignalProcessor, signal []complex128) ([]complex128, error) {
	re, im, buf := getScratch(len(signal))
	defer putScratch(buf)

	for i, c := range signal {
		re[i] = real(c)
		im[i] = imag(c)
	}

	reOut, err := p.Process(re)
	if err != nil {
		return nil, err
	}
	imOut, err := p.Process(im)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, len(signal))
	for i := range out {
		out[i] = complex(reOut[i], imOut[i])
	}
	return out, nil
}

// ApplyComplex runs p over a complex row, dispatching to the processor's
// native complex path when it has one.
func ApplyComplex(p SignalProcessor, signal []complex128) ([]complex128, error) {
	if cp, ok := p.(ComplexProcessor); ok {
		return cp.ProcessComplex(signal)
	}
	return SplitComplex(p, signal)
}

// Identity returns the input signal unchanged, optionally as a copy.
type Identity struct {
	// Copy forces a fresh slice even though the values are unchanged.
	Copy bool
}

// Process implements [SignalProcessor].
func (id Identity) Process(signal []float64) ([]float64, error) {
	if !id.Copy {
		return signal, nil
	}
	out := make([]float64, len(signal))
	copy(out, signal)
	return out, nil
}

// ProcessComplex implements [ComplexProcessor].
func (id Identity) ProcessComplex(signal []complex128) ([]complex128, error) {
	if !id.Copy {
		return signal, nil
	}
	out := make([]complex128, len(signal))
	copy(out, signal)
	return out, nil
}

// Composite chains processors in construction order: each stage consumes
// the previous stage's output. An empty composite is the identity. Order is
// significant; composition is not commutative in general.
type Composite struct {
	stages []SignalProcessor
}

// NewComposite builds a composite from an ordered sequence of processors.
func NewComposite(stages ...SignalProcessor) *Composite {
	return &Composite{stages: stages}
}

// Len returns the number of stages.
func (c *Composite) Len() int { return len(c.stages) }

// Process threads signal through every stage. The first failing stage
// aborts the chain; no intermediate output escapes.
func (c *Composite) Process(signal []float64) ([]float64, error) {
	out := signal
	for i, stage := range c.stages {
		var err error
		out, err = stage.Process(out)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%T): %w", i, stage, err)
		}
	}
	return out, nil
}

// ProcessComplex threads a complex row through every stage, using each
// stage's native complex path when it has one.
func (c *Composite) ProcessComplex(signal []complex128) ([]complex128, error) {
	out := signal
	for i, stage := range c.stages {
		var err error
		out, err = ApplyComplex(stage, out)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%T): %w", i, stage, err)
		}
	}
	return out, nil
}
