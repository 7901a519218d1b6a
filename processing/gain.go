package processing

import (
	"fmt"
	"math"
)

// GainConfig defines configuration for the gain calculation.
type GainConfig struct {
	// ReferenceDB is subtracted from the computed gain, expressing the
	// result relative to a known baseline (e.g. the receiver's reference
	// gain from the RCVI metadata block).
	ReferenceDB float64

	// ImpedanceOhms divides the input before conversion, turning
	// voltage-squared samples into watts. The default of 1 leaves the
	// input unscaled; SeaSonde RF front ends use 50.
	ImpedanceOhms float64

	// Strict makes non-positive power an error instead of -Inf.
	Strict bool
}

// GainOption mutates a GainConfig.
type GainOption func(*GainConfig)

// DefaultGainConfig returns sensible defaults: zero reference, unit
// impedance, non-strict.
func DefaultGainConfig() GainConfig {
	return GainConfig{ImpedanceOhms: 1}
}

// WithReference sets the reference gain in dB.
func WithReference(db float64) GainOption {
	return func(cfg *GainConfig) {
		cfg.ReferenceDB = db
	}
}

// WithImpedance sets the RF front-end impedance in ohms.
func WithImpedance(ohms float64) GainOption {
	return func(cfg *GainConfig) {
		if ohms > 0 {
			cfg.ImpedanceOhms = ohms
		}
	}
}

// WithStrict toggles strict domain validation. When enabled, Process fails
// with [ErrInvalidSample] on power <= 0 instead of emitting -Inf.
func WithStrict(strict bool) GainOption {
	return func(cfg *GainConfig) {
		cfg.Strict = strict
	}
}

// GainCalculator converts linear power samples into reference-relative
// gain in decibels: 10*log10(p/impedance) - reference.
//
// Gain is only defined for strictly positive power. By default a
// non-positive sample maps to -Inf, matching the convention used for
// dB conversion of silent signals elsewhere in this module family;
// [WithStrict] opts into hard failure instead.
type GainCalculator struct {
	cfg GainConfig
}

// NewGainCalculator builds a gain processor from zero or more options.
func NewGainCalculator(opts ...GainOption) *GainCalculator {
	cfg := DefaultGainConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &GainCalculator{cfg: cfg}
}

// Process implements [SignalProcessor].
func (g *GainCalculator) Process(signal []float64) ([]float64, error) {
	scaled := make([]float64, len(signal))
	for i, v := range signal {
		scaled[i] = v / g.cfg.ImpedanceOhms
	}

	for i, p := range scaled {
		if p <= 0 {
			if g.cfg.Strict {
				return nil, fmt.Errorf("power %v at index %d: %w", p, i, ErrInvalidSample)
			}
			scaled[i] = math.Inf(-1)
			continue
		}
		scaled[i] = 10*math.Log10(p) - g.cfg.ReferenceDB
	}
	return scaled, nil
}

// CalculateGain converts linear power into gain in dB relative to
// reference, usable outside the processor pipeline (e.g. for display).
// Non-positive power maps to -Inf.
func CalculateGain(signal []float64, reference float64) []float64 {
	out := make([]float64, len(signal))
	for i, p := range signal {
		if p <= 0 {
			out[i] = math.Inf(-1)
			continue
		}
		out[i] = 10*math.Log10(p) - reference
	}
	return out
}
