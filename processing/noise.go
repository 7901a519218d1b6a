package processing

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// NoiseConfig defines configuration for the noise-floor filter.
type NoiseConfig struct {
	// Quantile selects the per-column order statistic used as the noise
	// floor estimate, in [0, 1]. True radar returns are localized in
	// range, so a low quantile across range cells approximates the floor.
	Quantile float64

	// Floor is the lower clip applied to filtered samples (0 for linear
	// power).
	Floor float64

	// AllowSingleCell turns the insufficient-data failure for matrices
	// with fewer than two range cells into an identity pass.
	AllowSingleCell bool
}

// NoiseOption mutates a NoiseConfig.
type NoiseOption func(*NoiseConfig)

// DefaultNoiseConfig returns sensible defaults: 5th-percentile floor
// estimate, zero clip, strict single-cell handling.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{Quantile: 0.05}
}

// WithQuantile sets the noise-floor quantile.
func WithQuantile(q float64) NoiseOption {
	return func(cfg *NoiseConfig) {
		if q >= 0 && q <= 1 {
			cfg.Quantile = q
		}
	}
}

// WithFloor sets the lower clip value for filtered samples.
func WithFloor(floor float64) NoiseOption {
	return func(cfg *NoiseConfig) {
		cfg.Floor = floor
	}
}

// WithAllowSingleCell makes a single-range-cell matrix a no-op instead of
// an [ErrInsufficientRangeCells] failure.
func WithAllowSingleCell(allow bool) NoiseOption {
	return func(cfg *NoiseConfig) {
		cfg.AllowSingleCell = allow
	}
}

// NoiseFloorFilter suppresses background receiver noise in one antenna's
// self spectra before downstream velocity extraction.
//
// Unlike a per-row [SignalProcessor], the filter needs the whole
// range-cell × Doppler-cell matrix of an antenna: the noise estimate for a
// Doppler column is a low quantile of that column across all range cells,
// which is then subtracted from every sample in the column and clipped at
// the configured floor.
type NoiseFloorFilter struct {
	cfg NoiseConfig
}

// NewNoiseFloorFilter builds a filter from zero or more options.
func NewNoiseFloorFilter(opts ...NoiseOption) *NoiseFloorFilter {
	cfg := DefaultNoiseConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &NoiseFloorFilter{cfg: cfg}
}

// Filter returns a fresh matrix with the per-column noise floor removed.
// cells is indexed [rangeCell][dopplerCell]; all rows must share one
// length. Matrices with fewer than two range cells fail with
// [ErrInsufficientRangeCells] unless single-cell passes are allowed.
func (f *NoiseFloorFilter) Filter(cells [][]float64) ([][]float64, error) {
	out := make([][]float64, len(cells))
	for i, row := range cells {
		if i > 0 && len(row) != len(cells[0]) {
			return nil, fmt.Errorf("range cell %d has %d doppler cells, cell 0 has %d: %w",
				i, len(row), len(cells[0]), ErrLengthMismatch)
		}
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}

	if len(cells) < 2 {
		if f.cfg.AllowSingleCell {
			return out, nil
		}
		return nil, fmt.Errorf("%d range cells: %w", len(cells), ErrInsufficientRangeCells)
	}

	column := make([]float64, len(cells))
	for j := range cells[0] {
		for i, row := range cells {
			column[i] = row[j]
		}
		sort.Float64s(column)
		noise := stat.Quantile(f.cfg.Quantile, stat.Empirical, column, nil)

		for i := range out {
			v := out[i][j] - noise
			if v < f.cfg.Floor {
				v = f.cfg.Floor
			}
			out[i][j] = v
		}
	}
	return out, nil
}
