package csfile

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/cwbudde/algo-radarqc/internal/binio"
	"github.com/cwbudde/algo-radarqc/processing"
)

// CSFile is the in-memory record of one Cross-Spectrum file: its header
// and one spectrum block per range cell. Records are independently owned;
// distinct records may be processed concurrently without coordination.
type CSFile struct {
	Header   Header
	Spectrum Spectrum
}

// New builds a record from a header and spectrum, validating that the
// spectrum matches the header's dimensions.
func New(header Header, spectrum Spectrum) (*CSFile, error) {
	if err := header.validateDimensions(); err != nil {
		return nil, err
	}
	if err := validateSpectrum(&header, &spectrum); err != nil {
		return nil, err
	}
	return &CSFile{Header: header, Spectrum: spectrum}, nil
}

// LoadConfig defines decode-time configuration.
type LoadConfig struct {
	// Preprocess, when non-nil, is applied to every spectrum row before
	// Load returns, as if [CSFile.Apply] were called on the fresh record.
	Preprocess processing.SignalProcessor
}

// LoadOption mutates a LoadConfig.
type LoadOption func(*LoadConfig)

// WithPreprocess applies a processor to every row as part of the load.
func WithPreprocess(p processing.SignalProcessor) LoadOption {
	return func(cfg *LoadConfig) {
		cfg.Preprocess = p
	}
}

// Load reads a complete Cross-Spectrum stream and decodes it. The source
// is read to completion first; the codec operates on whole buffers only.
func Load(src io.Reader, opts ...LoadOption) (*CSFile, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("csfile: read source: %w", err)
	}
	return LoadBytes(data, opts...)
}

// LoadBytes decodes a complete Cross-Spectrum buffer. On failure no
// partial record is returned and data is left untouched.
func LoadBytes(data []byte, opts ...LoadOption) (*CSFile, error) {
	var cfg LoadConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	r := binio.NewReader(data)
	h, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}
	s, err := decodeSpectrum(r, h)
	if err != nil {
		return nil, err
	}
	if r.Remaining() > 0 {
		log.Warnf("csfile: %d trailing bytes after spectrum data ignored", r.Remaining())
	}

	f := &CSFile{Header: *h, Spectrum: *s}
	if cfg.Preprocess != nil {
		if err := f.Apply(cfg.Preprocess); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Dump serializes a record to dst, field-for-field in the documented
// layout using the record's current header dimensions.
func Dump(f *CSFile, dst io.Writer) error {
	data, err := DumpBytes(f)
	if err != nil {
		return err
	}
	if _, err := dst.Write(data); err != nil {
		return fmt.Errorf("csfile: write sink: %w", err)
	}
	return nil
}

// DumpBytes serializes a record to a fresh buffer. Encoding a
// dimension-consistent record cannot fail.
func DumpBytes(f *CSFile) ([]byte, error) {
	w := binio.NewWriter()
	if err := encodeHeader(w, &f.Header); err != nil {
		return nil, err
	}
	if err := encodeSpectrum(w, &f.Header, &f.Spectrum); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Apply runs a processor over every spectrum row of the record: self and
// quality rows through Process, cross rows through the processor's native
// complex path when it has one (re/im split otherwise).
//
// The application is atomic: all replacement rows are computed first and
// the record is only updated when every row succeeded.
func (f *CSFile) Apply(p processing.SignalProcessor) error {
	next := make([]SpectrumBlock, len(f.Spectrum.Blocks))
	for i := range f.Spectrum.Blocks {
		block := &f.Spectrum.Blocks[i]

		nb := SpectrumBlock{
			Self:  make([][]float64, len(block.Self)),
			Cross: make([][]complex128, len(block.Cross)),
		}
		for a, row := range block.Self {
			out, err := p.Process(row)
			if err != nil {
				return fmt.Errorf("csfile: range cell %d self spectrum %d: %w", i, a, err)
			}
			nb.Self[a] = out
		}
		for pr, row := range block.Cross {
			out, err := processing.ApplyComplex(p, row)
			if err != nil {
				return fmt.Errorf("csfile: range cell %d cross spectrum %d: %w", i, pr, err)
			}
			nb.Cross[pr] = out
		}
		if block.Quality != nil {
			out, err := p.Process(block.Quality)
			if err != nil {
				return fmt.Errorf("csfile: range cell %d quality spectrum: %w", i, err)
			}
			nb.Quality = out
		}
		next[i] = nb
	}

	f.Spectrum.Blocks = next
	return nil
}

// ApplyNoiseFilter runs a cross-range noise filter over one antenna's
// self spectra and commits the result only on success. The filter needs
// exclusive access to that antenna's rows for the duration of the call.
func (f *CSFile) ApplyNoiseFilter(antenna int, nf *processing.NoiseFloorFilter) error {
	if antenna < 0 || antenna >= NumAntennas {
		return fmt.Errorf("csfile: antenna index %d out of range", antenna)
	}

	filtered, err := nf.Filter(f.Spectrum.SelfRows(antenna))
	if err != nil {
		return fmt.Errorf("csfile: noise filter antenna %d: %w", antenna, err)
	}
	for i := range f.Spectrum.Blocks {
		f.Spectrum.Blocks[i].Self[antenna] = filtered[i]
	}
	return nil
}
