package csfile

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/cwbudde/algo-radarqc/internal/binio"
)

// decodeHeader reads the cumulative version segments and, for version-6
// files, the tagged metadata section.
func decodeHeader(r *binio.Reader) (*Header, error) {
	version, err := r.Int16()
	if err != nil {
		return nil, fmt.Errorf("csfile: header version: %w", err)
	}
	if version < 1 || version > 6 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	h := &Header{Version: version}
	segments := []func(*binio.Reader, *Header) error{
		decodeHeaderV1,
		decodeHeaderV2,
		decodeHeaderV3,
		decodeHeaderV4,
		decodeHeaderV5,
		decodeHeaderV6,
	}
	for i, segment := range segments[:version] {
		if err := segment(r, h); err != nil {
			return nil, fmt.Errorf("csfile: header v%d: %w", i+1, err)
		}
	}

	if err := h.validateDimensions(); err != nil {
		return nil, err
	}
	return h, nil
}

func decodeHeaderV1(r *binio.Reader, h *Header) error {
	seconds, err := r.Uint32()
	if err != nil {
		return err
	}
	h.Timestamp = parseTimestamp(seconds)
	return r.Skip(4) // extent, recomputed on encode
}

func decodeHeaderV2(r *binio.Reader, h *Header) error {
	var err error
	if h.Kind, err = r.Int16(); err != nil {
		return err
	}
	return r.Skip(4) // extent
}

func decodeHeaderV3(r *binio.Reader, h *Header) error {
	var err error
	if h.SiteCode, err = r.String(4); err != nil {
		return err
	}
	return r.Skip(4) // extent
}

func decodeHeaderV4(r *binio.Reader, h *Header) error {
	var err error
	if h.CoverageMinutes, err = r.Int32(); err != nil {
		return err
	}
	if h.DeletedSource, err = readBool32(r); err != nil {
		return err
	}
	if h.OverrideSource, err = readBool32(r); err != nil {
		return err
	}
	for _, field := range []*float32{&h.StartFreqMHz, &h.RepFreqMHz, &h.BandwidthKHz} {
		if *field, err = r.Float32(); err != nil {
			return err
		}
	}
	if h.SweepUp, err = readBool32(r); err != nil {
		return err
	}
	for _, field := range []*int32{&h.NumDopplerCells, &h.NumRangeCells, &h.FirstRangeCell} {
		if *field, err = r.Int32(); err != nil {
			return err
		}
	}
	if h.RangeCellDistKM, err = r.Float32(); err != nil {
		return err
	}
	return r.Skip(4) // extent
}

func decodeHeaderV5(r *binio.Reader, h *Header) error {
	var err error
	if h.OutputInterval, err = r.Int32(); err != nil {
		return err
	}
	if h.CreateTypeCode, err = r.String(4); err != nil {
		return err
	}
	if h.CreatorVersion, err = r.String(4); err != nil {
		return err
	}
	if h.NumActiveChannels, err = r.Int32(); err != nil {
		return err
	}
	if h.NumSpectraChannels, err = r.Int32(); err != nil {
		return err
	}
	if h.ActiveChannels, err = r.Uint32(); err != nil {
		return err
	}
	return r.Skip(4) // extent
}

func decodeHeaderV6(r *binio.Reader, h *Header) error {
	sectionSize, err := r.Uint32()
	if err != nil {
		return err
	}
	if int(sectionSize) > r.Remaining() {
		return fmt.Errorf("%w: metadata section of %d bytes exceeds buffer", ErrMalformedHeader, sectionSize)
	}

	remaining := int(sectionSize)
	for remaining > 0 {
		if remaining < 8 {
			return fmt.Errorf("%w: metadata section size misaligned", ErrMalformedHeader)
		}
		key, err := r.String(4)
		if err != nil {
			return err
		}
		blockSize, err := r.Uint32()
		if err != nil {
			return err
		}
		if int(blockSize) > remaining-8 {
			return fmt.Errorf("%w: metadata block %q of %d bytes exceeds section", ErrMalformedHeader, key, blockSize)
		}
		payload, err := r.Bytes(int(blockSize))
		if err != nil {
			return err
		}

		if h.Blocks.Has(key) {
			log.Warnf("csfile: duplicate metadata block %q, keeping the latest", key)
		}
		h.Blocks.Set(key, decodeBlock(key, payload, h))

		remaining -= 8 + int(blockSize)
	}
	return nil
}

func readBool32(r *binio.Reader) (bool, error) {
	v, err := r.Int32()
	return v != 0, err
}

// decodeSpectrum reads every range cell's block. The buffer ending before
// a declared row is complete is a TruncatedSpectrum failure; nothing
// partial is returned.
//
// The header dimensions are untrusted until checked against the bytes
// actually remaining; nothing is allocated from them before that check.
func decodeSpectrum(r *binio.Reader, h *Header) (*Spectrum, error) {
	remaining := int64(r.Remaining())
	floatsPerCell := int64(NumAntennas+2*NumAntennaPairs) * int64(h.NumDopplerCells)
	if h.Kind >= 2 {
		floatsPerCell += int64(h.NumDopplerCells)
	}
	bytesPerCell := 4 * floatsPerCell
	if bytesPerCell > 0 && int64(h.NumRangeCells) > remaining/bytesPerCell {
		return nil, fmt.Errorf("csfile: header declares %d range cells of %d bytes each, %d bytes remain: %w",
			h.NumRangeCells, bytesPerCell, remaining, ErrTruncatedSpectrum)
	}
	if bytesPerCell == 0 && int64(h.NumRangeCells) > remaining {
		// Zero-width rows consume no data, but a cell count beyond the
		// buffer's own length cannot be genuine either.
		return nil, fmt.Errorf("csfile: header declares %d empty range cells, %d bytes remain: %w",
			h.NumRangeCells, remaining, ErrTruncatedSpectrum)
	}

	s := &Spectrum{Blocks: make([]SpectrumBlock, h.NumRangeCells)}
	for i := range s.Blocks {
		block, err := decodeSpectrumBlock(r, h)
		if err != nil {
			return nil, fmt.Errorf("csfile: range cell %d: %w", i, err)
		}
		s.Blocks[i] = block
	}
	return s, nil
}

func decodeSpectrumBlock(r *binio.Reader, h *Header) (SpectrumBlock, error) {
	var block SpectrumBlock

	block.Self = make([][]float64, NumAntennas)
	for a := range block.Self {
		row, err := decodeRealRow(r, h)
		if err != nil {
			return SpectrumBlock{}, fmt.Errorf("self spectrum %d: %w", a, err)
		}
		block.Self[a] = row
	}

	block.Cross = make([][]complex128, NumAntennaPairs)
	for p := range block.Cross {
		row, err := decodeComplexRow(r, h)
		if err != nil {
			return SpectrumBlock{}, fmt.Errorf("cross spectrum %d: %w", p, err)
		}
		block.Cross[p] = row
	}

	if h.Kind >= 2 {
		row, err := decodeRealRow(r, h)
		if err != nil {
			return SpectrumBlock{}, fmt.Errorf("quality spectrum: %w", err)
		}
		block.Quality = row
	}
	return block, nil
}

func decodeRealRow(r *binio.Reader, h *Header) ([]float64, error) {
	row := make([]float64, h.NumDopplerCells)
	for j := range row {
		v, err := r.Float32()
		if err != nil {
			return nil, ErrTruncatedSpectrum
		}
		row[j] = float64(v)
	}
	return row, nil
}

func decodeComplexRow(r *binio.Reader, h *Header) ([]complex128, error) {
	row := make([]complex128, h.NumDopplerCells)
	for j := range row {
		re, err := r.Float32()
		if err != nil {
			return nil, ErrTruncatedSpectrum
		}
		im, err := r.Float32()
		if err != nil {
			return nil, ErrTruncatedSpectrum
		}
		row[j] = complex(float64(re), float64(im))
	}
	return row, nil
}
