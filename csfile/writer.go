package csfile

import (
	"fmt"

	"github.com/cwbudde/algo-radarqc/internal/binio"
)

// encodedBlock pairs a metadata tag with its serialized payload.
type encodedBlock struct {
	key     string
	payload []byte
}

// encodeHeader writes the cumulative version segments, recomputing every
// extent field from the final header size so a clean decode→encode round
// trip reproduces the original bytes.
func encodeHeader(w *binio.Writer, h *Header) error {
	if err := h.validateDimensions(); err != nil {
		return err
	}

	var blocks []encodedBlock
	sectionSize := 0
	if h.Version >= 6 {
		for _, key := range h.Blocks.Keys() {
			value, _ := h.Blocks.Get(key)
			payload, err := encodeBlock(key, value)
			if err != nil {
				return err
			}
			blocks = append(blocks, encodedBlock{key: key, payload: payload})
			sectionSize += 8 + len(payload)
		}
	}
	headerSize := h.headerSize(sectionSize)

	w.Int16(h.Version)

	w.Uint32(h.rawTimestamp())
	w.Int32(int32(headerSize - v1Size))
	if h.Version == 1 {
		return nil
	}

	w.Int16(h.Kind)
	w.Int32(int32(headerSize - v2Size))
	if h.Version == 2 {
		return nil
	}

	w.String(h.SiteCode, 4)
	w.Int32(int32(headerSize - v3Size))
	if h.Version == 3 {
		return nil
	}

	w.Int32(h.CoverageMinutes)
	w.Bool32(h.DeletedSource)
	w.Bool32(h.OverrideSource)
	w.Float32(h.StartFreqMHz)
	w.Float32(h.RepFreqMHz)
	w.Float32(h.BandwidthKHz)
	w.Bool32(h.SweepUp)
	w.Int32(h.NumDopplerCells)
	w.Int32(h.NumRangeCells)
	w.Int32(h.FirstRangeCell)
	w.Float32(h.RangeCellDistKM)
	w.Int32(int32(headerSize - v4Size))
	if h.Version == 4 {
		return nil
	}

	w.Int32(h.OutputInterval)
	w.String(h.CreateTypeCode, 4)
	w.String(h.CreatorVersion, 4)
	w.Int32(h.NumActiveChannels)
	w.Int32(h.NumSpectraChannels)
	w.Uint32(h.ActiveChannels)
	w.Int32(int32(headerSize - v5Size))
	if h.Version == 5 {
		return nil
	}

	w.Uint32(uint32(sectionSize))
	for _, b := range blocks {
		w.String(b.key, 4)
		w.Uint32(uint32(len(b.payload)))
		w.RawBytes(b.payload)
	}
	return nil
}

// encodeSpectrum writes every range cell's block in decode order. The
// record must match the header's dimensions; a mismatch fails before any
// spectrum bytes are emitted.
func encodeSpectrum(w *binio.Writer, h *Header, s *Spectrum) error {
	if err := validateSpectrum(h, s); err != nil {
		return err
	}

	for i := range s.Blocks {
		block := &s.Blocks[i]
		for _, row := range block.Self {
			encodeRealRow(w, row)
		}
		for _, row := range block.Cross {
			encodeComplexRow(w, row)
		}
		if h.Kind >= 2 {
			encodeRealRow(w, block.Quality)
		}
	}
	return nil
}

// validateSpectrum checks the record-model invariants: block count equals
// the header's range cell count and every row has the Doppler cell count.
func validateSpectrum(h *Header, s *Spectrum) error {
	if len(s.Blocks) != int(h.NumRangeCells) {
		return fmt.Errorf("%w: %d blocks, header declares %d range cells",
			ErrDimensionMismatch, len(s.Blocks), h.NumRangeCells)
	}
	d := int(h.NumDopplerCells)
	for i := range s.Blocks {
		block := &s.Blocks[i]
		if len(block.Self) != NumAntennas || len(block.Cross) != NumAntennaPairs {
			return fmt.Errorf("%w: range cell %d has %d self / %d cross rows",
				ErrDimensionMismatch, i, len(block.Self), len(block.Cross))
		}
		for _, row := range block.Self {
			if len(row) != d {
				return fmt.Errorf("%w: range cell %d self row has %d doppler cells, want %d",
					ErrDimensionMismatch, i, len(row), d)
			}
		}
		for _, row := range block.Cross {
			if len(row) != d {
				return fmt.Errorf("%w: range cell %d cross row has %d doppler cells, want %d",
					ErrDimensionMismatch, i, len(row), d)
			}
		}
		if h.Kind >= 2 && len(block.Quality) != d {
			return fmt.Errorf("%w: range cell %d quality row has %d doppler cells, want %d",
				ErrDimensionMismatch, i, len(block.Quality), d)
		}
	}
	return nil
}

func encodeRealRow(w *binio.Writer, row []float64) {
	for _, v := range row {
		w.Float32(float32(v))
	}
}

func encodeComplexRow(w *binio.Writer, row []complex128) {
	for _, v := range row {
		w.Float32(float32(real(v)))
		w.Float32(float32(imag(v)))
	}
}
