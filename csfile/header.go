package csfile

import (
	"errors"
	"time"
)

// Errors returned by the codec.
var (
	// ErrUnsupportedVersion reports a file-format version outside 1..6.
	ErrUnsupportedVersion = errors.New("csfile: file version outside accepted range")

	// ErrMalformedHeader reports an invalid or inconsistent header field.
	ErrMalformedHeader = errors.New("csfile: malformed header")

	// ErrTruncatedSpectrum reports a buffer that ends before the spectrum
	// data declared by the header is complete.
	ErrTruncatedSpectrum = errors.New("csfile: truncated spectrum data")

	// ErrDimensionMismatch reports a record whose spectra do not match the
	// dimensions declared in its header.
	ErrDimensionMismatch = errors.New("csfile: spectrum dimensions inconsistent with header")
)

// Cumulative byte counts of the header through each format version,
// including the leading version field. Extent fields on the wire carry
// the remaining header size past their own version segment.
const (
	v1Size = 10
	v2Size = 16
	v3Size = 24
	v4Size = 72
	v5Size = 100
)

// csEpoch is the timestamp origin of the CS format (classic Mac epoch).
var csEpoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// Header stores all metadata from a Cross-Spectrum file. Fields are
// populated cumulatively by format version: a version-4 file leaves the
// version-5 and version-6 fields at their zero values.
type Header struct {
	Version int16 // file format version, 1..6

	// Version 1.
	Timestamp time.Time // acquisition time, stored as seconds since 1904-01-01 UTC

	// Version 2.
	Kind int16 // spectra kind; >= 2 means a quality row follows each cell's cross spectra

	// Version 3.
	SiteCode string // four-character site identifier

	// Version 4.
	CoverageMinutes int32   // acquisition coverage period
	DeletedSource   bool    // source file was deleted
	OverrideSource  bool    // source file was overridden
	StartFreqMHz    float32 // sweep start frequency
	RepFreqMHz      float32 // sweep repetition frequency
	BandwidthKHz    float32 // sweep bandwidth
	SweepUp         bool    // true when sweeping up in frequency
	NumDopplerCells int32   // Doppler (frequency) cells per spectrum row
	NumRangeCells   int32   // range cells, one spectrum block each
	FirstRangeCell  int32   // index of the first range cell present
	RangeCellDistKM float32 // distance between range cells

	// Version 5.
	OutputInterval     int32
	CreateTypeCode     string // four characters
	CreatorVersion     string // four characters
	NumActiveChannels  int32
	NumSpectraChannels int32
	ActiveChannels     uint32 // channel bitmask

	// Version 6: tagged metadata blocks, insertion-ordered.
	Blocks BlockList
}

// rawTimestamp converts the acquisition time to wire seconds. Times at or
// before the format epoch (including the zero time) encode as zero.
func (h *Header) rawTimestamp() uint32 {
	if !h.Timestamp.After(csEpoch) {
		return 0
	}
	return uint32(h.Timestamp.Sub(csEpoch) / time.Second)
}

// parseTimestamp converts wire seconds to the acquisition time.
func parseTimestamp(seconds uint32) time.Time {
	return csEpoch.Add(time.Duration(seconds) * time.Second)
}

// validateDimensions rejects negative dimension fields. Decode calls this
// before any spectrum data is read; encode calls it so a malformed record
// fails before emitting anything.
func (h *Header) validateDimensions() error {
	if h.Version < 1 || h.Version > 6 {
		return ErrUnsupportedVersion
	}
	if h.Version < 4 {
		return nil
	}
	if h.NumDopplerCells < 0 || h.NumRangeCells < 0 || h.FirstRangeCell < 0 {
		return ErrMalformedHeader
	}
	if h.Version >= 5 && (h.NumActiveChannels < 0 || h.NumSpectraChannels < 0) {
		return ErrMalformedHeader
	}
	return nil
}

// headerSize returns the total encoded header length for the given
// version-6 section size (zero for versions below 6).
func (h *Header) headerSize(sectionSize int) int {
	switch h.Version {
	case 1:
		return v1Size
	case 2:
		return v2Size
	case 3:
		return v3Size
	case 4:
		return v4Size
	case 5:
		return v5Size
	default:
		return v5Size + 4 + sectionSize
	}
}
