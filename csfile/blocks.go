package csfile

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/cwbudde/algo-radarqc/internal/binio"
)

// BlockList is the ordered key/value store for version-6 metadata blocks.
// Keys keep their first-seen position; setting an existing key replaces
// the value in place. The zero value is ready to use.
//
// Values are either one of the typed block structs in this package, a
// string, or a raw []byte passthrough for tags the codec does not
// interpret.
type BlockList struct {
	keys   []string
	values map[string]any
}

// Len returns the number of blocks.
func (l *BlockList) Len() int { return len(l.keys) }

// Keys returns the block tags in insertion order.
func (l *BlockList) Keys() []string {
	out := make([]string, len(l.keys))
	copy(out, l.keys)
	return out
}

// Has reports whether a block with the given tag exists.
func (l *BlockList) Has(key string) bool {
	_, ok := l.values[key]
	return ok
}

// Get returns the block value for a tag.
func (l *BlockList) Get(key string) (any, bool) {
	v, ok := l.values[key]
	return v, ok
}

// Set stores a block value. A new tag is appended; an existing tag keeps
// its position and gets the new value.
func (l *BlockList) Set(key string, value any) {
	if l.values == nil {
		l.values = make(map[string]any)
	}
	if _, ok := l.values[key]; !ok {
		l.keys = append(l.keys, key)
	}
	l.values[key] = value
}

// Delete removes a block if present.
func (l *BlockList) Delete(key string) {
	if _, ok := l.values[key]; !ok {
		return
	}
	delete(l.values, key)
	for i, k := range l.keys {
		if k == key {
			l.keys = append(l.keys[:i], l.keys[i+1:]...)
			break
		}
	}
}

// TimeBlock is the TIME metadata block: the acquisition time split into
// calendar fields plus coverage and UTC offset.
type TimeBlock struct {
	TimeMark        uint8
	Year            uint16
	Month           uint8
	Day             uint8
	Hour            uint8
	Minute          uint8
	Seconds         float64
	CoverageSeconds float64
	HoursFromUTC    float64
}

// LocationBlock is the LOCA metadata block: the receive antenna position.
type LocationBlock struct {
	Latitude       float64
	Longitude      float64
	AltitudeMeters float64
}

// ReceiverInfo is the RCVI metadata block: receiver hardware identity and
// its reference gain.
type ReceiverInfo struct {
	ReceiverModel   uint32
	AntennaModel    uint32
	ReferenceGainDB float64
	Firmware        string // 32 bytes on the wire
}

// GainRemoval is the GLRM metadata block: bookkeeping of a gain/outlier
// removal pass applied upstream.
type GainRemoval struct {
	Method              uint8
	Version             uint8
	PointsRemoved       uint32
	TimesRemoved        uint32
	SegmentsRemoved     uint32
	PointPowerThreshold float64
	RangePowerThreshold float64
	RangeBinThreshold   float64
	RemoveDC            bool
}

// FirstOrderLines is the FOLS metadata block: four Doppler indices per
// range cell bounding the first-order Bragg regions.
type FirstOrderLines [][4]int32

const rcviFirmwareSize = 32

// blockDecoders dispatches typed decoding by tag. Tags absent here
// (SUPI, SUPM, SUPP, ANTG, FWIN, IQAP, FILL, WOLS, BRGR, vendor-private
// tags) pass through as raw bytes.
var blockDecoders = map[string]func(r *binio.Reader, h *Header) (any, error){
	"TIME": decodeTimeBlock,
	"ZONE": decodeStringBlock,
	"CITY": decodeStringBlock,
	"LOCA": decodeLocationBlock,
	"SITD": decodeStringBlock,
	"RCVI": decodeReceiverInfo,
	"TOOL": decodeStringBlock,
	"GLRM": decodeGainRemoval,
	"FOLS": decodeFirstOrderLines,
	"END6": decodeStringBlock,
}

// decodeBlock interprets one metadata payload. Any payload the typed
// decoder cannot consume exactly is kept as raw bytes so encode can
// reproduce it unchanged.
func decodeBlock(key string, payload []byte, h *Header) any {
	decode, ok := blockDecoders[key]
	if !ok {
		log.Debugf("csfile: unknown metadata block %q (%d bytes), stored raw", key, len(payload))
		return append([]byte(nil), payload...)
	}

	r := binio.NewReader(payload)
	v, err := decode(r, h)
	if err != nil || r.Remaining() != 0 {
		log.Debugf("csfile: metadata block %q does not match its documented layout, stored raw", key)
		return append([]byte(nil), payload...)
	}
	return v
}

// encodeBlock serializes one metadata value to its payload bytes.
func encodeBlock(key string, value any) ([]byte, error) {
	w := binio.NewWriter()
	switch v := value.(type) {
	case []byte:
		w.RawBytes(v)
	case string:
		w.String(v, len(v))
	case TimeBlock:
		w.Uint8(v.TimeMark)
		w.Uint16(v.Year)
		w.Uint8(v.Month)
		w.Uint8(v.Day)
		w.Uint8(v.Hour)
		w.Uint8(v.Minute)
		w.Float64(v.Seconds)
		w.Float64(v.CoverageSeconds)
		w.Float64(v.HoursFromUTC)
	case LocationBlock:
		w.Float64(v.Latitude)
		w.Float64(v.Longitude)
		w.Float64(v.AltitudeMeters)
	case ReceiverInfo:
		w.Uint32(v.ReceiverModel)
		w.Uint32(v.AntennaModel)
		w.Float64(v.ReferenceGainDB)
		w.String(v.Firmware, rcviFirmwareSize)
	case GainRemoval:
		w.Uint8(v.Method)
		w.Uint8(v.Version)
		w.Uint32(v.PointsRemoved)
		w.Uint32(v.TimesRemoved)
		w.Uint32(v.SegmentsRemoved)
		w.Float64(v.PointPowerThreshold)
		w.Float64(v.RangePowerThreshold)
		w.Float64(v.RangeBinThreshold)
		if v.RemoveDC {
			w.Uint8(1)
		} else {
			w.Uint8(0)
		}
	case FirstOrderLines:
		for _, cell := range v {
			for _, idx := range cell {
				w.Int32(idx)
			}
		}
	default:
		return nil, fmt.Errorf("csfile: metadata block %q has unsupported type %T", key, value)
	}
	return w.Bytes(), nil
}

func decodeTimeBlock(r *binio.Reader, _ *Header) (any, error) {
	var b TimeBlock
	var err error
	if b.TimeMark, err = r.Uint8(); err != nil {
		return nil, err
	}
	if b.Year, err = r.Uint16(); err != nil {
		return nil, err
	}
	for _, field := range []*uint8{&b.Month, &b.Day, &b.Hour, &b.Minute} {
		if *field, err = r.Uint8(); err != nil {
			return nil, err
		}
	}
	for _, field := range []*float64{&b.Seconds, &b.CoverageSeconds, &b.HoursFromUTC} {
		if *field, err = r.Float64(); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func decodeStringBlock(r *binio.Reader, _ *Header) (any, error) {
	s, err := r.String(r.Remaining())
	if err != nil {
		return nil, err
	}
	return s, nil
}

func decodeLocationBlock(r *binio.Reader, _ *Header) (any, error) {
	var b LocationBlock
	var err error
	for _, field := range []*float64{&b.Latitude, &b.Longitude, &b.AltitudeMeters} {
		if *field, err = r.Float64(); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func decodeReceiverInfo(r *binio.Reader, _ *Header) (any, error) {
	var b ReceiverInfo
	var err error
	if b.ReceiverModel, err = r.Uint32(); err != nil {
		return nil, err
	}
	if b.AntennaModel, err = r.Uint32(); err != nil {
		return nil, err
	}
	if b.ReferenceGainDB, err = r.Float64(); err != nil {
		return nil, err
	}
	if b.Firmware, err = r.String(rcviFirmwareSize); err != nil {
		return nil, err
	}
	return b, nil
}

func decodeGainRemoval(r *binio.Reader, _ *Header) (any, error) {
	var b GainRemoval
	var err error
	if b.Method, err = r.Uint8(); err != nil {
		return nil, err
	}
	if b.Version, err = r.Uint8(); err != nil {
		return nil, err
	}
	for _, field := range []*uint32{&b.PointsRemoved, &b.TimesRemoved, &b.SegmentsRemoved} {
		if *field, err = r.Uint32(); err != nil {
			return nil, err
		}
	}
	for _, field := range []*float64{&b.PointPowerThreshold, &b.RangePowerThreshold, &b.RangeBinThreshold} {
		if *field, err = r.Float64(); err != nil {
			return nil, err
		}
	}
	flag, err := r.Uint8()
	if err != nil {
		return nil, err
	}
	b.RemoveDC = flag != 0
	return b, nil
}

func decodeFirstOrderLines(r *binio.Reader, h *Header) (any, error) {
	lines := make(FirstOrderLines, h.NumRangeCells)
	for i := range lines {
		for j := 0; j < 4; j++ {
			idx, err := r.Int32()
			if err != nil {
				return nil, err
			}
			lines[i][j] = idx
		}
	}
	return lines, nil
}
