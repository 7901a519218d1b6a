package csfile

// The SeaSonde array stores three receive channels: two crossed loops and
// a monopole. Every range cell carries one self spectrum per antenna and
// one cross spectrum per antenna pair.
const (
	NumAntennas     = 3
	NumAntennaPairs = 3
)

// Antenna indices for SpectrumBlock.Self and the record-level row views.
const (
	AntennaLoop1 = iota
	AntennaLoop2
	AntennaMonopole
)

// Pair indices for SpectrumBlock.Cross.
const (
	Pair12 = iota
	Pair13
	Pair23
)

// SpectrumBlock holds the spectra of one range cell. Self and Cross are
// indexed by the antenna and pair constants above; every row has the
// header's Doppler cell count. Quality is nil unless the file kind is 2
// or higher.
type SpectrumBlock struct {
	Self    [][]float64
	Cross   [][]complex128
	Quality []float64
}

// Spectrum is the ordered sequence of spectrum blocks of a record, one
// per range cell, gap-free from the header's first range cell.
type Spectrum struct {
	Blocks []SpectrumBlock
}

// NumRangeCells returns the number of range cells held.
func (s *Spectrum) NumRangeCells() int { return len(s.Blocks) }

// SelfRows returns one antenna's self spectra across all range cells as a
// range-major matrix. The rows alias the block storage, so mutating them
// mutates the record; this is the view the noise filter operates on.
func (s *Spectrum) SelfRows(antenna int) [][]float64 {
	if antenna < 0 || antenna >= NumAntennas {
		panic("csfile: antenna index out of range")
	}
	rows := make([][]float64, len(s.Blocks))
	for i := range s.Blocks {
		rows[i] = s.Blocks[i].Self[antenna]
	}
	return rows
}

// CrossRows returns one antenna pair's cross spectra across all range
// cells. The rows alias the block storage.
func (s *Spectrum) CrossRows(pair int) [][]complex128 {
	if pair < 0 || pair >= NumAntennaPairs {
		panic("csfile: antenna pair index out of range")
	}
	rows := make([][]complex128, len(s.Blocks))
	for i := range s.Blocks {
		rows[i] = s.Blocks[i].Cross[pair]
	}
	return rows
}

// QualityRows returns the quality spectra across all range cells, or nil
// for files without them. The rows alias the block storage.
func (s *Spectrum) QualityRows() [][]float64 {
	if len(s.Blocks) == 0 || s.Blocks[0].Quality == nil {
		return nil
	}
	rows := make([][]float64, len(s.Blocks))
	for i := range s.Blocks {
		rows[i] = s.Blocks[i].Quality
	}
	return rows
}
