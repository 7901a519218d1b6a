package csfile_test

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-radarqc/csfile"
)

// benchRecord builds a kind-2 record with plausible spectra values for
// the given geometry.
func benchRecord(rangeCells, dopplerCells int) *csfile.CSFile {
	header := csfile.Header{
		Version:         6,
		Kind:            2,
		SiteCode:        "BNCH",
		NumDopplerCells: int32(dopplerCells),
		NumRangeCells:   int32(rangeCells),
	}

	blocks := make([]csfile.SpectrumBlock, rangeCells)
	for i := range blocks {
		blocks[i].Self = make([][]float64, csfile.NumAntennas)
		for a := range blocks[i].Self {
			row := make([]float64, dopplerCells)
			for j := range row {
				row[j] = float64(i*dopplerCells+j) * 1e-6
			}
			blocks[i].Self[a] = row
		}
		blocks[i].Cross = make([][]complex128, csfile.NumAntennaPairs)
		for p := range blocks[i].Cross {
			row := make([]complex128, dopplerCells)
			for j := range row {
				row[j] = complex(float64(j)*1e-6, -float64(j)*1e-6)
			}
			blocks[i].Cross[p] = row
		}
		blocks[i].Quality = make([]float64, dopplerCells)
	}

	f, err := csfile.New(header, csfile.Spectrum{Blocks: blocks})
	if err != nil {
		panic(err)
	}
	return f
}

func benchGeometry(b *testing.B, run func(b *testing.B, f *csfile.CSFile, raw []byte)) {
	geometries := []struct{ rangeCells, dopplerCells int }{
		{8, 128},
		{32, 512},
		{64, 1024},
	}
	for _, g := range geometries {
		f := benchRecord(g.rangeCells, g.dopplerCells)
		raw, err := csfile.DumpBytes(f)
		if err != nil {
			b.Fatal(err)
		}
		name := strconv.Itoa(g.rangeCells) + "x" + strconv.Itoa(g.dopplerCells)
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(raw)))
			run(b, f, raw)
		})
	}
}

func BenchmarkLoadBytes(b *testing.B) {
	benchGeometry(b, func(b *testing.B, _ *csfile.CSFile, raw []byte) {
		for range b.N {
			if _, err := csfile.LoadBytes(raw); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkDumpBytes(b *testing.B) {
	benchGeometry(b, func(b *testing.B, f *csfile.CSFile, _ []byte) {
		for range b.N {
			if _, err := csfile.DumpBytes(f); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkRoundTrip(b *testing.B) {
	benchGeometry(b, func(b *testing.B, _ *csfile.CSFile, raw []byte) {
		for range b.N {
			f, err := csfile.LoadBytes(raw)
			if err != nil {
				b.Fatal(err)
			}
			if _, err := csfile.DumpBytes(f); err != nil {
				b.Fatal(err)
			}
		}
	})
}
