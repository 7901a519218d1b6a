package csfile_test

import (
	"fmt"

	"github.com/cwbudde/algo-radarqc/csfile"
)

func ExampleNew() {
	header := csfile.Header{
		Version:         4,
		Kind:            1,
		SiteCode:        "KOKO",
		NumDopplerCells: 2,
		NumRangeCells:   1,
	}

	block := csfile.SpectrumBlock{
		Self: [][]float64{
			{1.0, 2.0},
			{1.5, 2.5},
			{2.0, 3.0},
		},
		Cross: [][]complex128{
			{complex(1, -1), complex(2, -2)},
			{complex(1, 0), complex(0, 1)},
			{complex(0.5, 0.5), complex(1.5, -0.5)},
		},
	}

	f, err := csfile.New(header, csfile.Spectrum{Blocks: []csfile.SpectrumBlock{block}})
	if err != nil {
		panic(err)
	}

	raw, err := csfile.DumpBytes(f)
	if err != nil {
		panic(err)
	}

	decoded, err := csfile.LoadBytes(raw)
	if err != nil {
		panic(err)
	}
	fmt.Println(decoded.Header.SiteCode, decoded.Spectrum.NumRangeCells(), len(raw))
	// Output: KOKO 1 144
}
