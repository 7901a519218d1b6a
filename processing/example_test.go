package processing_test

import (
	"fmt"

	"github.com/cwbudde/algo-radarqc/processing"
)

func ExampleCalculateGain() {
	power := []float64{1.0, 10.0, 100.0}
	gain := processing.CalculateGain(power, 0)
	fmt.Printf("%.1f %.1f %.1f\n", gain[0], gain[1], gain[2])
	// Output: 0.0 10.0 20.0
}

func ExampleNewComposite() {
	// Rectify outlier markers before converting to dB, relative to a
	// 20 dB reference gain.
	chain := processing.NewComposite(
		processing.Abs{},
		processing.NewGainCalculator(processing.WithReference(20)),
	)

	out, err := chain.Process([]float64{-100.0, 1000.0})
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.1f %.1f\n", out[0], out[1])
	// Output: 0.0 10.0
}

func ExampleNoiseFloorFilter_Filter() {
	// Two Doppler cells across three range cells, each column sitting on
	// its own uniform noise floor.
	cells := [][]float64{
		{1.0, 2.0},
		{1.0, 2.0},
		{6.0, 2.0},
	}

	filter := processing.NewNoiseFloorFilter()
	out, err := filter.Filter(cells)
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output: [[0 0] [0 0] [5 0]]
}
