// Package csfile implements a lossless codec for the CODAR SeaSonde
// Cross-Spectrum (.cs) file format used by HF-radar receivers, together
// with the in-memory record model produced and consumed by it.
//
// A CS file is a fixed-layout big-endian header (cumulative format
// versions 1 through 6, version 6 adding a tagged key/value metadata
// section) followed by one spectrum block per range cell. Each block
// holds a real self spectrum per antenna, a complex cross spectrum per
// antenna pair, and, for kind >= 2 files, a quality row.
//
// # Usage
//
// Decode a complete buffer, inspect or transform the spectra, and
// serialize back:
//
//	f, err := csfile.LoadBytes(raw)
//	if err != nil {
//	    return err
//	}
//	err = f.Apply(processing.NewComposite(
//	    processing.Abs{},
//	    processing.NewGainCalculator(processing.WithReference(-34.2)),
//	))
//	...
//	out, err := csfile.DumpBytes(f)
//
// A decode with no processor applied re-encodes byte-for-byte: extent and
// size fields are recomputed to the values a well-formed writer produced,
// metadata blocks keep their order, and unknown blocks pass through as
// raw bytes.
//
// The codec operates on one complete in-memory buffer at a time; it is
// not a streaming ingest layer. Distinct records are independent and safe
// to process concurrently.
package csfile
