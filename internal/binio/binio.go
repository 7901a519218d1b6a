// Package binio provides the primitive layer of the Cross-Spectrum codec:
// fixed-width reads at an explicit cursor over a complete in-memory buffer,
// and fixed-width appends to a growable output buffer.
//
// The CS format is network (big-endian) byte order throughout; both Reader
// and Writer default to it. No alignment or padding is assumed beyond the
// declared field widths.
package binio

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrUnexpectedEOF is returned when a read would pass the end of the buffer.
// The cursor is left unchanged in that case.
var ErrUnexpectedEOF = errors.New("binio: unexpected end of buffer")

// Reader reads fixed-width values from an in-memory buffer.
type Reader struct {
	buf   []byte
	off   int
	order binary.ByteOrder
}

// NewReader returns a big-endian Reader over buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf, order: binary.BigEndian}
}

// NewReaderOrder returns a Reader over buf with an explicit byte order.
func NewReaderOrder(buf []byte, order binary.ByteOrder) *Reader {
	return &Reader{buf: buf, order: order}
}

// Len returns the total buffer length.
func (r *Reader) Len() int { return len(r.buf) }

// Offset returns the current cursor position.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

// take advances the cursor past n bytes and returns them.
func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, ErrUnexpectedEOF
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Skip discards n bytes.
func (r *Reader) Skip(n int) error {
	_, err := r.take(n)
	return err
}

// Bytes reads n raw bytes. The returned slice is a copy.
func (r *Reader) Bytes(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// String reads n bytes as a string. Trailing bytes, including NUL padding,
// are preserved so encode can reproduce them.
func (r *Reader) String(n int) (string, error) {
	b, err := r.take(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Uint8 reads one unsigned byte.
func (r *Reader) Uint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 reads an unsigned 16-bit integer.
func (r *Reader) Uint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(b), nil
}

// Int16 reads a signed 16-bit integer.
func (r *Reader) Int16() (int16, error) {
	v, err := r.Uint16()
	return int16(v), err
}

// Uint32 reads an unsigned 32-bit integer.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(b), nil
}

// Int32 reads a signed 32-bit integer.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// Float32 reads an IEEE single-precision float.
func (r *Reader) Float32() (float32, error) {
	v, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// Float64 reads an IEEE double-precision float.
func (r *Reader) Float64() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(r.order.Uint64(b)), nil
}

// Writer appends fixed-width values to a growable buffer.
type Writer struct {
	buf   []byte
	order binary.AppendByteOrder
}

// NewWriter returns an empty big-endian Writer.
func NewWriter() *Writer {
	return &Writer{order: binary.BigEndian}
}

// NewWriterOrder returns an empty Writer with an explicit byte order.
// binary.BigEndian and binary.LittleEndian both satisfy the interface.
func NewWriterOrder(order binary.AppendByteOrder) *Writer {
	return &Writer{order: order}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Bytes returns the accumulated output. The slice aliases the writer's
// internal buffer and remains valid until the next write.
func (w *Writer) Bytes() []byte { return w.buf }

// RawBytes appends b verbatim.
func (w *Writer) RawBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// String appends s padded with NUL bytes, or truncated, to exactly n bytes.
func (w *Writer) String(s string, n int) {
	if len(s) >= n {
		w.buf = append(w.buf, s[:n]...)
		return
	}
	w.buf = append(w.buf, s...)
	for i := len(s); i < n; i++ {
		w.buf = append(w.buf, 0)
	}
}

// Uint8 appends one unsigned byte.
func (w *Writer) Uint8(v uint8) {
	w.buf = append(w.buf, v)
}

// Uint16 appends an unsigned 16-bit integer.
func (w *Writer) Uint16(v uint16) {
	w.buf = w.order.AppendUint16(w.buf, v)
}

// Int16 appends a signed 16-bit integer.
func (w *Writer) Int16(v int16) {
	w.Uint16(uint16(v))
}

// Uint32 appends an unsigned 32-bit integer.
func (w *Writer) Uint32(v uint32) {
	w.buf = w.order.AppendUint32(w.buf, v)
}

// Int32 appends a signed 32-bit integer.
func (w *Writer) Int32(v int32) {
	w.Uint32(uint32(v))
}

// Bool32 appends a boolean as a 32-bit integer, the CS flag encoding.
func (w *Writer) Bool32(v bool) {
	if v {
		w.Int32(1)
	} else {
		w.Int32(0)
	}
}

// Float32 appends an IEEE single-precision float.
func (w *Writer) Float32(v float32) {
	w.Uint32(math.Float32bits(v))
}

// Float64 appends an IEEE double-precision float.
func (w *Writer) Float64(v float64) {
	w.buf = w.order.AppendUint64(w.buf, math.Float64bits(v))
}
