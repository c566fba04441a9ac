// Package pool recycles the byte buffers that binary array records and keypoint
// documents are assembled in.
package pool

import (
	"io"
	"sync"
)

// Buffer sizes.
//
// A record buffer holds one binary float-array record; a BODY_25 frame with a handful of
// people is a few KiB. A document buffer holds a whole keypoint JSON document, which is
// larger because every float is rendered as text.
const (
	RecordBufferDefaultSize    = 4 << 10 // 4KiB
	RecordBufferMaxThreshold   = 256 << 10
	DocumentBufferDefaultSize  = 16 << 10
	DocumentBufferMaxThreshold = 2 << 20 // 2MiB

	minGrowBytes = 4 << 10
)

// ByteBuffer is an append-only byte slice with explicit growth.
type ByteBuffer struct {
	B []byte
}

var (
	_ io.Writer       = (*ByteBuffer)(nil)
	_ io.StringWriter = (*ByteBuffer)(nil)
	_ io.ByteWriter   = (*ByteBuffer)(nil)
	_ io.WriterTo     = (*ByteBuffer)(nil)
)

// NewByteBuffer returns an empty buffer with capacity size.
func NewByteBuffer(size int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, size)}
}

// Bytes returns the buffered bytes. They stay valid until the next write or Reset.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Cap returns the capacity of the underlying slice.
func (bb *ByteBuffer) Cap() int { return cap(bb.B) }

// Reset empties the buffer and keeps its memory.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// Grow makes room for n more bytes without changing Len.
//
// Buffers up to 16KiB grow by at least 4KiB; larger ones by at least a quarter of their
// capacity, so a document rendered float by float reallocates a logarithmic number of times.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	step := minGrowBytes
	if c := cap(bb.B); c > 4*minGrowBytes {
		step = c / 4
	}

	grown := make([]byte, len(bb.B), len(bb.B)+max(step, n))
	copy(grown, bb.B)
	bb.B = grown
}

// Extend lengthens the buffer by n bytes, growing it when needed, and returns the new
// tail for the caller to fill. The tail's previous content is unspecified.
func (bb *ByteBuffer) Extend(n int) []byte {
	bb.Grow(n)

	start := len(bb.B)
	bb.B = bb.B[:start+n]

	return bb.B[start:]
}

// Write appends data.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteString appends s.
func (bb *ByteBuffer) WriteString(s string) (int, error) {
	bb.B = append(bb.B, s...)
	return len(s), nil
}

// WriteByte appends c.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// WriteTo writes the buffered bytes to w. The buffer is left unchanged.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// Pool hands out buffers of one kind. Buffers that grew beyond limit are dropped on Put
// instead of being kept alive by the pool.
type Pool struct {
	buffers sync.Pool
	limit   int
}

// NewPool returns a pool of buffers created with capacity size. A limit of 0 keeps every
// returned buffer.
func NewPool(size, limit int) *Pool {
	p := &Pool{limit: limit}
	p.buffers.New = func() any { return NewByteBuffer(size) }

	return p
}

// Get returns an empty buffer.
func (p *Pool) Get() *ByteBuffer {
	bb, _ := p.buffers.Get().(*ByteBuffer)
	return bb
}

// Put resets bb and makes it available to Get. bb must not be used afterwards.
func (p *Pool) Put(bb *ByteBuffer) {
	if bb == nil || (p.limit > 0 && cap(bb.B) > p.limit) {
		return
	}

	bb.Reset()
	p.buffers.Put(bb)
}

var (
	records   = NewPool(RecordBufferDefaultSize, RecordBufferMaxThreshold)
	documents = NewPool(DocumentBufferDefaultSize, DocumentBufferMaxThreshold)
)

// GetRecordBuffer returns a buffer for one binary array record.
func GetRecordBuffer() *ByteBuffer { return records.Get() }

// PutRecordBuffer returns a buffer obtained from GetRecordBuffer.
func PutRecordBuffer(bb *ByteBuffer) { records.Put(bb) }

// GetDocumentBuffer returns a buffer for one keypoint document.
func GetDocumentBuffer() *ByteBuffer { return documents.Get() }

// PutDocumentBuffer returns a buffer obtained from GetDocumentBuffer.
func PutDocumentBuffer(bb *ByteBuffer) { documents.Put(bb) }
