// Package jsonstream is a minimal token-level JSON writer.
//
// The caller drives the structure explicitly (open, key, value, comma, close) and is
// responsible for separator placement; the writer only renders tokens and, in human
// readable mode, line breaks with tab indentation. Output accumulates in a pooled buffer
// and is flushed with WriteTo.
//
//	w := jsonstream.NewWriter(true)
//	defer w.Release()
//	w.ObjectOpen()
//	w.Version("1.3")
//	w.ObjectClose()
//	_, err := w.WriteTo(out)
package jsonstream

import (
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/arloliu/posefile/internal/pool"
)

// Writer renders JSON tokens into a pooled buffer. It is not safe for concurrent use.
type Writer struct {
	buf           *pool.ByteBuffer
	humanReadable bool
	depth         int
	precision     int
}

// NewWriter returns a Writer. humanReadable only adds whitespace.
func NewWriter(humanReadable bool) *Writer {
	return &Writer{
		buf:           pool.GetDocumentBuffer(),
		humanReadable: humanReadable,
		precision:     -1,
	}
}

// SetPrecision sets the number of significant digits used by Float. Zero or a negative value
// selects the shortest representation that reads back as the same float32.
func (w *Writer) SetPrecision(digits int) {
	if digits <= 0 {
		digits = -1
	}
	w.precision = digits
}

// HumanReadable reports whether the writer indents its output.
func (w *Writer) HumanReadable() bool {
	return w.humanReadable
}

// Depth returns the number of open objects and arrays.
func (w *Writer) Depth() int {
	return w.depth
}

// ObjectOpen writes '{'.
func (w *Writer) ObjectOpen() {
	w.depth++
	_ = w.buf.WriteByte('{')
	w.Enter()
}

// ObjectClose writes '}'.
func (w *Writer) ObjectClose() {
	w.depth--
	w.Enter()
	_ = w.buf.WriteByte('}')
}

// ArrayOpen writes '['. Arrays stay on one line; callers break lines with Enter.
func (w *Writer) ArrayOpen() {
	w.depth++
	_ = w.buf.WriteByte('[')
}

// ArrayClose writes ']'.
func (w *Writer) ArrayClose() {
	w.depth--
	_ = w.buf.WriteByte(']')
}

// Key writes a quoted, escaped object key followed by ':'.
func (w *Writer) Key(key string) {
	w.String(key)
	_ = w.buf.WriteByte(':')
	if w.humanReadable {
		_ = w.buf.WriteByte(' ')
	}
}

// String writes a quoted, escaped string value.
func (w *Writer) String(s string) {
	quoted, err := json.Marshal(s)
	if err != nil {
		// strings always marshal; invalid UTF-8 is replaced, not rejected
		quoted = []byte(strconv.Quote(s))
	}
	_, _ = w.buf.Write(quoted)
}

// Version writes the "version" field with a string value.
func (w *Writer) Version(version string) {
	w.Key("version")
	w.String(version)
}

// Float writes v as a JSON number. NaN and infinities have no JSON form and are written as
// null.
func (w *Writer) Float(v float32) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		_, _ = w.buf.WriteString("null")
		return
	}

	w.buf.B = strconv.AppendFloat(w.buf.B, f, 'g', w.precision, 32)
}

// Int writes an integer value.
func (w *Writer) Int(v int) {
	w.buf.B = strconv.AppendInt(w.buf.B, int64(v), 10)
}

// Comma writes ','.
func (w *Writer) Comma() {
	_ = w.buf.WriteByte(',')
}

// Enter writes a line break and indents to the current depth. It is a no-op unless the
// writer is human readable.
func (w *Writer) Enter() {
	if !w.humanReadable {
		return
	}

	_ = w.buf.WriteByte('\n')
	for _i, _n := 0, w.depth; _i < _n; _i++ {
		_ = w.buf.WriteByte('\t')
	}
}

// Len returns the number of bytes rendered so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns the rendered document. The slice is only valid until Release.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// WriteTo writes the rendered document to dst.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	return w.buf.WriteTo(dst)
}

// Release returns the buffer to the pool. The Writer must not be used afterwards.
func (w *Writer) Release() {
	if w.buf != nil {
		pool.PutDocumentBuffer(w.buf)
		w.buf = nil
	}
}
