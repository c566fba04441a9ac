package floatarray

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/posefile/endian"
	"github.com/arloliu/posefile/errs"
	"github.com/arloliu/posefile/format"
	"github.com/arloliu/posefile/internal/fsutil"
	"github.com/arloliu/posefile/internal/pool"
	"github.com/arloliu/posefile/ndarray"
	"github.com/arloliu/posefile/pkg/logger"
	"github.com/arloliu/posefile/pkg/metrics"
)

// WriteArray writes the record of a to w, compressed if the codec was built with WithCompression.
// It returns the number of bytes written. Write failures wrap errs.ErrIO.
func (c *Codec) WriteArray(w io.Writer, a *ndarray.Array) (int64, error) {
	buf := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(buf)

	buf.Grow(EncodedSize(a))
	buf.B = c.AppendEncode(buf.B, a)

	payload, err := c.wrap(buf.Bytes())
	if err != nil {
		return 0, err
	}

	n, err := w.Write(payload)
	if err != nil {
		return int64(n), fmt.Errorf("%w: write array record: %w", errs.ErrIO, err)
	}

	return int64(n), nil
}

// ReadArray reads one record from r.
//
// Without compression exactly one record is consumed, so several records written back to
// back can be read in sequence; io.EOF is returned when r is exhausted before a record starts.
// With compression r is read to its end and must hold a single compressed record.
func (c *Codec) ReadArray(r io.Reader) (*ndarray.Array, error) {
	if c.cfg.compression != format.CompressionNone {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: read array record: %w", errs.ErrIO, err)
		}

		record, err := c.unwrap(data)
		if err != nil {
			return nil, err
		}

		return c.Decode(record)
	}

	buf := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(buf)

	// dimension count
	if err := readInto(r, buf, floatSize, true); err != nil {
		return nil, err
	}

	ndims, err := headerInt(endian.Float32(c.cfg.engine, buf.Bytes()), "dimension count")
	if err != nil {
		return nil, err
	}

	if err := readInto(r, buf, floatSize*ndims, false); err != nil {
		return nil, err
	}

	h, err := c.readHeader(buf.Bytes())
	if err != nil {
		return nil, err
	}

	if err := readInto(r, buf, floatSize*h.volume, false); err != nil {
		return nil, err
	}

	return c.Decode(buf.Bytes())
}

// readChunkSize bounds how far a stream read runs ahead of the bytes actually received, so a
// corrupt header cannot force a huge allocation up front.
const readChunkSize = 64 << 10

// readInto appends exactly n bytes from r to buf. A stream that ends early is truncated data,
// except that an empty stream at a record boundary (atStart) reports io.EOF.
func readInto(r io.Reader, buf *pool.ByteBuffer, n int, atStart bool) error {
	read := 0
	for read < n {
		step := min(n-read, readChunkSize)

		got, err := io.ReadFull(r, buf.Extend(step))
		read += got

		switch {
		case err == nil:
		case errors.Is(err, io.EOF) && atStart && read == 0:
			return io.EOF
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return fmt.Errorf("%w: needed %d more bytes, stream ended after %d", errs.ErrTruncatedData, n, read)
		default:
			return fmt.Errorf("%w: read array record: %w", errs.ErrIO, err)
		}
	}

	return nil
}

// SaveFile writes the record of a to path, replacing any existing file.
func (c *Codec) SaveFile(path string, a *ndarray.Array) error {
	buf := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(buf)

	buf.Grow(EncodedSize(a))
	buf.B = c.AppendEncode(buf.B, a)

	payload, err := c.wrap(buf.Bytes())
	if err == nil {
		err = fsutil.WriteFile(path, payload)
	}

	ctx := context.Background()
	if err != nil {
		c.cfg.metrics.RecordErrorByComponent(metrics.ComponentFloatArray, metrics.ErrorType(err))
		c.cfg.logger.Error(ctx, "save array failed", logger.String("path", path), logger.Error(err))

		return err
	}

	c.cfg.metrics.RecordBytesWritten(metrics.ComponentFloatArray, len(payload))
	c.cfg.logger.Debug(ctx, "saved array",
		logger.String("path", path),
		logger.String("shape", a.String()),
		logger.Int("bytes", len(payload)),
		logger.String("compression", c.cfg.compression.String()),
	)

	return nil
}

// LoadFile reads the record stored at path.
//
// A missing file wraps errs.ErrFileNotFound (and errs.ErrIO); other read failures wrap errs.ErrIO.
func (c *Codec) LoadFile(path string) (*ndarray.Array, error) {
	data, err := fsutil.ReadFile(path)
	if err != nil {
		c.cfg.metrics.RecordErrorByComponent(metrics.ComponentFloatArray, metrics.ErrorType(err))
		return nil, err
	}

	record, err := c.unwrap(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	a, err := c.Decode(record)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	c.cfg.logger.Debug(context.Background(), "loaded array", logger.String("path", path), logger.String("shape", a.String()))

	return a, nil
}

func (c *Codec) wrap(record []byte) ([]byte, error) {
	if c.cfg.compression == format.CompressionNone {
		return record, nil
	}

	out, err := c.cfg.codec.Compress(record)
	if err != nil {
		return nil, fmt.Errorf("%s compress array record: %w", c.cfg.compression, err)
	}

	return out, nil
}

func (c *Codec) unwrap(data []byte) ([]byte, error) {
	if c.cfg.compression == format.CompressionNone {
		return data, nil
	}

	out, err := c.cfg.codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s decompress array record: %w", errs.ErrTruncatedData, c.cfg.compression, err)
	}

	return out, nil
}
