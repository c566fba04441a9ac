package floatarray

import (
	"io"

	"github.com/arloliu/posefile/ndarray"
)

// defaultCodec uses the host byte order and no compression.
var defaultCodec = mustCodec()

func mustCodec(opts ...Option) *Codec {
	c, err := NewCodec(opts...)
	if err != nil {
		panic(err)
	}

	return c
}

// Encode returns the native-order record of a.
func Encode(a *ndarray.Array) []byte {
	return defaultCodec.Encode(a)
}

// AppendEncode appends the native-order record of a to dst.
func AppendEncode(dst []byte, a *ndarray.Array) []byte {
	return defaultCodec.AppendEncode(dst, a)
}

// Decode parses a native-order record.
func Decode(data []byte) (*ndarray.Array, error) {
	return defaultCodec.Decode(data)
}

// DecodeCount parses a native-order record that must hold declaredElementCount elements.
func DecodeCount(data []byte, declaredElementCount int) (*ndarray.Array, error) {
	return defaultCodec.DecodeCount(data, declaredElementCount)
}

// WriteArray writes the native-order record of a to w.
func WriteArray(w io.Writer, a *ndarray.Array) (int64, error) {
	return defaultCodec.WriteArray(w, a)
}

// ReadArray reads one native-order record from r.
func ReadArray(r io.Reader) (*ndarray.Array, error) {
	return defaultCodec.ReadArray(r)
}

// SaveFile writes a to path using a codec built from opts.
func SaveFile(path string, a *ndarray.Array, opts ...Option) error {
	c, err := codecFor(opts)
	if err != nil {
		return err
	}

	return c.SaveFile(path, a)
}

// LoadFile reads the array at path using a codec built from opts.
func LoadFile(path string, opts ...Option) (*ndarray.Array, error) {
	c, err := codecFor(opts)
	if err != nil {
		return nil, err
	}

	return c.LoadFile(path)
}

func codecFor(opts []Option) (*Codec, error) {
	if len(opts) == 0 {
		return defaultCodec, nil
	}

	return NewCodec(opts...)
}
