package ndarray

import (
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"

	"github.com/arloliu/posefile/endian"
	"github.com/arloliu/posefile/errs"
)

// CBOR tags from RFC 8746.
const (
	tagMultiDimArray = 40
	tagFloat32BE     = 81
	tagFloat32LE     = 85
)

// MarshalCBOR encodes a as an RFC 8746 multi-dimensional array (tag 40) holding a
// little-endian float32 typed array (tag 85).
func (a *Array) MarshalCBOR() ([]byte, error) {
	engine := endian.GetLittleEndianEngine()

	payload := make([]byte, 0, 4*a.Volume())
	for _, v := range a.Data() {
		payload = endian.AppendFloat32(engine, payload, v)
	}

	dims := a.Dims()
	if dims == nil {
		dims = []int{}
	}

	return cbor.Marshal(cbor.Tag{
		Number: tagMultiDimArray,
		Content: []any{
			dims,
			cbor.Tag{Number: tagFloat32LE, Content: payload},
		},
	})
}

// UnmarshalCBOR decodes what MarshalCBOR produces. Big-endian float32 payloads (tag 81)
// are accepted too. Structural errors wrap errs.ErrSchemaViolation.
func (a *Array) UnmarshalCBOR(data []byte) error {
	var tag cbor.Tag
	if err := cbor.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("%w: cbor: %w", errs.ErrSchemaViolation, err)
	}

	if tag.Number != tagMultiDimArray {
		return fmt.Errorf("%w: cbor tag %d, want %d", errs.ErrSchemaViolation, tag.Number, tagMultiDimArray)
	}

	items, ok := tag.Content.([]any)
	if !ok || len(items) != 2 {
		return fmt.Errorf("%w: invalid multi-dimensional array content", errs.ErrSchemaViolation)
	}

	dims, err := cborDims(items[0])
	if err != nil {
		return err
	}

	values, err := cborFloat32s(items[1])
	if err != nil {
		return err
	}

	decoded, err := FromSlice(values, dims...)
	if err != nil {
		return err
	}

	*a = *decoded

	return nil
}

func cborDims(value any) ([]int, error) {
	raw, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: cbor dimensions are %T, want array", errs.ErrSchemaViolation, value)
	}

	dims := make([]int, len(raw))
	for i, v := range raw {
		d, ok := v.(uint64)
		if !ok || d > math.MaxInt32 {
			return nil, fmt.Errorf("%w: cbor dimension %d is %v", errs.ErrSchemaViolation, i, v)
		}
		dims[i] = int(d)
	}

	return dims, nil
}

func cborFloat32s(value any) ([]float32, error) {
	tag, ok := value.(cbor.Tag)
	if !ok {
		return nil, fmt.Errorf("%w: cbor payload is %T, want typed array", errs.ErrSchemaViolation, value)
	}

	var engine endian.EndianEngine
	switch tag.Number {
	case tagFloat32LE:
		engine = endian.GetLittleEndianEngine()
	case tagFloat32BE:
		engine = endian.GetBigEndianEngine()
	default:
		return nil, fmt.Errorf("%w: unsupported cbor typed array tag %d", errs.ErrSchemaViolation, tag.Number)
	}

	payload, ok := tag.Content.([]byte)
	if !ok || len(payload)%4 != 0 {
		return nil, fmt.Errorf("%w: invalid float32 typed array payload", errs.ErrSchemaViolation)
	}

	values := make([]float32, len(payload)/4)
	for i := range values {
		values[i] = endian.Float32(engine, payload[i*4:])
	}

	return values, nil
}
