package endian

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestNativeDetection(t *testing.T) {
	var probe uint32 = 0x3f800000 // 1.0f
	first := (*[4]byte)(unsafe.Pointer(&probe))[0]

	native := NativeEngine()
	require.True(t, CompareNativeEndian(native))
	require.NotEqual(t, IsNativeLittleEndian(), IsNativeBigEndian())

	if first == 0x00 {
		require.Equal(t, binary.LittleEndian, CheckEndianness())
		require.Equal(t, GetLittleEndianEngine(), native)
		require.False(t, CompareNativeEndian(GetBigEndianEngine()))
	} else {
		require.Equal(t, binary.BigEndian, CheckEndianness())
		require.Equal(t, GetBigEndianEngine(), native)
		require.False(t, CompareNativeEndian(GetLittleEndianEngine()))
	}
}

func TestNativeEngine_MatchesMemoryLayout(t *testing.T) {
	// A record written with the native engine must equal the in-memory float32 bytes.
	values := []float32{3, 2, 25, 3, 0.93, -1}

	var buf []byte
	for _, v := range values {
		buf = AppendFloat32(NativeEngine(), buf, v)
	}

	raw := unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*4)
	require.Equal(t, raw, buf)
}

func TestParseEngine(t *testing.T) {
	tests := []struct {
		name     string
		expected EndianEngine
	}{
		{"", NativeEngine()},
		{"native", NativeEngine()},
		{" Native ", NativeEngine()},
		{"Little", GetLittleEndianEngine()},
		{"le", GetLittleEndianEngine()},
		{"BIG", GetBigEndianEngine()},
		{"be", GetBigEndianEngine()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := ParseEngine(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.expected, engine)
		})
	}

	_, err := ParseEngine("middle")
	require.ErrorContains(t, err, `unknown byte order: "middle"`)
}

func TestFloat32Helpers(t *testing.T) {
	values := []float32{0, 1, -1, 3.14159, math.MaxFloat32, math.SmallestNonzeroFloat32, 25, 0.5}

	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		var buf []byte
		for _, v := range values {
			buf = AppendFloat32(engine, buf, v)
		}
		require.Len(t, buf, len(values)*4)

		for i, v := range values {
			require.Equal(t, v, Float32(engine, buf[i*4:i*4+4]))
		}

		put := make([]byte, 4)
		PutFloat32(engine, put, 2.5)
		require.Equal(t, float32(2.5), Float32(engine, put))
	}

	// 1.0f is 0x3F800000
	require.Equal(t, []byte{0x00, 0x00, 0x80, 0x3F}, AppendFloat32(GetLittleEndianEngine(), nil, 1))
	require.Equal(t, []byte{0x3F, 0x80, 0x00, 0x00}, AppendFloat32(GetBigEndianEngine(), nil, 1))
}

func TestFloat32Helpers_SpecialValues(t *testing.T) {
	nan := math.Float32frombits(0x7fc00001) // quiet NaN with payload
	special := []float32{float32(math.Inf(1)), float32(math.Inf(-1)), nan, float32(math.Copysign(0, -1))}

	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		for _, v := range special {
			got := Float32(engine, AppendFloat32(engine, nil, v))
			require.Equal(t, math.Float32bits(v), math.Float32bits(got))
		}
	}
}

func TestEngines_DisagreeOnLayout(t *testing.T) {
	le := AppendFloat32(GetLittleEndianEngine(), nil, 25)
	be := AppendFloat32(GetBigEndianEngine(), nil, 25)

	require.NotEqual(t, le, be)
	require.NotEqual(t, float32(25), Float32(GetBigEndianEngine(), le))
}
