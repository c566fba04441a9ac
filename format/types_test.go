package format

import (
	"testing"

	"github.com/arloliu/posefile/errs"
	"github.com/stretchr/testify/require"
)

func TestDataFormat_String(t *testing.T) {
	tests := []struct {
		format   DataFormat
		expected string
	}{
		{Json, "json"},
		{Xml, "xml"},
		{Yaml, "yaml"},
		{Yml, "yml"},
		{DataFormat(0x9), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestDataFormat_RoundTrip(t *testing.T) {
	for _, f := range DataFormats() {
		parsed, err := ParseDataFormat(f.String())
		require.NoError(t, err)
		require.Equal(t, f, parsed)
		require.True(t, parsed.Valid())
	}
}

func TestParseDataFormat_Unknown(t *testing.T) {
	for _, s := range []string{"", "JSON", "toml", "yaml ", "unknown"} {
		t.Run(s, func(t *testing.T) {
			_, err := ParseDataFormat(s)
			require.ErrorIs(t, err, errs.ErrUnknownFormat)
		})
	}
}

func TestCompressionType(t *testing.T) {
	tests := []struct {
		name     string
		expected CompressionType
	}{
		{"", CompressionNone},
		{"none", CompressionNone},
		{"zstd", CompressionZstd},
		{"s2", CompressionS2},
		{"LZ4", CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, err := ParseCompressionType(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.expected, ct)
		})
	}

	_, err := ParseCompressionType("brotli")
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
	require.Equal(t, "Unknown", CompressionType(0x0).String())
	require.Equal(t, "Zstd", CompressionZstd.String())
}
