package format

import (
	"fmt"

	"github.com/arloliu/posefile/errs"
)

type (
	DataFormat      uint8
	CompressionType uint8
)

const (
	Json DataFormat = 0x0 // Json represents a JSON named-array archive.
	Xml  DataFormat = 0x1 // Xml represents an XML named-array archive.
	Yaml DataFormat = 0x2 // Yaml represents a YAML archive with the ".yaml" extension.
	Yml  DataFormat = 0x3 // Yml represents a YAML archive with the ".yml" extension.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

var dataFormatNames = [...]string{
	Json: "json",
	Xml:  "xml",
	Yaml: "yaml",
	Yml:  "yml",
}

// DataFormats lists every defined archive format.
func DataFormats() []DataFormat {
	return []DataFormat{Json, Xml, Yaml, Yml}
}

// String returns the format name, which is also the archive file extension.
// Undefined values return "unknown".
func (f DataFormat) String() string {
	if int(f) < len(dataFormatNames) {
		return dataFormatNames[f]
	}

	return "unknown"
}

// Valid reports whether f is one of the defined formats.
func (f DataFormat) Valid() bool {
	return int(f) < len(dataFormatNames)
}

// ParseDataFormat maps a format name back to its DataFormat.
//
// The mapping is exact and case-sensitive: "json", "xml", "yaml" and "yml".
// Any other string fails with errs.ErrUnknownFormat.
func ParseDataFormat(s string) (DataFormat, error) {
	for i, name := range dataFormatNames {
		if name == s {
			return DataFormat(i), nil
		}
	}

	return Json, fmt.Errorf("%w: %q does not correspond to any known format (json, xml, yaml, yml)", errs.ErrUnknownFormat, s)
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a case-insensitive name ("none", "zstd", "s2", "lz4") to a
// CompressionType. The empty string means CompressionNone.
func ParseCompressionType(s string) (CompressionType, error) {
	switch s {
	case "", "none", "None", "NONE":
		return CompressionNone, nil
	case "zstd", "Zstd", "ZSTD":
		return CompressionZstd, nil
	case "s2", "S2":
		return CompressionS2, nil
	case "lz4", "LZ4":
		return CompressionLZ4, nil
	default:
		return CompressionNone, fmt.Errorf("%w: %q", errs.ErrUnsupportedCompression, s)
	}
}
