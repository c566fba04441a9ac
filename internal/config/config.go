// Package config defines the posefile command configuration and its loader.
package config

import (
	"fmt"
	"strings"

	"github.com/arloliu/posefile/format"
)

// Config contains process configuration for the posefile command.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// ArchiveFormat is the default named-array archive format: json, xml, yaml or yml.
	ArchiveFormat string `koanf:"archive_format"`

	// HumanReadable indents keypoint documents with tabs and line breaks.
	HumanReadable bool `koanf:"human_readable"`

	// Compression wraps binary array files: none, zstd, s2 or lz4.
	Compression string `koanf:"compression"`

	// ByteOrder of binary array files: native, little or big.
	ByteOrder string `koanf:"byte_order"`

	// OutputDir is where the people command writes keypoint documents.
	OutputDir string `koanf:"output_dir"`

	// JSONPrecision is the number of significant digits for keypoint floats; 0 means shortest
	// round-trip form.
	JSONPrecision int `koanf:"json_precision"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		ArchiveFormat: format.Yml.String(),
		HumanReadable: true,
		Compression:   "none",
		ByteOrder:     "native",
		OutputDir:     ".",
		JSONPrecision: 0,
	}
}

// DataFormat returns ArchiveFormat parsed.
func (c *Config) DataFormat() (format.DataFormat, error) {
	return format.ParseDataFormat(c.ArchiveFormat)
}

// CompressionType returns Compression parsed.
func (c *Config) CompressionType() (format.CompressionType, error) {
	return format.ParseCompressionType(c.Compression)
}

// Validate checks every enumerated field.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}

	if _, err := c.DataFormat(); err != nil {
		return fmt.Errorf("%w: archive_format: %w", ErrInvalidConfig, err)
	}

	if _, err := c.CompressionType(); err != nil {
		return fmt.Errorf("%w: compression: %w", ErrInvalidConfig, err)
	}

	switch strings.ToLower(c.ByteOrder) {
	case "", "native", "little", "le", "big", "be":
	default:
		return fmt.Errorf("%w: byte_order %q", ErrInvalidConfig, c.ByteOrder)
	}

	if c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir must not be empty", ErrInvalidConfig)
	}

	if c.JSONPrecision < 0 || c.JSONPrecision > 9 {
		return fmt.Errorf("%w: json_precision %d out of range [0, 9]", ErrInvalidConfig, c.JSONPrecision)
	}

	return nil
}
