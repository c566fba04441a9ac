package config_test

import (
	"errors"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/arloliu/posefile/format"
	"github.com/arloliu/posefile/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.ArchiveFormat, convey.ShouldEqual, "yml")
			convey.So(cfg.HumanReadable, convey.ShouldBeTrue)
			convey.So(cfg.Compression, convey.ShouldEqual, "none")
			convey.So(cfg.OutputDir, convey.ShouldEqual, ".")
			convey.So(cfg.JSONPrecision, convey.ShouldEqual, 0)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the enumerated fields should parse", func() {
			f, err := cfg.DataFormat()
			convey.So(err, convey.ShouldBeNil)
			convey.So(f, convey.ShouldEqual, format.Yml)

			ct, err := cfg.CompressionType()
			convey.So(err, convey.ShouldBeNil)
			convey.So(ct, convey.ShouldEqual, format.CompressionNone)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid fields", t, func() {
		tests := []struct {
			name   string
			mutate func(c *config.Config)
		}{
			{"log level", func(c *config.Config) { c.LogLevel = "verbose" }},
			{"format", func(c *config.Config) { c.ArchiveFormat = "toml" }},
			{"compression", func(c *config.Config) { c.Compression = "brotli" }},
			{"byte order", func(c *config.Config) { c.ByteOrder = "middle" }},
			{"output dir", func(c *config.Config) { c.OutputDir = "" }},
			{"precision", func(c *config.Config) { c.JSONPrecision = 12 }},
		}

		for _, tt := range tests {
			convey.Convey("When "+tt.name+" is invalid", func() {
				cfg := config.New()
				tt.mutate(cfg)

				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}
