package options

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/posefile/errs"
)

var errNegative = errors.New("precision cannot be negative")

type writerConfig struct {
	precision int
	readable  bool
	lastCall  string
}

func withPrecision(digits int) Option[*writerConfig] {
	return New(func(c *writerConfig) error {
		if digits < 0 {
			return errNegative
		}
		c.precision = digits
		c.lastCall = "precision"

		return nil
	})
}

func withReadable(readable bool) Option[*writerConfig] {
	return NoError(func(c *writerConfig) {
		c.readable = readable
		c.lastCall = "readable"
	})
}

func TestNew(t *testing.T) {
	cfg := &writerConfig{}

	require.NoError(t, withPrecision(6).apply(cfg))
	require.Equal(t, 6, cfg.precision)

	err := withPrecision(-1).apply(cfg)
	require.ErrorIs(t, err, errNegative)
	require.Equal(t, 6, cfg.precision)
}

func TestNoError(t *testing.T) {
	cfg := &writerConfig{}

	require.NoError(t, withReadable(true).apply(cfg))
	require.True(t, cfg.readable)
	require.Equal(t, "readable", cfg.lastCall)
}

func TestApply(t *testing.T) {
	t.Run("Applies in order", func(t *testing.T) {
		cfg := &writerConfig{}

		require.NoError(t, Apply(cfg, withReadable(true), withPrecision(3)))
		require.True(t, cfg.readable)
		require.Equal(t, 3, cfg.precision)
		require.Equal(t, "precision", cfg.lastCall)
	})

	t.Run("Stops at the first error", func(t *testing.T) {
		cfg := &writerConfig{}

		err := Apply(cfg, withPrecision(2), withPrecision(-1), withReadable(true))
		require.ErrorIs(t, err, errs.ErrInvalidOption)
		require.ErrorIs(t, err, errNegative)
		require.Contains(t, err.Error(), "option 1")
		require.Equal(t, 2, cfg.precision)
		require.False(t, cfg.readable)
	})

	t.Run("Does not wrap twice", func(t *testing.T) {
		inner := New(func(*writerConfig) error {
			return Apply(&writerConfig{}, withPrecision(-1))
		})

		err := Apply(&writerConfig{}, inner)
		require.ErrorIs(t, err, errNegative)
		require.Equal(t, 1, strings.Count(err.Error(), errs.ErrInvalidOption.Error()))
	})

	t.Run("Skips nil options", func(t *testing.T) {
		cfg := &writerConfig{}

		require.NoError(t, Apply(cfg, nil, withPrecision(1)))
		require.Equal(t, 1, cfg.precision)
	})

	t.Run("No options", func(t *testing.T) {
		cfg := &writerConfig{}

		require.NoError(t, Apply(cfg))
		require.Equal(t, writerConfig{}, *cfg)
	})
}

func TestCompose(t *testing.T) {
	cfg := &writerConfig{}

	bundle := Compose[*writerConfig](withPrecision(9), nil, withReadable(true))
	require.NoError(t, Apply(cfg, bundle))
	require.Equal(t, 9, cfg.precision)
	require.True(t, cfg.readable)

	err := Apply(cfg, Compose(withReadable(false), withPrecision(-5)))
	require.ErrorIs(t, err, errs.ErrInvalidOption)
	require.False(t, cfg.readable)
}

func TestGenericTargets(t *testing.T) {
	var n int
	require.NoError(t, Apply(&n, NoError(func(p *int) { *p = 42 })))
	require.Equal(t, 42, n)
}
