// Package options implements the generic functional options behind every WithXxx
// constructor in posefile.
//
// A package declares its option type as an alias:
//
//	type Option = options.Option[*Config]
//
// and builds options with New, for settings that validate their input, or NoError.
// Apply runs them in order and stops at the first failure, which it wraps with
// errs.ErrInvalidOption.
package options

import (
	"errors"
	"fmt"

	"github.com/arloliu/posefile/errs"
)

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
}

// Func is an Option backed by a function.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates an option from a function that may reject its input.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Compose bundles opts into one option applied in order. Nil options are skipped.
func Compose[T any](opts ...Option[T]) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			for _, opt := range opts {
				if opt == nil {
					continue
				}
				if err := opt.apply(target); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

// Apply applies opts to target in order. The first error stops the loop and is returned
// wrapped with errs.ErrInvalidOption.
func Apply[T any](target T, opts ...Option[T]) error {
	for i, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt.apply(target); err != nil {
			if errors.Is(err, errs.ErrInvalidOption) {
				return err
			}

			return fmt.Errorf("%w: option %d: %w", errs.ErrInvalidOption, i, err)
		}
	}

	return nil
}
