// Package options implements generic functional options shared by the
// container and snapshot configurations.
package options

import (
	"errors"
	"fmt"

	"github.com/arloliu/segseq/errs"
)

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
}

// Func is an Option backed by a function.
type Func[T any] struct {
	name      string
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	err := f.applyFunc(target)
	if err == nil || f.name == "" {
		return err
	}

	return fmt.Errorf("%s: %w", f.name, err)
}

// New creates an option from a function that may reject its input.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// Named creates an option like New whose errors are prefixed with name,
// so a failing option identifies itself, e.g. "replace policy: 9 is unknown".
func Named[T any](name string, fn func(T) error) *Func[T] {
	return &Func[T]{name: name, applyFunc: fn}
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

// Apply applies opts to target in order and stops at the first failure.
//
// Nil options are skipped. A failure is returned wrapped in errs.ErrInvalidOption.
//
// Parameters:
//   - target: Value being configured
//   - opts: Options to apply
//
// Returns:
//   - error: nil, or the first option error wrapped in ErrInvalidOption
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			if errors.Is(err, errs.ErrInvalidOption) {
				return err
			}

			return fmt.Errorf("%w: %w", errs.ErrInvalidOption, err)
		}
	}

	return nil
}
