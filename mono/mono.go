// Package mono implements a publisher of zero or one element.
package mono

import (
	"github.com/code19m/errx"
)

// Mono holds zero or one value. Operators return new instances and never
// modify their receiver.
type Mono[T any] struct {
	value   T
	present bool
}

// Just creates a Mono holding v.
func Just[T any](v T) Mono[T] {
	return Mono[T]{value: v, present: true}
}

// Empty creates a Mono holding nothing.
func Empty[T any]() Mono[T] {
	return Mono[T]{}
}

// JustOrEmpty creates a Mono holding *v, or an empty Mono when v is nil.
func JustOrEmpty[T any](v *T) Mono[T] {
	if v == nil {
		return Empty[T]()
	}
	return Just(*v)
}

// Map applies fn to the held value, if any.
func Map[T, U any](m Mono[T], fn func(T) U) Mono[U] {
	if !m.present {
		return Empty[U]()
	}
	return Just(fn(m.value))
}

// Filter keeps the value only when pred holds for it.
func (m Mono[T]) Filter(pred func(T) bool) Mono[T] {
	if !m.present || !pred(m.value) {
		return Empty[T]()
	}
	return m
}

// DoOnNext calls fn with the held value, if any, and returns m unchanged.
func (m Mono[T]) DoOnNext(fn func(T)) Mono[T] {
	if m.present {
		fn(m.value)
	}
	return m
}

// IsEmpty reports whether m holds no value.
func (m Mono[T]) IsEmpty() bool {
	return !m.present
}

// Block returns the held value. An empty Mono yields an error with code CodeNoValue.
func (m Mono[T]) Block() (T, error) {
	if !m.present {
		var zero T
		return zero, errx.New("[mono]: block on empty mono",
			errx.WithCode(CodeNoValue),
			errx.WithType(errx.T_NotFound))
	}
	return m.value, nil
}

// BlockOptional returns the held value and whether there was one.
func (m Mono[T]) BlockOptional() (T, bool) {
	return m.value, m.present
}
