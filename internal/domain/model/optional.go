package model

import "fmt"

// Optional marks a value that may be absent. The zero value is absent.
type Optional[T any] struct {
	value T
	valid bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, valid: true}
}

// None returns an absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.valid
}

// Valid reports whether a value is present.
func (o Optional[T]) Valid() bool { return o.valid }

// OrElse returns the value, or def when absent.
func (o Optional[T]) OrElse(def T) T {
	if o.valid {
		return o.value
	}
	return def
}

// String renders absence as an empty string.
func (o Optional[T]) String() string {
	if !o.valid {
		return ""
	}
	return fmt.Sprint(o.value)
}
