// Package patch provides a tri-state JSON field for partial updates:
// absent (leave unchanged), null (clear) or a value (set).
package patch

import (
	"bytes"
	"encoding/json"
)

type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Of returns a field set to v.
func Of[T any](v T) Field[T] { return Field[T]{Set: true, Value: v} }

// Null returns a field explicitly set to null.
func Null[T any]() Field[T] { return Field[T]{Set: true, Null: true} }

// HasValue reports whether the field carries a non-null value.
func (f Field[T]) HasValue() bool { return f.Set && !f.Null }

// Ptr returns nil for null and a pointer to the value otherwise.
func (f Field[T]) Ptr() *T {
	if f.Null {
		return nil
	}
	v := f.Value
	return &v
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(b, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
