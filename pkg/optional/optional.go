// Package optional distinguishes an absent JSON key from an explicit null in
// partial-update payloads.
package optional

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Field is a patchable value. Set is true when the key was present in the
// payload; Null is true when it was present with a JSON null.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Of returns a present, non-null field
func Of[T any](value T) Field[T] {
	return Field[T]{Set: true, Value: value}
}

// Null returns a present field carrying an explicit null
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked when the key exists in the object.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON writes null for absent or null fields
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// HasValue reports whether the field was supplied with a non-null value
func (f Field[T]) HasValue() bool {
	return f.Set && !f.Null
}

// Ptr returns nil for a null field and a pointer to the value otherwise.
// Callers check Set first.
func (f Field[T]) Ptr() *T {
	if f.Null {
		return nil
	}
	v := f.Value
	return &v
}

// ApplyTo writes the patch onto a non-nullable destination when a value was supplied
func (f Field[T]) ApplyTo(dst *T) {
	if f.HasValue() {
		*dst = f.Value
	}
}

// ApplyToPtr writes the patch onto a nullable destination; null clears it
func (f Field[T]) ApplyToPtr(dst **T) {
	if f.Set {
		*dst = f.Ptr()
	}
}
