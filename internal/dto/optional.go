// Package dto holds request decoding, validation and response shaping for the HTTP API.
package dto

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Optional records whether a JSON field was present and whether it was an
// explicit null, which plain pointers cannot tell apart.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns a present, explicit-null Optional.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// Present reports whether the field carries a value.
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}

// Ptr returns the value as a pointer, nil when absent or null.
func (o Optional[T]) Ptr() *T {
	if !o.Present() {
		return nil
	}
	v := o.Value
	return &v
}

func (o Optional[T]) validationValue() interface{} {
	if !o.Present() {
		return nil
	}
	switch v := any(o.Value).(type) {
	case decimal.Decimal:
		f, _ := v.Float64()
		return &f
	case Date:
		t := v.Time
		return &t
	}
	v := o.Value
	return &v
}

// collect adds col to fields following PUT or PATCH rules: PUT writes every
// supplied field and clears explicit nulls; PATCH skips nulls.
func collect[T any](fields map[string]interface{}, col string, o Optional[T], partial bool, conv func(T) interface{}) {
	switch {
	case !o.Set:
	case o.Null:
		if !partial {
			fields[col] = nil
		}
	default:
		if conv != nil {
			fields[col] = conv(o.Value)
		} else {
			fields[col] = o.Value
		}
	}
}
