package store

import (
	"bytes"
	"encoding/json"
)

var null = []byte("null")

// Text is an optional scalar. Strings are kept as is and numbers keep their
// literal form; any other JSON value leaves Value nil.
type Text struct {
	Value *string
}

func (t *Text) UnmarshalJSON(data []byte) error {
	t.Value = nil
	if bytes.Equal(bytes.TrimSpace(data), null) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Value = &s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		s = n.String()
		t.Value = &s
	}
	return nil
}

// Optional decodes a nested value of type T. A null or mistyped value leaves
// Value nil instead of failing the enclosing document.
type Optional[T any] struct {
	Value *T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Value = nil
	if bytes.Equal(bytes.TrimSpace(data), null) {
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	o.Value = &v
	return nil
}
