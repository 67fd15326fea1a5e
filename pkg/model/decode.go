package model

import (
	"encoding/json"
	"fmt"
)

// Decode converts a generic value (typically the map produced by decoding JSON
// or YAML) into a FormSpecification. It performs no shape validation beyond
// what typed decoding requires; run the validation package first for
// untrusted input.
func Decode(value any) (FormSpecification, error) {
	var spec FormSpecification
	if value == nil {
		return spec, fmt.Errorf("model: decode: value is nil")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return spec, fmt.Errorf("model: decode: %w", err)
	}
	if err := json.Unmarshal(raw, &spec); err != nil {
		return spec, fmt.Errorf("model: decode: %w", err)
	}
	return spec, nil
}

// IntPtr is a small helper for building Field.Scale values.
func IntPtr(v int) *int {
	return &v
}

// StringPtr is a small helper for building optional string attributes.
func StringPtr(v string) *string {
	return &v
}
