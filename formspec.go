// Package formspec validates and normalizes generator-produced form
// specifications. The helpers here cover the common paths; the pkg/
// subpackages expose every stage individually.
package formspec

import (
	"github.com/goliatone/go-formspec/pkg/model"
	"github.com/goliatone/go-formspec/pkg/normalize"
	"github.com/goliatone/go-formspec/pkg/validation"
)

// Result aliases validation.Result.
type Result = validation.Result

// Form aliases the normalized form.
type Form = normalize.Form

// Validate checks an untrusted value against the specification contract using
// the default validator.
func Validate(value any) Result {
	return validation.Default().Validate(value)
}

// Parse validates value and decodes it into the typed model.
func Parse(value any) (model.FormSpecification, Result) {
	return validation.Default().Parse(value)
}

// Normalize derives the normalized form of a validated specification.
func Normalize(spec model.FormSpecification) *Form {
	return normalize.Normalize(spec)
}

// ParseAndNormalize runs Parse and, when the value is valid, Normalize. The
// form is nil for invalid input.
func ParseAndNormalize(value any) (*Form, Result) {
	spec, result := Parse(value)
	if !result.Valid {
		return nil, result
	}
	return normalize.Normalize(spec), result
}

// Revise validates revised generator output for current. An invalid revision
// leaves current in place.
func Revise(current model.FormSpecification, revised any) (model.FormSpecification, Result) {
	spec, result := Parse(revised)
	if !result.Valid {
		return current, result
	}
	return spec, result
}
