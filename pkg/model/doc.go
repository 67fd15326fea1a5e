// Package model defines the form specification document produced by an
// external generator: a title, a description, and either an ordered list of
// sections or (legacy flat mode) a single ordered list of fields. Fields carry
// a type from a closed taxonomy, optional choice options and, for rating
// fields, a scale. Sections may declare conditions that make their visibility
// depend on another field's answer.
//
// Values of this package are plain data. Use the validation package to check
// untrusted input before calling Decode, and the normalize package to derive
// the canonical sectioned representation consumed by renderers and exporters.
package model
