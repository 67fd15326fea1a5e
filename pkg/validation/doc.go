// Package validation decides whether an arbitrary value conforms to the form
// specification contract. Failures are ordinary results carrying a readable
// reason (field path plus constraint), never panics.
//
// The contract is expressed as two JSON Schema documents generated from the
// Validator configuration: a sectioned schema, selected whenever the root
// carries a "sections" key, and the legacy flat schema requiring a non-empty
// "fields" list.
package validation
