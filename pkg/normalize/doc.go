// Package normalize derives the canonical, query-ready representation of a
// validated form specification. Flat documents become a single untitled
// section, choice options resolve to one display string plus an optional
// branch, and section conditions are indexed by position once so presentation
// and export code never branch on the original shape.
//
// Normalize assumes its input passed validation but never panics on input that
// did not; degenerate states (unknown condition fields, choice fields without
// options, branches to missing sections) are representable and left to
// consumers.
package normalize
