package tui

import "slices"

// Choice prompts exchange positions in the displayed option list. These
// helpers translate between positions and option text.

// position returns the index of value in options, or -1.
func position(options []string, value string) int {
	return slices.Index(options, value)
}

// positions returns the indices of values in options, in option order.
func positions(options, values []string) []int {
	var out []int
	for i, option := range options {
		if slices.Contains(values, option) {
			out = append(out, i)
		}
	}
	return out
}

// pick returns the options at the given indices, skipping any out of range.
func pick(options []string, indices []int) []string {
	var out []string
	for _, idx := range indices {
		if idx >= 0 && idx < len(options) {
			out = append(out, options[idx])
		}
	}
	return out
}
