package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrBranchCycle is returned when goTo branches keep sending the
	// respondent around the form without reaching the end.
	ErrBranchCycle = errors.New("tui: branch cycle detected")
)
