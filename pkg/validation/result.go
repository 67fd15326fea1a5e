package validation

import (
	"fmt"
	"strings"
)

// Issue represents a single violation with optional location metadata.
// Path is a JSON pointer into the instance, Field the same location in
// dotted/indexed form (sections[0].fields[1].type).
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// String renders the issue as "<field>: <message>", using "(root)" for
// document-level violations.
func (i Issue) String() string {
	field := i.Field
	if field == "" {
		field = "(root)"
	}
	return field + ": " + i.Message
}

// Result captures the outcome of a validation call. Reason is always set when
// Valid is false; Issues lists every violation found, ordered by location.
type Result struct {
	Valid  bool    `json:"valid"`
	Reason string  `json:"reason,omitempty"`
	Issues []Issue `json:"issues,omitempty"`
}

// Err converts an invalid result into an error. Valid results return nil.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &Error{Reason: r.Reason, Issues: append([]Issue(nil), r.Issues...)}
}

// Error is the error form of an invalid Result.
type Error struct {
	Reason string
	Issues []Issue
}

func (e *Error) Error() string {
	if len(e.Issues) <= 1 {
		return "invalid form specification: " + e.Reason
	}
	return fmt.Sprintf("invalid form specification: %s (and %d more)", e.Reason, len(e.Issues)-1)
}

// Summary joins every issue on its own line.
func (r Result) Summary() string {
	if r.Valid {
		return ""
	}
	lines := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		lines = append(lines, issue.String())
	}
	if len(lines) == 0 {
		return r.Reason
	}
	return strings.Join(lines, "\n")
}

func invalid(issues ...Issue) Result {
	if len(issues) == 0 {
		issues = []Issue{{Message: "unknown validation failure"}}
	}
	for idx := range issues {
		if strings.TrimSpace(issues[idx].Message) == "" {
			issues[idx].Message = "unknown validation failure"
		}
	}
	return Result{
		Valid:  false,
		Reason: issues[0].String(),
		Issues: issues,
	}
}
