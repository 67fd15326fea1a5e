package orchestrator

import (
	"errors"

	"github.com/goliatone/go-formspec/pkg/validation"
)

// InvalidSpecError reports a document that failed validation. Result carries
// the reason and every issue found.
type InvalidSpecError struct {
	Location string
	Result   validation.Result
}

func (e *InvalidSpecError) Error() string {
	msg := "orchestrator: invalid form specification: " + e.Result.Reason
	if e.Location != "" {
		msg = "orchestrator: " + e.Location + ": invalid form specification: " + e.Result.Reason
	}
	return msg
}

// Unwrap exposes the validation error form of the result.
func (e *InvalidSpecError) Unwrap() error {
	return e.Result.Err()
}

// AsInvalidSpec extracts an InvalidSpecError from err.
func AsInvalidSpec(err error) (*InvalidSpecError, bool) {
	var target *InvalidSpecError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
