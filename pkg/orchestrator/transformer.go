package orchestrator

import (
	"context"

	"github.com/goliatone/go-formspec/pkg/model"
)

// Transformer rewrites a validated specification before it is normalized, for
// example to apply house style to titles. The result is validated again.
type Transformer interface {
	Transform(ctx context.Context, spec *model.FormSpecification) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, spec *model.FormSpecification) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, spec *model.FormSpecification) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, spec)
}
