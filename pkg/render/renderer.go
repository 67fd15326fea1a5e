// Package render defines the contract presentation collaborators implement to
// turn a normalized form into bytes (HTML previews, terminal walk-throughs).
package render

import (
	"context"

	"github.com/goliatone/go-formspec/pkg/normalize"
)

// Renderer converts a normalized form into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form *normalize.Form, options RenderOptions) ([]byte, error)
}
