package formspec

import (
	"context"

	theme "github.com/goliatone/go-theme"

	internalLoader "github.com/goliatone/go-formspec/internal/loader"
	"github.com/goliatone/go-formspec/pkg/export"
	"github.com/goliatone/go-formspec/pkg/orchestrator"
	"github.com/goliatone/go-formspec/pkg/render"
	"github.com/goliatone/go-formspec/pkg/source"
)

// RenderOptions describes per-request data renderers can use, such as answers
// for visibility evaluation or a theme selection.
type RenderOptions = render.RenderOptions

// InvalidSpecError is returned by the pipeline helpers for rejected input.
type InvalidSpecError = orchestrator.InvalidSpecError

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...source.LoaderOption) source.Loader {
	return internalLoader.New(source.NewLoaderOptions(options...))
}

// RenderHTML loads, validates and normalizes the specification at src and
// renders it with the named renderer (the HTML preview when empty).
func RenderHTML(ctx context.Context, src source.Source, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Render(ctx, orchestrator.Request{
		Source:   src,
		Renderer: rendererName,
	})
}

// RenderValue renders generator output that is already a generic value.
func RenderValue(ctx context.Context, value any, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Render(ctx, orchestrator.Request{
		Value:    value,
		Renderer: rendererName,
	})
}

// ExportBatch maps the specification at src to a forms-platform batch update.
func ExportBatch(ctx context.Context, src source.Source, options ...orchestrator.Option) (*export.Result, error) {
	return orchestrator.New(options...).Export(ctx, orchestrator.Request{Source: src})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// renderers receive the resolved selection.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector, defaultTheme, defaultVariant)
}
