package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	theme "github.com/goliatone/go-theme"

	internalLoader "github.com/goliatone/go-formspec/internal/loader"
	"github.com/goliatone/go-formspec/pkg/export"
	"github.com/goliatone/go-formspec/pkg/model"
	"github.com/goliatone/go-formspec/pkg/normalize"
	"github.com/goliatone/go-formspec/pkg/render"
	"github.com/goliatone/go-formspec/pkg/renderers/preview"
	"github.com/goliatone/go-formspec/pkg/source"
	"github.com/goliatone/go-formspec/pkg/validation"
)

const defaultRendererName = preview.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader source.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithValidator injects a validator, e.g. one built with a custom field type
// set.
func WithValidator(validator *validation.Validator) Option {
	return func(o *Orchestrator) {
		o.validator = validator
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformers registers transformers applied in order after validation.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		for _, t := range transformers {
			if t != nil {
				o.transformers = append(o.transformers, t)
			}
		}
	}
}

// WithThemeSelector resolves a theme for requests that do not carry one.
// defaultTheme and defaultVariant apply when the request leaves them empty.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.defaultTheme = defaultTheme
		o.defaultVariant = defaultVariant
	}
}

// WithLogger sets the pipeline logger. Stages log at debug level; export
// warnings are logged at warn level.
func WithLogger(logger *log.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithExportOptions forwards options to export.Build.
func WithExportOptions(options ...export.Option) Option {
	return func(o *Orchestrator) {
		o.exportOptions = append(o.exportOptions, options...)
	}
}

// Orchestrator coordinates the pipeline from a specification document to
// rendered or exported output.
type Orchestrator struct {
	loader          source.Loader
	validator       *validation.Validator
	registry        *render.Registry
	defaultRenderer string
	transformers    []Transformer
	themeSelector   theme.ThemeSelector
	defaultTheme    string
	defaultVariant  string
	exportOptions   []export.Option
	logger          *log.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one pass through the pipeline. Exactly one of Value,
// Document and Source is used, in that order of preference.
type Request struct {
	// Source identifies where the specification document lives.
	Source source.Source

	// Document bypasses the loader when the raw payload is already at hand.
	Document *source.Document

	// Value bypasses loading and decoding, e.g. for generator output that is
	// already a generic value.
	Value any

	// Renderer names the renderer to use; empty selects the default.
	Renderer string

	// Theme and Variant select a theme through the configured selector when
	// RenderOptions.Theme is nil.
	Theme   string
	Variant string

	RenderOptions render.RenderOptions
}

// Prepared is a validated specification together with its normalized form.
type Prepared struct {
	Spec   model.FormSpecification
	Form   *normalize.Form
	Result validation.Result
}

// Load fetches a document through the configured loader.
func (o *Orchestrator) Load(ctx context.Context, src source.Source) (source.Document, error) {
	if err := o.ready(ctx); err != nil {
		return source.Document{}, err
	}
	if src == nil {
		return source.Document{}, errors.New("orchestrator: source is required")
	}
	doc, err := o.loader.Load(ctx, src)
	if err != nil {
		return source.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	o.logger.Debug("loaded document", "location", doc.Location(), "bytes", len(doc.Raw()))
	return doc, nil
}

// Prepare resolves the request input, validates it and normalizes the result.
// Invalid input is reported as *InvalidSpecError.
func (o *Orchestrator) Prepare(ctx context.Context, req Request) (*Prepared, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}

	value, location, err := o.resolveValue(ctx, req)
	if err != nil {
		return nil, err
	}

	spec, result := o.validator.Parse(value)
	if !result.Valid {
		o.logger.Debug("specification rejected", "location", location, "reason", result.Reason, "issues", len(result.Issues))
		return nil, &InvalidSpecError{Location: location, Result: result}
	}

	if len(o.transformers) > 0 {
		for _, t := range o.transformers {
			if err := t.Transform(ctx, &spec); err != nil {
				return nil, fmt.Errorf("orchestrator: transform specification: %w", err)
			}
		}
		// transformed output goes through the same contract
		spec, result = o.validator.Parse(spec)
		if !result.Valid {
			return nil, &InvalidSpecError{Location: location, Result: result}
		}
	}

	form := normalize.Normalize(spec)
	o.logger.Debug("specification normalized",
		"location", location,
		"mode", form.Mode,
		"sections", len(form.Sections),
		"conditional", len(form.ConditionalSections()),
	)
	for _, title := range form.DuplicateTitles() {
		o.logger.Debug("duplicate section title", "title", title)
	}
	return &Prepared{Spec: spec, Form: form, Result: result}, nil
}

// Render prepares the request and renders it with the selected renderer.
func (o *Orchestrator) Render(ctx context.Context, req Request) ([]byte, error) {
	prepared, err := o.Prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		selection, err := o.selectTheme(req)
		if err != nil {
			return nil, err
		}
		opts.Theme = selection
	}

	output, renderer, err := o.registry.RenderForm(ctx, req.Renderer, o.defaultRenderer, prepared.Form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	o.logger.Debug("rendered form", "renderer", renderer.Name(), "bytes", len(output))
	return output, nil
}

// Export prepares the request and maps it to a forms-platform batch update.
func (o *Orchestrator) Export(ctx context.Context, req Request) (*export.Result, error) {
	prepared, err := o.Prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	result, err := export.Build(prepared.Form, o.exportOptions...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: export: %w", err)
	}
	for _, w := range result.Warnings {
		o.logger.Warn("export warning", "section", w.Section, "field", w.Field, "message", w.Message)
	}
	return result, nil
}

// Revise validates a revised specification produced for current. A valid
// revision is returned as the new specification; otherwise current is
// returned unchanged alongside the failing result.
func (o *Orchestrator) Revise(current model.FormSpecification, revised any) (model.FormSpecification, validation.Result) {
	validator := o.validator
	if validator == nil {
		validator = validation.Default()
	}
	spec, result := validator.Parse(revised)
	if !result.Valid {
		o.logger.Debug("revision rejected", "reason", result.Reason)
		return current, result
	}
	return spec, result
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return o.initialiseErr
}

func (o *Orchestrator) resolveValue(ctx context.Context, req Request) (any, string, error) {
	if req.Value != nil {
		return req.Value, "", nil
	}

	var doc source.Document
	switch {
	case req.Document != nil:
		doc = *req.Document
	case req.Source != nil:
		loaded, err := o.Load(ctx, req.Source)
		if err != nil {
			return nil, "", err
		}
		doc = loaded
	default:
		return nil, "", errors.New("orchestrator: value, document or source is required")
	}

	value, err := doc.Decode()
	if err != nil {
		// malformed payloads are a validation failure, not an infrastructure one
		return nil, "", &InvalidSpecError{
			Location: doc.Location(),
			Result: validation.Result{
				Reason: err.Error(),
				Issues: []validation.Issue{{Message: err.Error()}},
			},
		}
	}
	return value, doc.Location(), nil
}

func (o *Orchestrator) selectTheme(req Request) (*theme.Selection, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	name := req.Theme
	if name == "" {
		name = o.defaultTheme
	}
	variant := req.Variant
	if variant == "" {
		variant = o.defaultVariant
	}
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	return selection, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.loader == nil {
		o.loader = internalLoader.New(source.NewLoaderOptions())
	}
	if o.validator == nil {
		o.validator = validation.Default()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := preview.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
