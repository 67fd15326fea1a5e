// Package preview renders a read-only HTML preview of a normalized form:
// sections in order, a control per field, branch hints for choice options and
// the visibility condition of each conditional section.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-formspec/pkg/normalize"
	"github.com/goliatone/go-formspec/pkg/render"
	rendertemplate "github.com/goliatone/go-formspec/pkg/render/template"
	"github.com/goliatone/go-formspec/pkg/render/template/pongo"
)

// Name is the registry name of the preview renderer.
const Name = "preview"

const defaultTemplate = "templates/preview"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateName     string
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateName overrides the entry template, relative to the bundle root
// and without extension.
func WithTemplateName(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.templateName = name
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	entry     string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the preview renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), templateName: defaultTemplate}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("preview renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, entry: cfg.templateName}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, form *normalize.Form, options render.RenderOptions) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, errors.New("preview renderer: template renderer is nil")
	}
	if form == nil {
		return nil, errors.New("preview renderer: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := r.templates.RenderTemplate(r.entry, map[string]any{
		"form": buildView(form, options),
	})
	if err != nil {
		return nil, fmt.Errorf("preview renderer: render template: %w", err)
	}
	return []byte(out), nil
}
