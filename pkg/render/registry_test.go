package render

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formspec/pkg/model"
	"github.com/goliatone/go-formspec/pkg/normalize"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(context.Context, *normalize.Form, RenderOptions) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.MustRegister(namedRenderer("preview"))
	registry.MustRegister(namedRenderer("tui"))

	if err := registry.Register(namedRenderer("preview")); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer to fail")
	}
	if err := registry.Register(namedRenderer("")); err == nil {
		t.Fatalf("expected unnamed renderer to fail")
	}
	if diff := cmp.Diff([]string{"preview", "tui"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("tui") || registry.Has("pdf") {
		t.Fatalf("unexpected Has results")
	}
	if _, err := registry.Get("pdf"); !errors.Is(err, ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	if _, err := registry.Resolve("", ""); err == nil {
		t.Fatalf("expected empty registry to fail")
	}
	registry.MustRegister(namedRenderer("tui"))
	registry.MustRegister(namedRenderer("preview"))

	cases := []struct {
		name, fallback, want string
	}{
		{name: "tui", fallback: "preview", want: "tui"},
		{name: "", fallback: "tui", want: "tui"},
		{name: "", fallback: "pdf", want: "preview"},
		{name: "", fallback: "", want: "preview"},
	}
	for _, tc := range cases {
		renderer, err := registry.Resolve(tc.name, tc.fallback)
		if err != nil {
			t.Fatalf("resolve %q/%q: %v", tc.name, tc.fallback, err)
		}
		if renderer.Name() != tc.want {
			t.Fatalf("resolve %q/%q: got %q want %q", tc.name, tc.fallback, renderer.Name(), tc.want)
		}
	}
	if _, err := registry.Resolve("pdf", "preview"); !errors.Is(err, ErrUnknownRenderer) {
		t.Fatalf("explicit unknown name must not fall back, got %v", err)
	}
}

func TestRegistryRenderForm(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.MustRegister(namedRenderer("preview"))

	form := normalize.Normalize(model.FormSpecification{
		Title:       "T",
		Description: "D",
		Fields:      []model.Field{{Label: "Name", Type: model.FieldTypeText}},
	})
	out, renderer, err := registry.RenderForm(context.Background(), "", "preview", form, RenderOptions{})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	if string(out) != "preview" || renderer.Name() != "preview" {
		t.Fatalf("unexpected output %q from %v", out, renderer)
	}
	if _, _, err := registry.RenderForm(context.Background(), "preview", "", nil, RenderOptions{}); err == nil {
		t.Fatalf("expected nil form to fail")
	}
	if _, _, err := registry.RenderForm(context.Background(), "pdf", "", form, RenderOptions{}); !errors.Is(err, ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
}

func TestRenderOptionsTokens(t *testing.T) {
	t.Parallel()

	opts := RenderOptions{Theme: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:   "acme",
			Tokens: map[string]string{"brand": "#123456", "radius": "4px"},
			Variants: map[string]theme.Variant{
				"dark": {Tokens: map[string]string{"brand": "#654321"}},
			},
		},
	}}

	want := map[string]string{"brand": "#654321", "radius": "4px"}
	if diff := cmp.Diff(want, opts.Tokens()); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if (RenderOptions{}).Tokens() != nil {
		t.Fatalf("expected nil tokens without theme")
	}
}
