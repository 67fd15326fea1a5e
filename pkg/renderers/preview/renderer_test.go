package preview

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formspec/pkg/model"
	"github.com/goliatone/go-formspec/pkg/normalize"
	"github.com/goliatone/go-formspec/pkg/render"
	"github.com/goliatone/go-formspec/pkg/visibility"
)

func sampleForm() *normalize.Form {
	return normalize.Normalize(model.FormSpecification{
		Title:       "Customer <script>alert(1)</script>Survey",
		Description: "Tell us how we did",
		Sections: []model.Section{
			{
				Title: "Basics",
				Fields: []model.Field{
					{Label: "Email", Type: model.FieldTypeEmail, Required: true},
					{Label: "Returning customer?", Type: model.FieldTypeRadio, Options: []model.ChoiceOption{
						model.LabeledOption("Yes", "Details"),
						model.LabeledOption("No", model.GoToSubmitForm),
						model.LabeledOption("Maybe", "Nowhere"),
					}},
					{Label: "Tags", Type: model.FieldTypeCheckbox},
				},
			},
			{
				Title:      "Details",
				Conditions: []model.Condition{model.Equal("Returning customer?", "Yes")},
				Fields: []model.Field{
					{Label: "Satisfaction", Type: model.FieldTypeRating, Scale: model.IntPtr(7)},
					{Label: "Comments", Type: model.FieldTypeTextarea},
				},
			},
		},
	})
}

func renderString(t *testing.T, form *normalize.Form, opts render.RenderOptions) string {
	t.Helper()

	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), form, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRenderer_Metadata(t *testing.T) {
	t.Parallel()

	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != Name {
		t.Fatalf("unexpected name %q", renderer.Name())
	}
	if !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}
}

func TestRenderer_RendersSectionsAndControls(t *testing.T) {
	t.Parallel()

	html := renderString(t, sampleForm(), render.RenderOptions{})

	for _, want := range []string{
		`<h2>Basics</h2>`,
		`<h2>Details</h2>`,
		`type="email"`,
		`formspec-required`,
		`type="radio" name="s0-f1"`,
		`data-scale="7"`,
		`value="7"`,
		`choose a value from 1 to 7`,
		`<textarea id="s1-f1"`,
		`No options available`,
		`Submit form`,
		`formspec-condition`,
		requirementsNotice,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}
	if strings.Index(html, "Basics") > strings.Index(html, "Details</h2>") {
		t.Fatalf("sections rendered out of order")
	}
	if strings.Contains(html, "data-visibility") {
		t.Fatalf("visibility state should not render without answers")
	}
}

func TestRenderer_SanitizesGeneratorText(t *testing.T) {
	t.Parallel()

	html := renderString(t, sampleForm(), render.RenderOptions{})
	if strings.Contains(html, "<script") || strings.Contains(html, "alert(1)") {
		t.Fatalf("script content leaked into preview:\n%s", html)
	}
	if !strings.Contains(html, "Survey") {
		t.Fatalf("expected sanitized title text to remain")
	}
}

func TestRenderer_BranchHints(t *testing.T) {
	t.Parallel()

	html := renderString(t, sampleForm(), render.RenderOptions{})
	if !strings.Contains(html, "Yes: Go to section") {
		t.Fatalf("expected resolved branch hint")
	}
	if !strings.Contains(html, "not found, continues to next section") {
		t.Fatalf("expected unresolved branch hint")
	}
}

func TestRenderer_VisibilityStates(t *testing.T) {
	t.Parallel()

	form := sampleForm()

	shown := renderString(t, form, render.RenderOptions{
		Answers: visibility.Answers{"Returning customer?": "Yes"},
	})
	if !strings.Contains(shown, `id="section-1" data-index="1" data-visibility="visible"`) {
		t.Fatalf("expected details section visible:\n%s", shown)
	}

	hidden := renderString(t, form, render.RenderOptions{
		Answers: visibility.Answers{"Returning customer?": "No"},
	})
	if !strings.Contains(hidden, `id="section-1" data-index="1" data-visibility="hidden"`) {
		t.Fatalf("expected details section hidden:\n%s", hidden)
	}

	unknown := renderString(t, form, render.RenderOptions{
		Answers:    visibility.Answers{},
		Visibility: visibility.Options{Unknown: visibility.UnknownHidden},
	})
	if !strings.Contains(unknown, `id="section-1" data-index="1" data-visibility="hidden"`) {
		t.Fatalf("expected unknown-hidden policy to hide details section")
	}
}

func TestRenderer_FlatFormHasNoSectionHeading(t *testing.T) {
	t.Parallel()

	form := normalize.Normalize(model.FormSpecification{
		Title:       "Quick poll",
		Description: "One question",
		Fields:      []model.Field{{Label: "Name", Type: model.FieldTypeText}},
	})
	html := renderString(t, form, render.RenderOptions{})
	if strings.Contains(html, "<h2>") {
		t.Fatalf("synthetic section should not render a heading")
	}
	if strings.Contains(html, requirementsNotice) {
		t.Fatalf("notice should be absent when nothing is required")
	}
	if !strings.Contains(html, `data-mode="flat"`) {
		t.Fatalf("expected flat mode marker")
	}
}

func TestRenderer_ThemeTokensBecomeCSSVariables(t *testing.T) {
	t.Parallel()

	selection := &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:   "acme",
			Tokens: map[string]string{"brand.primary": "#111111", "radius": "4px"},
			Variants: map[string]theme.Variant{
				"dark": {Tokens: map[string]string{"brand.primary": "#222222;}</style>"}},
			},
		},
	}
	html := renderString(t, sampleForm(), render.RenderOptions{Theme: selection})

	if !strings.Contains(html, "--formspec-brand-primary: #222222/style;") {
		t.Fatalf("expected variant token to override base:\n%s", html)
	}
	if !strings.Contains(html, "--formspec-radius: 4px;") {
		t.Fatalf("expected radius token")
	}
	if !strings.Contains(html, `data-theme="acme"`) {
		t.Fatalf("expected theme marker")
	}
}

func TestRenderer_CustomTemplates(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"custom.tmpl": {Data: []byte(`{{ form.title|safe }}|{{ form.sections|length }}`)},
	}
	renderer, err := New(WithTemplatesFS(files), WithTemplateName("custom"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), sampleForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); !strings.HasSuffix(got, "|2") {
		t.Fatalf("unexpected custom output %q", got)
	}
}

func TestRenderer_NilForm(t *testing.T) {
	t.Parallel()

	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := renderer.Render(context.Background(), nil, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for nil form")
	}
}
