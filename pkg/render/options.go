package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formspec/pkg/visibility"
)

// RenderOptions describe per-request data renderers can use without mutating
// the normalized form.
type RenderOptions struct {
	// Answers, when set, lets renderers mark conditional sections as shown or
	// hidden. Nil means no answers are known and every section is rendered
	// with its condition description only.
	Answers visibility.Answers

	// Visibility carries the unknown-field policy and combinator applied when
	// Answers is set.
	Visibility visibility.Options

	// Theme is the resolved theme selection, if any.
	Theme *theme.Selection
}

// HasAnswers reports whether visibility should be evaluated.
func (o RenderOptions) HasAnswers() bool {
	return o.Answers != nil
}

// Tokens merges the selected theme's base tokens with its variant overrides.
func (o RenderOptions) Tokens() map[string]string {
	if o.Theme == nil || o.Theme.Manifest == nil {
		return nil
	}
	manifest := o.Theme.Manifest
	out := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		out[key] = value
	}
	if variant, ok := manifest.Variants[o.Theme.Variant]; ok {
		for key, value := range variant.Tokens {
			out[key] = value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
