// Package tui walks a normalized form in the terminal: it prompts for each
// field of every visible section, follows goTo branches and returns the
// collected answers.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formspec/pkg/model"
	"github.com/goliatone/go-formspec/pkg/normalize"
	"github.com/goliatone/go-formspec/pkg/render"
	"github.com/goliatone/go-formspec/pkg/visibility"
)

// Name is the registry name of the TUI renderer.
const Name = "tui"

const defaultSkipLabel = "(no answer)"

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	skipLabel    string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		skipLabel:    defaultSkipLabel,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render runs the walk-through and serializes the collected answers.
func (r *Renderer) Render(ctx context.Context, form *normalize.Form, opts render.RenderOptions) ([]byte, error) {
	answers, err := r.Collect(ctx, form, opts)
	if err != nil {
		return nil, err
	}
	return r.Serialize(answers)
}

// Collect prompts through the form. Sections hidden by the answers gathered so
// far are skipped; a choice with a goTo decides the section that follows.
// opts.Answers prefills defaults.
func (r *Renderer) Collect(ctx context.Context, form *normalize.Form, opts render.RenderOptions) (visibility.Answers, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	if form == nil {
		return nil, errors.New("tui: form is nil")
	}

	state := NewState(opts.Answers)
	if err := r.driver.Info(ctx, form.Title); err != nil {
		return nil, err
	}

	budget := len(form.Sections)*len(form.Sections) + len(form.Sections)
	idx := 0
	for idx >= 0 && idx < len(form.Sections) {
		if budget == 0 {
			return state.Answers(), ErrBranchCycle
		}
		budget--

		section := form.Sections[idx]
		if !visibility.EvaluateWith(section.Conditions, state.Answers(), opts.Visibility) {
			idx++
			continue
		}
		state.visit(idx)

		branch, err := r.promptSection(ctx, section, state)
		if err != nil {
			return state.Answers(), err
		}
		next, ok := form.Next(idx, branch)
		if !ok {
			break
		}
		idx = next
	}
	return state.Answers(), nil
}

// promptSection asks every field of the section and returns the branch of the
// last answered choice that carries one.
func (r *Renderer) promptSection(ctx context.Context, section normalize.Section, state *State) (normalize.Branch, error) {
	if !section.Synthetic {
		header := section.Title
		if section.Description != "" {
			header += "\n" + section.Description
		}
		if err := r.driver.Info(ctx, header); err != nil {
			return normalize.Branch{}, err
		}
	}

	var branch normalize.Branch
	for _, field := range section.Fields {
		b, err := r.promptField(ctx, field, state)
		if err != nil {
			return normalize.Branch{}, err
		}
		if b.Kind != normalize.BranchNone {
			branch = b
		}
	}
	return branch, nil
}

func (r *Renderer) promptField(ctx context.Context, field normalize.Field, state *State) (normalize.Branch, error) {
	switch field.Type {
	case model.FieldTypeRadio, model.FieldTypeSelect:
		return r.promptChoice(ctx, field, state)
	case model.FieldTypeCheckbox:
		return normalize.Branch{}, r.promptCheckbox(ctx, field, state)
	case model.FieldTypeRating:
		return normalize.Branch{}, r.promptRating(ctx, field, state)
	default:
		return normalize.Branch{}, r.promptText(ctx, field, state)
	}
}

func (r *Renderer) promptText(ctx context.Context, field normalize.Field, state *State) error {
	req := field.Requirements()
	defaultVal := ""
	if v, ok := state.Get(field.Label); ok {
		defaultVal = fmt.Sprint(v)
	}

	for {
		var response string
		var err error
		if field.Type == model.FieldTypeTextarea {
			response, err = r.driver.TextArea(ctx, TextAreaConfig{
				Message: field.Label,
				Default: defaultVal,
				Help:    helpFor(req),
			})
		} else {
			response, err = r.driver.Input(ctx, InputConfig{
				Message: field.Label,
				Default: defaultVal,
				Help:    helpFor(req),
			})
		}
		if err != nil {
			return err
		}

		value, err := checkText(req, response)
		if err != nil {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", field.Label, err))
			continue
		}
		state.Set(field.Label, value)
		return nil
	}
}

func (r *Renderer) promptChoice(ctx context.Context, field normalize.Field, state *State) (normalize.Branch, error) {
	if !field.HasOptions() {
		return normalize.Branch{}, r.driver.Info(ctx, fmt.Sprintf("%s: No options available", field.Label))
	}
	req := field.Requirements()

	options := displays(field.Options)
	if !req.MustAnswer {
		options = append(options, r.skipLabel)
	}
	defaultIdx := -1
	if v, ok := state.Get(field.Label); ok {
		defaultIdx = position(options, fmt.Sprint(v))
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      options,
			DefaultIndex: defaultIdx,
			Help:         helpFor(req),
		})
		if err != nil {
			return normalize.Branch{}, err
		}
		if idx < 0 || idx >= len(options) {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s selection", field.Label))
			continue
		}
		if idx >= len(field.Options) {
			state.Set(field.Label, nil)
			return normalize.Branch{}, nil
		}
		option := field.Options[idx]
		state.Set(field.Label, option.Display)
		return option.Branch, nil
	}
}

func (r *Renderer) promptCheckbox(ctx context.Context, field normalize.Field, state *State) error {
	if !field.HasOptions() {
		return r.driver.Info(ctx, fmt.Sprintf("%s: No options available", field.Label))
	}
	req := field.Requirements()
	options := displays(field.Options)

	var defaults []int
	if v, ok := state.Get(field.Label); ok {
		if selected, ok := v.([]string); ok {
			defaults = positions(options, selected)
		}
	}

	for {
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  field.Label,
			Options:  options,
			Defaults: defaults,
			Help:     helpFor(req),
		})
		if err != nil {
			return err
		}
		selected := pick(options, indices)
		if len(selected) == 0 {
			if req.MustAnswer {
				_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: must be answered", field.Label))
				continue
			}
			state.Set(field.Label, nil)
			return nil
		}
		state.Set(field.Label, selected)
		return nil
	}
}

func (r *Renderer) promptRating(ctx context.Context, field normalize.Field, state *State) error {
	req := field.Requirements()
	options := make([]string, 0, req.Scale+1)
	for i := 1; i <= req.Scale; i++ {
		options = append(options, strconv.Itoa(i))
	}
	if !req.MustAnswer {
		options = append(options, r.skipLabel)
	}
	defaultIdx := -1
	if v, ok := state.Get(field.Label); ok {
		defaultIdx = position(options, fmt.Sprint(v))
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      options,
			DefaultIndex: defaultIdx,
			Help:         helpFor(req),
		})
		if err != nil {
			return err
		}
		switch {
		case idx < 0 || idx >= len(options):
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s selection", field.Label))
			continue
		case idx >= req.Scale:
			state.Set(field.Label, nil)
		default:
			state.Set(field.Label, idx+1)
		}
		return nil
	}
}

// Serialize encodes answers in the configured output format.
func (r *Renderer) Serialize(answers visibility.Answers) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(encodeForm(answers)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(answers)), nil
	default:
		return json.Marshal(answers)
	}
}

func displays(options []normalize.Option) []string {
	out := make([]string, len(options))
	for i, option := range options {
		out[i] = option.Display
	}
	return out
}

func helpFor(req normalize.Requirements) string {
	rules := req.Rules()
	if len(rules) == 0 {
		return ""
	}
	parts := make([]string, len(rules))
	for i, rule := range rules {
		parts[i] = rule.Message
	}
	return strings.Join(parts, "; ")
}

func sortedKeys(answers visibility.Answers) []string {
	keys := make([]string, 0, len(answers))
	for key := range answers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func encodeForm(answers visibility.Answers) string {
	values := url.Values{}
	for _, key := range sortedKeys(answers) {
		switch v := answers[key].(type) {
		case []string:
			for _, item := range v {
				values.Add(key+"[]", item)
			}
		default:
			values.Set(key, fmt.Sprint(v))
		}
	}
	return values.Encode()
}

func prettyPrint(answers visibility.Answers) string {
	var b strings.Builder
	for _, key := range sortedKeys(answers) {
		switch v := answers[key].(type) {
		case []string:
			fmt.Fprintf(&b, "%s=%s\n", key, strings.Join(v, ", "))
		default:
			fmt.Fprintf(&b, "%s=%v\n", key, v)
		}
	}
	return b.String()
}
