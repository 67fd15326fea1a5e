package preview

import (
	"fmt"

	"github.com/goliatone/go-formspec/pkg/model"
	"github.com/goliatone/go-formspec/pkg/normalize"
	"github.com/goliatone/go-formspec/pkg/render"
	"github.com/goliatone/go-formspec/pkg/visibility"
)

const requirementsNotice = "Some questions have answer requirements. Required questions are marked with *."

const (
	stateVisible = "visible"
	stateHidden  = "hidden"
)

func buildView(form *normalize.Form, options render.RenderOptions) map[string]any {
	sections := make([]map[string]any, 0, len(form.Sections))
	for _, section := range form.Sections {
		sections = append(sections, sectionView(form, section, options))
	}

	view := map[string]any{
		"title":       sanitize(form.Title),
		"description": sanitize(form.Description),
		"mode":        string(form.Mode),
		"sections":    sections,
		"css_vars":    cssVars(options.Tokens()),
	}
	if form.HasValidationRequirements() {
		view["notice"] = requirementsNotice
	}
	if options.Theme != nil {
		view["theme"] = options.Theme.Theme
	}
	return view
}

func sectionView(form *normalize.Form, section normalize.Section, options render.RenderOptions) map[string]any {
	fields := make([]map[string]any, 0, len(section.Fields))
	for idx, field := range section.Fields {
		fields = append(fields, fieldView(form, section.Index, idx, field))
	}

	view := map[string]any{
		"index":       section.Index,
		"title":       sanitize(section.Title),
		"description": sanitize(section.Description),
		"synthetic":   section.Synthetic,
		"fields":      fields,
	}
	if form.HasConditions(section.Index) {
		view["condition"] = sanitize(visibility.DescribeAll(form.Conditions(section.Index), options.Visibility.Combinator))
	}
	if options.HasAnswers() {
		state := stateHidden
		if visibility.EvaluateWith(section.Conditions, options.Answers, options.Visibility) {
			state = stateVisible
		}
		view["state"] = state
	}
	return view
}

func fieldView(form *normalize.Form, sectionIdx, fieldIdx int, field normalize.Field) map[string]any {
	req := field.Requirements()
	view := map[string]any{
		"id":       fmt.Sprintf("s%d-f%d", sectionIdx, fieldIdx),
		"label":    sanitize(field.Label),
		"type":     string(field.Type),
		"required": req.MustAnswer,
	}

	switch field.Type {
	case model.FieldTypeTextarea:
		view["control"] = "textarea"
	case model.FieldTypeSelect:
		view["control"] = "select"
	case model.FieldTypeRadio, model.FieldTypeCheckbox:
		view["control"] = "choice"
		view["input_type"] = string(field.Type)
	case model.FieldTypeRating:
		view["control"] = "rating"
		view["scale"] = req.Scale
		values := make([]int, req.Scale)
		for i := range values {
			values[i] = i + 1
		}
		view["scale_values"] = values
	default:
		view["control"] = "input"
		view["input_type"] = inputType(req.Format)
	}

	if field.Type.IsChoice() {
		options := make([]map[string]any, 0, len(field.Options))
		var hints []map[string]any
		for _, option := range field.Options {
			display := sanitize(option.Display)
			options = append(options, map[string]any{"display": display})
			if text := branchHint(form, option.Branch); text != "" {
				hints = append(hints, map[string]any{"display": display, "text": sanitize(text)})
			}
		}
		view["options"] = options
		view["hints"] = hints
		view["empty_choice"] = !field.HasOptions()
	}

	var rules []string
	for _, rule := range req.Rules() {
		if rule.Kind == normalize.RuleRequired {
			continue
		}
		rules = append(rules, rule.Message)
	}
	view["rules"] = rules
	return view
}

func inputType(format normalize.Format) string {
	if format == normalize.FormatNone {
		return "text"
	}
	return string(format)
}

func branchHint(form *normalize.Form, branch normalize.Branch) string {
	switch branch.Kind {
	case normalize.BranchNextSection:
		return "Continue to next section"
	case normalize.BranchSubmit:
		return "Submit form"
	case normalize.BranchSection:
		if _, ok := form.SectionIndex(branch.Target); ok {
			return fmt.Sprintf("Go to section %q", branch.Target)
		}
		return fmt.Sprintf("Go to section %q (not found, continues to next section)", branch.Target)
	default:
		return ""
	}
}
