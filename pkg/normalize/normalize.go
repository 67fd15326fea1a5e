package normalize

import "github.com/goliatone/go-formspec/pkg/model"

// Normalize builds a Form from spec. Sections are kept in declared order; a
// flat specification yields exactly one synthetic section with an empty title,
// the root fields in order, and no conditions.
func Normalize(spec model.FormSpecification) *Form {
	form := &Form{
		Title:       spec.Title,
		Description: spec.Description,
		Mode:        spec.Mode(),
	}

	if form.Mode == model.ModeSectioned {
		form.Sections = make([]Section, 0, len(spec.Sections))
		for idx, section := range spec.Sections {
			form.Sections = append(form.Sections, Section{
				Index:       idx,
				Title:       section.Title,
				Description: section.Description,
				Fields:      normalizeFields(section.Fields),
				Conditions:  cloneConditions(section.Conditions),
			})
		}
	} else {
		form.Sections = []Section{{
			Index:     0,
			Fields:    normalizeFields(spec.Fields),
			Synthetic: true,
		}}
	}

	form.conditional = make([]bool, len(form.Sections))
	for idx, section := range form.Sections {
		form.conditional[idx] = len(section.Conditions) > 0
	}
	return form
}

// Specification re-expresses the form as a model document in its original
// mode. Normalizing the result yields an identical Form.
func (f *Form) Specification() model.FormSpecification {
	spec := model.FormSpecification{
		Title:       f.Title,
		Description: f.Description,
	}
	if f.Mode != model.ModeSectioned {
		if len(f.Sections) > 0 {
			spec.Fields = denormalizeFields(f.Sections[0].Fields)
		}
		return spec
	}

	spec.Sections = make([]model.Section, 0, len(f.Sections))
	for _, section := range f.Sections {
		spec.Sections = append(spec.Sections, model.Section{
			Title:       section.Title,
			Description: section.Description,
			Fields:      denormalizeFields(section.Fields),
			Conditions:  cloneConditions(section.Conditions),
		})
	}
	return spec
}

func normalizeFields(fields []model.Field) []Field {
	out := make([]Field, 0, len(fields))
	for _, field := range fields {
		out = append(out, Field{
			Label:    field.Label,
			Type:     field.Type,
			Required: field.Required,
			Scale:    cloneInt(field.Scale),
			Options:  normalizeOptions(field.Options),
		})
	}
	return out
}

func normalizeOptions(options []model.ChoiceOption) []Option {
	if len(options) == 0 {
		return nil
	}
	out := make([]Option, 0, len(options))
	for _, option := range options {
		out = append(out, NormalizeOption(option))
	}
	return out
}

// NormalizeOption resolves a single choice option.
func NormalizeOption(option model.ChoiceOption) Option {
	out := Option{Display: option.Display()}
	if target, ok := option.GoTo(); ok {
		out.Branch = branchFor(target)
	}
	return out
}

func branchFor(target string) Branch {
	switch target {
	case "":
		return Branch{}
	case model.GoToNextSection:
		return Branch{Kind: BranchNextSection}
	case model.GoToSubmitForm:
		return Branch{Kind: BranchSubmit}
	default:
		return Branch{Kind: BranchSection, Target: target}
	}
}

func denormalizeFields(fields []Field) []model.Field {
	out := make([]model.Field, 0, len(fields))
	for _, field := range fields {
		mf := model.Field{
			Label:    field.Label,
			Type:     field.Type,
			Required: field.Required,
			Scale:    cloneInt(field.Scale),
		}
		for _, option := range field.Options {
			mf.Options = append(mf.Options, denormalizeOption(option))
		}
		out = append(out, mf)
	}
	return out
}

func denormalizeOption(option Option) model.ChoiceOption {
	switch option.Branch.Kind {
	case BranchNextSection:
		return model.LabeledOption(option.Display, model.GoToNextSection)
	case BranchSubmit:
		return model.LabeledOption(option.Display, model.GoToSubmitForm)
	case BranchSection:
		return model.LabeledOption(option.Display, option.Branch.Target)
	default:
		return model.PlainOption(option.Display)
	}
}

func cloneConditions(in []model.Condition) []model.Condition {
	if len(in) == 0 {
		return nil
	}
	out := make([]model.Condition, 0, len(in))
	for _, cond := range in {
		out = append(out, model.Condition{
			FieldID:   cond.FieldID,
			Equals:    cloneString(cond.Equals),
			NotEquals: cloneString(cond.NotEquals),
		})
	}
	return out
}

func cloneInt(in *int) *int {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}

func cloneString(in *string) *string {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}
