package export

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formspec/pkg/model"
	"github.com/goliatone/go-formspec/pkg/normalize"
	"github.com/goliatone/go-formspec/pkg/visibility"
)

const (
	minScaleHigh = 2
	maxScaleHigh = 10
)

// Option configures Build.
type Option func(*config)

type config struct {
	sectionID func(idx int) string
}

// WithSectionIDs overrides how page-break item ids are derived from section
// positions. The default yields eight hex digits.
func WithSectionIDs(fn func(idx int) string) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.sectionID = fn
		}
	}
}

func defaultSectionID(idx int) string {
	return fmt.Sprintf("%08x", 0x5ec00000+idx)
}

// Build maps the form to a batch update. Sections after the first start with
// a page break whose id goTo options can target. Conditions, unresolved goTo
// targets and choice fields without options produce warnings.
func Build(form *normalize.Form, options ...Option) (*Result, error) {
	if form == nil {
		return nil, errors.New("export: form is nil")
	}
	cfg := config{sectionID: defaultSectionID}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	b := &builder{form: form, cfg: cfg}
	b.add(Request{UpdateFormInfo: &UpdateFormInfo{
		Info:       Info{Title: form.Title, Description: form.Description},
		UpdateMask: "title,description",
	}})

	for _, title := range form.DuplicateTitles() {
		first, _ := form.SectionIndex(title)
		b.warn(first, "", "section title %q is used more than once; goTo targets the first", title)
	}
	for _, section := range form.Sections {
		b.section(section)
	}
	return &Result{Batch: Batch{Requests: b.requests}, Warnings: b.warnings}, nil
}

type builder struct {
	form     *normalize.Form
	cfg      config
	requests []Request
	warnings []Warning
	index    int
}

func (b *builder) add(req Request) {
	b.requests = append(b.requests, req)
}

func (b *builder) createItem(item Item) {
	b.add(Request{CreateItem: &CreateItem{Item: item, Location: Location{Index: b.index}}})
	b.index++
}

func (b *builder) warn(section int, field, format string, args ...any) {
	b.warnings = append(b.warnings, Warning{Section: section, Field: field, Message: fmt.Sprintf(format, args...)})
}

func (b *builder) section(section normalize.Section) {
	if section.Index > 0 {
		b.createItem(Item{
			ItemID:        b.cfg.sectionID(section.Index),
			Title:         section.Title,
			Description:   section.Description,
			PageBreakItem: &PageBreakItem{},
		})
	}
	if b.form.HasConditions(section.Index) {
		desc := visibility.DescribeAll(b.form.Conditions(section.Index), visibility.All)
		b.warn(section.Index, "", "conditional visibility is not supported by the platform and was dropped (%s)", desc)
	}

	for _, field := range section.Fields {
		question, ok := b.question(section.Index, field)
		if !ok {
			continue
		}
		b.createItem(Item{
			Title:        field.Label,
			QuestionItem: &QuestionItem{Question: question},
		})
	}
}

func (b *builder) question(sectionIdx int, field normalize.Field) (Question, bool) {
	req := field.Requirements()
	q := Question{Required: req.MustAnswer}

	switch field.Type {
	case model.FieldTypeRadio, model.FieldTypeSelect, model.FieldTypeCheckbox:
		if !field.HasOptions() {
			b.warn(sectionIdx, field.Label, "choice field has no options and was skipped")
			return Question{}, false
		}
		q.ChoiceQuestion = b.choice(sectionIdx, field)
	case model.FieldTypeTextarea:
		q.TextQuestion = &TextQuestion{Paragraph: true}
	case model.FieldTypeRating:
		high := req.Scale
		switch {
		case high < minScaleHigh:
			b.warn(sectionIdx, field.Label, "scale %d raised to %d", high, minScaleHigh)
			high = minScaleHigh
		case high > maxScaleHigh:
			b.warn(sectionIdx, field.Label, "scale %d capped at %d", high, maxScaleHigh)
			high = maxScaleHigh
		}
		q.ScaleQuestion = &ScaleQuestion{Low: 1, High: high}
	case model.FieldTypeDate:
		q.DateQuestion = &DateQuestion{}
	case model.FieldTypeTime:
		q.TimeQuestion = &TimeQuestion{}
	default:
		q.TextQuestion = &TextQuestion{}
	}
	return q, true
}

func (b *builder) choice(sectionIdx int, field normalize.Field) *ChoiceQuestion {
	cq := &ChoiceQuestion{Type: choiceType(field.Type)}
	branching := cq.Type != ChoiceCheckbox

	for _, option := range field.Options {
		out := ChoiceOption{Value: option.Display}
		if option.Branch.Kind != normalize.BranchNone && !branching {
			b.warn(sectionIdx, field.Label, "checkbox option %q cannot branch; goTo dropped", option.Display)
			cq.Options = append(cq.Options, out)
			continue
		}

		switch option.Branch.Kind {
		case normalize.BranchNextSection:
			out.GoToAction = GoToNextSection
		case normalize.BranchSubmit:
			out.GoToAction = GoToSubmitForm
		case normalize.BranchSection:
			target, ok := b.form.SectionIndex(option.Branch.Target)
			switch {
			case !ok:
				b.warn(sectionIdx, field.Label, "goTo section %q not found; option continues to the next section", option.Branch.Target)
			case target == 0:
				b.warn(sectionIdx, field.Label, "goTo the first section %q cannot be represented; dropped", option.Branch.Target)
			default:
				out.GoToSectionID = b.cfg.sectionID(target)
			}
		}
		cq.Options = append(cq.Options, out)
	}
	return cq
}

func choiceType(t model.FieldType) ChoiceType {
	switch t {
	case model.FieldTypeCheckbox:
		return ChoiceCheckbox
	case model.FieldTypeSelect:
		return ChoiceDropDown
	default:
		return ChoiceRadio
	}
}
