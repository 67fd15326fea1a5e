package normalize

import (
	"github.com/goliatone/go-formspec/pkg/model"
	"github.com/goliatone/go-formspec/pkg/visibility"
)

// HasConditions reports whether the section at idx declares any condition.
// Out-of-range indices report false.
func (f *Form) HasConditions(idx int) bool {
	if idx < 0 || idx >= len(f.conditional) {
		return false
	}
	return f.conditional[idx]
}

// Conditions returns a copy of the conditions declared on the section at idx.
func (f *Form) Conditions(idx int) []model.Condition {
	if idx < 0 || idx >= len(f.Sections) {
		return nil
	}
	return cloneConditions(f.Sections[idx].Conditions)
}

// ConditionalSections lists the positions of sections carrying conditions.
func (f *Form) ConditionalSections() []int {
	var out []int
	for idx, conditional := range f.conditional {
		if conditional {
			out = append(out, idx)
		}
	}
	return out
}

// HasValidationRequirements reports whether any field in any section carries a
// non-trivial requirement: required, a custom rating scale or a typed format.
func (f *Form) HasValidationRequirements() bool {
	for _, section := range f.Sections {
		for _, field := range section.Fields {
			if field.Requirements().NonTrivial() {
				return true
			}
		}
	}
	return false
}

// FieldRef locates a field inside the form.
type FieldRef struct {
	Section int
	Index   int
	Field   Field
}

// Fields lists every field in section order.
func (f *Form) Fields() []FieldRef {
	var out []FieldRef
	for sIdx, section := range f.Sections {
		for fIdx, field := range section.Fields {
			out = append(out, FieldRef{Section: sIdx, Index: fIdx, Field: field})
		}
	}
	return out
}

// SectionIndex returns the position of the first section titled title.
// Titles are not required to be unique; the first match wins.
func (f *Form) SectionIndex(title string) (int, bool) {
	if title == "" {
		return -1, false
	}
	for idx, section := range f.Sections {
		if section.Synthetic {
			continue
		}
		if section.Title == title {
			return idx, true
		}
	}
	return -1, false
}

// DuplicateTitles lists section titles declared more than once, in order of
// first appearance.
func (f *Form) DuplicateTitles() []string {
	counts := make(map[string]int, len(f.Sections))
	var order []string
	for _, section := range f.Sections {
		if section.Synthetic {
			continue
		}
		if counts[section.Title] == 0 {
			order = append(order, section.Title)
		}
		counts[section.Title]++
	}
	var out []string
	for _, title := range order {
		if counts[title] > 1 {
			out = append(out, title)
		}
	}
	return out
}

// Next returns the section that follows from after a respondent picks an
// option with branch b. ok is false when the form should be submitted. Section
// branches resolve by first title match; unresolved targets fall back to the
// next section in order.
func (f *Form) Next(from int, b Branch) (next int, ok bool) {
	switch b.Kind {
	case BranchSubmit:
		return -1, false
	case BranchSection:
		if idx, found := f.SectionIndex(b.Target); found {
			return idx, true
		}
	}
	next = from + 1
	if next < 0 || next >= len(f.Sections) {
		return -1, false
	}
	return next, true
}

// Visible evaluates the conditions of the section at idx against answers.
func (f *Form) Visible(idx int, answers visibility.Answers, options ...visibility.Option) bool {
	if !f.HasConditions(idx) {
		return idx >= 0 && idx < len(f.Sections)
	}
	return visibility.Evaluate(f.Sections[idx].Conditions, answers, options...)
}

// VisibleSections lists the positions of sections visible under answers.
func (f *Form) VisibleSections(answers visibility.Answers, options ...visibility.Option) []int {
	out := make([]int, 0, len(f.Sections))
	for idx := range f.Sections {
		if f.Visible(idx, answers, options...) {
			out = append(out, idx)
		}
	}
	return out
}
