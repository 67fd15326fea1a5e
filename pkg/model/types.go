package model

import "encoding/json"

// FieldType enumerates the closed set of field kinds a specification may use.
type FieldType string

const (
	FieldTypeRadio    FieldType = "radio"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeEmail    FieldType = "email"
	FieldTypeNumber   FieldType = "number"
	FieldTypeTel      FieldType = "tel"
	FieldTypeDate     FieldType = "date"
	FieldTypeTime     FieldType = "time"
	FieldTypeURL      FieldType = "url"
	FieldTypeRating   FieldType = "rating"
)

// DefaultRatingScale is the effective scale of a rating field that does not
// declare one.
const DefaultRatingScale = 5

// Branch sentinels accepted by ChoiceOption goTo declarations. Any other
// non-empty value references a section title.
const (
	GoToNextSection = "NEXT_SECTION"
	GoToSubmitForm  = "SUBMIT_FORM"
)

// DefaultFieldTypes returns the field taxonomy in declaration order. The slice
// is freshly allocated so callers can trim or extend it safely.
func DefaultFieldTypes() []FieldType {
	return []FieldType{
		FieldTypeRadio,
		FieldTypeSelect,
		FieldTypeCheckbox,
		FieldTypeText,
		FieldTypeTextarea,
		FieldTypeEmail,
		FieldTypeNumber,
		FieldTypeTel,
		FieldTypeDate,
		FieldTypeTime,
		FieldTypeURL,
		FieldTypeRating,
	}
}

// IsChoice reports whether the type renders a list of options.
func (t FieldType) IsChoice() bool {
	switch t {
	case FieldTypeRadio, FieldTypeSelect, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// Mode identifies which root representation a specification uses.
type Mode string

const (
	ModeSectioned Mode = "sectioned"
	ModeFlat      Mode = "flat"
)

// FormSpecification is the root document. Exactly one of Sections or Fields is
// expected to be populated; a nil Sections slice means the key was absent.
type FormSpecification struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Sections    []Section `json:"sections,omitempty"`
	Fields      []Field   `json:"fields,omitempty"`
}

// MarshalJSON keeps the sections key whenever Sections is non-nil, even when
// empty, so a re-encoded specification validates under the same mode it
// reports.
func (s FormSpecification) MarshalJSON() ([]byte, error) {
	var sections *[]Section
	if s.Sections != nil {
		sections = &s.Sections
	}
	return json.Marshal(struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Sections    *[]Section `json:"sections,omitempty"`
		Fields      []Field    `json:"fields,omitempty"`
	}{s.Title, s.Description, sections, s.Fields})
}

// Mode reports ModeSectioned when the document carries a sections key and
// ModeFlat otherwise.
func (s FormSpecification) Mode() Mode {
	if s.Sections != nil {
		return ModeSectioned
	}
	return ModeFlat
}

// Section is an ordered, titled group of fields. An empty Conditions slice
// means the section is always visible.
type Section struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Fields      []Field     `json:"fields"`
	Conditions  []Condition `json:"conditions,omitempty"`
}

// Field is a single question.
type Field struct {
	Label    string         `json:"label"`
	Type     FieldType      `json:"type"`
	Required bool           `json:"required,omitempty"`
	Scale    *int           `json:"scale,omitempty"`
	Options  []ChoiceOption `json:"options,omitempty"`
}

// Condition makes a section's visibility depend on the answer given to the
// field identified by FieldID.
type Condition struct {
	FieldID   string  `json:"fieldId"`
	Equals    *string `json:"equals,omitempty"`
	NotEquals *string `json:"notEquals,omitempty"`
}

// Equal builds a condition requiring the referenced answer to equal value.
func Equal(fieldID, value string) Condition {
	return Condition{FieldID: fieldID, Equals: &value}
}

// NotEqual builds a condition requiring the referenced answer to differ from
// value.
func NotEqual(fieldID, value string) Condition {
	return Condition{FieldID: fieldID, NotEquals: &value}
}

// Vacuous reports whether the condition declares no comparison at all.
func (c Condition) Vacuous() bool {
	return c.Equals == nil && c.NotEquals == nil
}
