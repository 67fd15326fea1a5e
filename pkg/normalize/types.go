package normalize

import "github.com/goliatone/go-formspec/pkg/model"

// BranchKind classifies where a choice option sends the respondent.
type BranchKind string

const (
	BranchNone        BranchKind = ""
	BranchNextSection BranchKind = "next_section"
	BranchSubmit      BranchKind = "submit"
	BranchSection     BranchKind = "section"
)

// Branch is the resolved goTo of a choice option. Target holds the referenced
// section title for BranchSection and is otherwise empty. Targets are not
// checked against the form's sections; see Form.Next.
type Branch struct {
	Kind   BranchKind `json:"kind,omitempty"`
	Target string     `json:"target,omitempty"`
}

// Option is a uniformised choice option.
type Option struct {
	Display string `json:"display"`
	Branch  Branch `json:"branch"`
}

// Field is a normalised question. Scale keeps the declared value; use
// Requirements for the effective one.
type Field struct {
	Label    string          `json:"label"`
	Type     model.FieldType `json:"type"`
	Required bool            `json:"required,omitempty"`
	Scale    *int            `json:"scale,omitempty"`
	Options  []Option        `json:"options,omitempty"`
}

// HasOptions reports whether there is anything to render for a choice field.
func (f Field) HasOptions() bool {
	return len(f.Options) > 0
}

// Section is a normalised section. Index is its position in the form and is
// the identity used by condition queries.
type Section struct {
	Index       int               `json:"index"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Conditions  []model.Condition `json:"conditions,omitempty"`
	Synthetic   bool              `json:"synthetic,omitempty"`
}

// Form is the normalised specification. Treat it as read-only; the condition
// index is computed once by Normalize.
type Form struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Mode        model.Mode `json:"mode"`
	Sections    []Section  `json:"sections"`

	conditional []bool
}
