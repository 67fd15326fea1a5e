package normalize

import (
	"fmt"

	"github.com/goliatone/go-formspec/pkg/model"
)

// Format names the input format a typed text field implies.
type Format string

const (
	FormatNone   Format = ""
	FormatEmail  Format = "email"
	FormatNumber Format = "number"
	FormatTel    Format = "tel"
	FormatDate   Format = "date"
	FormatTime   Format = "time"
	FormatURL    Format = "url"
)

// RuleKind identifies a derived constraint.
type RuleKind string

const (
	RuleRequired RuleKind = "required"
	RuleScale    RuleKind = "scale"
	RuleFormat   RuleKind = "format"
)

// Rule is one human-readable derived constraint.
type Rule struct {
	Kind    RuleKind `json:"kind"`
	Value   string   `json:"value,omitempty"`
	Message string   `json:"message"`
}

// Requirements describes a field's effective constraints. Scale is zero for
// non-rating fields.
type Requirements struct {
	MustAnswer bool   `json:"mustAnswer,omitempty"`
	Scale      int    `json:"scale,omitempty"`
	Format     Format `json:"format,omitempty"`
}

// Requirements derives the field's constraints from its type, required flag
// and scale. Declared scales on non-rating fields are ignored.
func (f Field) Requirements() Requirements {
	req := Requirements{
		MustAnswer: f.Required,
		Format:     formatFor(f.Type),
	}
	if f.Type == model.FieldTypeRating {
		req.Scale = model.DefaultRatingScale
		if f.Scale != nil && *f.Scale > 0 {
			req.Scale = *f.Scale
		}
	}
	return req
}

// NonTrivial reports whether the requirements warrant a validation notice:
// the field must be answered, is a rating with a non-default scale, or
// expects a typed input format.
func (r Requirements) NonTrivial() bool {
	if r.MustAnswer || r.Format != FormatNone {
		return true
	}
	return r.Scale != 0 && r.Scale != model.DefaultRatingScale
}

// Rules lists the requirements as display rules in a stable order.
func (r Requirements) Rules() []Rule {
	var rules []Rule
	if r.MustAnswer {
		rules = append(rules, Rule{Kind: RuleRequired, Message: "must be answered"})
	}
	if r.Scale > 0 {
		rules = append(rules, Rule{
			Kind:    RuleScale,
			Value:   fmt.Sprint(r.Scale),
			Message: fmt.Sprintf("choose a value from 1 to %d", r.Scale),
		})
	}
	if r.Format != FormatNone {
		rules = append(rules, Rule{
			Kind:    RuleFormat,
			Value:   string(r.Format),
			Message: formatMessages[r.Format],
		})
	}
	return rules
}

var formatMessages = map[Format]string{
	FormatEmail:  "must be a valid email address",
	FormatNumber: "must be a number",
	FormatTel:    "must be a phone number",
	FormatDate:   "must be a date",
	FormatTime:   "must be a time",
	FormatURL:    "must be a valid URL",
}

func formatFor(t model.FieldType) Format {
	switch t {
	case model.FieldTypeEmail:
		return FormatEmail
	case model.FieldTypeNumber:
		return FormatNumber
	case model.FieldTypeTel:
		return FormatTel
	case model.FieldTypeDate:
		return FormatDate
	case model.FieldTypeTime:
		return FormatTime
	case model.FieldTypeURL:
		return FormatURL
	default:
		return FormatNone
	}
}
