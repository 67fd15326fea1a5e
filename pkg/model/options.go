package model

import (
	"bytes"
	"encoding/json"
	"errors"
)

type optionKind uint8

const (
	optionPlain optionKind = iota
	optionStructured
)

// OptionFields carries the attributes of a structured choice option. Nil
// pointers mean the attribute was not declared.
type OptionFields struct {
	Label *string `json:"label,omitempty"`
	Text  *string `json:"text,omitempty"`
	GoTo  *string `json:"goTo,omitempty"`
}

// ChoiceOption is either a plain string or a structured {label, text, goTo}
// object. The zero value is an empty plain option.
type ChoiceOption struct {
	kind   optionKind
	plain  string
	fields OptionFields
}

// PlainOption wraps a bare string option.
func PlainOption(value string) ChoiceOption {
	return ChoiceOption{kind: optionPlain, plain: value}
}

// StructuredOption wraps an object option.
func StructuredOption(fields OptionFields) ChoiceOption {
	return ChoiceOption{kind: optionStructured, fields: cloneFields(fields)}
}

// LabeledOption is shorthand for a structured option with only a label and an
// optional branch target.
func LabeledOption(label, goTo string) ChoiceOption {
	fields := OptionFields{Label: &label}
	if goTo != "" {
		fields.GoTo = &goTo
	}
	return ChoiceOption{kind: optionStructured, fields: fields}
}

// IsPlain reports whether the option was declared as a bare string.
func (o ChoiceOption) IsPlain() bool {
	return o.kind == optionPlain
}

// Fields returns a copy of the structured attributes. Plain options return the
// zero OptionFields.
func (o ChoiceOption) Fields() OptionFields {
	if o.kind == optionPlain {
		return OptionFields{}
	}
	return cloneFields(o.fields)
}

// Display resolves the option's display string: the plain value, otherwise
// label, otherwise text, otherwise "".
func (o ChoiceOption) Display() string {
	if o.kind == optionPlain {
		return o.plain
	}
	if o.fields.Label != nil {
		return *o.fields.Label
	}
	if o.fields.Text != nil {
		return *o.fields.Text
	}
	return ""
}

// GoTo returns the declared branch target, if any.
func (o ChoiceOption) GoTo() (string, bool) {
	if o.kind == optionPlain || o.fields.GoTo == nil {
		return "", false
	}
	return *o.fields.GoTo, true
}

// MarshalJSON writes the option back in the shape it was declared with.
func (o ChoiceOption) MarshalJSON() ([]byte, error) {
	if o.kind == optionPlain {
		return json.Marshal(o.plain)
	}
	return json.Marshal(o.fields)
}

// UnmarshalJSON accepts either a JSON string or a JSON object.
func (o *ChoiceOption) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errors.New("model: empty choice option")
	}
	switch trimmed[0] {
	case '"':
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*o = PlainOption(value)
		return nil
	case '{':
		var fields OptionFields
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return err
		}
		*o = ChoiceOption{kind: optionStructured, fields: fields}
		return nil
	default:
		return errors.New("model: choice option must be a string or an object")
	}
}

func cloneFields(in OptionFields) OptionFields {
	return OptionFields{
		Label: cloneString(in.Label),
		Text:  cloneString(in.Text),
		GoTo:  cloneString(in.GoTo),
	}
}

func cloneString(in *string) *string {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}
