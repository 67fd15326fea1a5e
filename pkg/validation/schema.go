package validation

import (
	"math"

	"github.com/goliatone/go-formspec/pkg/model"
)

const (
	sectionedSchemaURL = "formspec://schema/sectioned.json"
	flatSchemaURL      = "formspec://schema/flat.json"
	draft2020          = "https://json-schema.org/draft/2020-12/schema"
)

func nonEmptyString() map[string]any {
	return map[string]any{"type": "string", "minLength": 1}
}

func optionSchema() map[string]any {
	// properties and minLength only apply to objects and strings respectively,
	// so a bare string option passes through untouched.
	return map[string]any{
		"type": []any{"string", "object"},
		"properties": map[string]any{
			"label": nonEmptyString(),
			"text":  nonEmptyString(),
			"goTo":  nonEmptyString(),
		},
	}
}

func fieldSchema(types []model.FieldType) map[string]any {
	enum := make([]any, 0, len(types))
	for _, t := range types {
		enum = append(enum, string(t))
	}
	return map[string]any{
		"type":     "object",
		"required": []any{"label", "type"},
		"properties": map[string]any{
			"label":    nonEmptyString(),
			"type":     map[string]any{"type": "string", "enum": enum},
			"required": map[string]any{"type": "boolean"},
			"scale":    map[string]any{"type": "integer", "minimum": 1, "maximum": math.MaxInt32},
			"options":  map[string]any{"type": "array", "items": optionSchema()},
		},
	}
}

func fieldListSchema(types []model.FieldType) map[string]any {
	return map[string]any{
		"type":     "array",
		"minItems": 1,
		"items":    fieldSchema(types),
	}
}

func conditionSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"fieldId"},
		"properties": map[string]any{
			"fieldId":   nonEmptyString(),
			"equals":    map[string]any{"type": "string"},
			"notEquals": map[string]any{"type": "string"},
		},
	}
}

func sectionSchema(types []model.FieldType) map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"title", "fields"},
		"properties": map[string]any{
			"title":       nonEmptyString(),
			"description": map[string]any{"type": "string"},
			"fields":      fieldListSchema(types),
			"conditions":  map[string]any{"type": "array", "items": conditionSchema()},
		},
	}
}

func sectionedSchema(types []model.FieldType) map[string]any {
	return map[string]any{
		"$schema":  draft2020,
		"$id":      sectionedSchemaURL,
		"type":     "object",
		"required": []any{"title", "description", "sections"},
		"properties": map[string]any{
			"title":       nonEmptyString(),
			"description": nonEmptyString(),
			"sections": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    sectionSchema(types),
			},
		},
	}
}

func flatSchema(types []model.FieldType) map[string]any {
	return map[string]any{
		"$schema":  draft2020,
		"$id":      flatSchemaURL,
		"type":     "object",
		"required": []any{"title", "description", "fields"},
		"properties": map[string]any{
			"title":       nonEmptyString(),
			"description": nonEmptyString(),
			"fields":      fieldListSchema(types),
		},
	}
}
