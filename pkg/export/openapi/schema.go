// Package openapi describes the answers a normalized form accepts as an
// OpenAPI document so submissions can be validated by any OpenAPI tooling.
package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formspec/pkg/model"
	"github.com/goliatone/go-formspec/pkg/normalize"
	"github.com/goliatone/go-formspec/pkg/visibility"
)

const (
	// ResponsesPath is the path of the submission operation in Document.
	ResponsesPath = "/responses"
	// OperationID identifies the submission operation.
	OperationID = "submitResponse"
)

// SubmissionSchema builds the object schema of a response. Properties are
// keyed by field label; when labels repeat, the first field wins. Only
// required fields of unconditional sections are listed as required since a
// hidden section cannot be answered.
func SubmissionSchema(form *normalize.Form) *openapi3.Schema {
	schema := openapi3.NewObjectSchema().WithoutAdditionalProperties()
	if form == nil {
		return schema
	}
	schema.Title = form.Title

	var required []string
	for _, ref := range form.Fields() {
		if _, exists := schema.Properties[ref.Field.Label]; exists {
			continue
		}
		schema.WithProperty(ref.Field.Label, fieldSchema(ref.Field))
		if ref.Field.Requirements().MustAnswer && !form.HasConditions(ref.Section) {
			required = append(required, ref.Field.Label)
		}
	}
	schema.Required = required
	return schema
}

func fieldSchema(field normalize.Field) *openapi3.Schema {
	req := field.Requirements()
	var schema *openapi3.Schema

	switch field.Type {
	case model.FieldTypeRadio, model.FieldTypeSelect:
		schema = openapi3.NewStringSchema()
		if field.HasOptions() {
			schema.WithEnum(enumValues(field.Options)...)
		}
	case model.FieldTypeCheckbox:
		items := openapi3.NewStringSchema()
		if field.HasOptions() {
			items.WithEnum(enumValues(field.Options)...)
		}
		schema = openapi3.NewArraySchema().WithItems(items)
		schema.UniqueItems = true
		if req.MustAnswer {
			schema.WithMinItems(1)
		}
	case model.FieldTypeRating:
		schema = openapi3.NewIntegerSchema().WithMin(1).WithMax(float64(req.Scale))
	case model.FieldTypeNumber:
		schema = openapi3.NewFloat64Schema()
	default:
		schema = openapi3.NewStringSchema()
		if format := stringFormat(req.Format); format != "" {
			schema.WithFormat(format)
		}
		if req.MustAnswer {
			schema.WithMinLength(1)
		}
	}
	schema.Title = field.Label
	if rules := req.Rules(); len(rules) > 0 {
		schema.Description = rules[0].Message
		for _, rule := range rules[1:] {
			schema.Description += "; " + rule.Message
		}
	}
	return schema
}

func enumValues(options []normalize.Option) []any {
	values := make([]any, 0, len(options))
	seen := make(map[string]struct{}, len(options))
	for _, option := range options {
		if _, ok := seen[option.Display]; ok {
			continue
		}
		seen[option.Display] = struct{}{}
		values = append(values, option.Display)
	}
	return values
}

func stringFormat(format normalize.Format) string {
	switch format {
	case normalize.FormatEmail:
		return "email"
	case normalize.FormatURL:
		return "uri"
	case normalize.FormatDate:
		return "date"
	case normalize.FormatTime:
		return "time"
	default:
		return ""
	}
}

// Document wraps the submission schema in a minimal OpenAPI 3 document with a
// single POST operation.
func Document(form *normalize.Form, version string) (*openapi3.T, error) {
	if form == nil {
		return nil, errors.New("openapi: form is nil")
	}
	if version == "" {
		version = "1.0.0"
	}

	operation := openapi3.NewOperation()
	operation.OperationID = OperationID
	operation.Summary = "Submit a response to " + form.Title
	operation.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(SubmissionSchema(form)),
	}
	operation.Responses = openapi3.NewResponses(
		openapi3.WithStatus(201, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Response recorded")}),
		openapi3.WithStatus(422, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Response does not match the form")}),
	)

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       form.Title,
			Description: form.Description,
			Version:     version,
		},
		Paths: openapi3.NewPaths(openapi3.WithPath(ResponsesPath, &openapi3.PathItem{Post: operation})),
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return doc, nil
}

// ValidateAnswers checks answers against the submission schema.
func ValidateAnswers(form *normalize.Form, answers visibility.Answers) error {
	if form == nil {
		return errors.New("openapi: form is nil")
	}
	value, err := canonical(answers)
	if err != nil {
		return fmt.Errorf("openapi: encode answers: %w", err)
	}
	if err := SubmissionSchema(form).VisitJSON(value); err != nil {
		return fmt.Errorf("openapi: answers: %w", err)
	}
	return nil
}

// canonical converts answers into plain JSON values (float64 numbers, []any
// slices) as the schema visitor expects.
func canonical(answers visibility.Answers) (any, error) {
	if answers == nil {
		answers = visibility.Answers{}
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
