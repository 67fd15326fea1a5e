package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formspec/pkg/model"
)

// Option configures a Validator at construction time.
type Option func(*config)

type config struct {
	fieldTypes []model.FieldType
}

// WithFieldTypes replaces the closed field type taxonomy. Intended for tests
// and for callers that deliberately narrow what generators may emit.
func WithFieldTypes(types ...model.FieldType) Option {
	return func(cfg *config) {
		cfg.fieldTypes = append([]model.FieldType(nil), types...)
	}
}

// Validator checks untrusted values against the form specification contract.
// A Validator is immutable after construction and safe for concurrent use.
type Validator struct {
	fieldTypes []model.FieldType
	sectioned  *jsonschema.Schema
	flat       *jsonschema.Schema
}

// New compiles the sectioned and flat schemas for the configured taxonomy.
func New(options ...Option) (*Validator, error) {
	cfg := config{fieldTypes: model.DefaultFieldTypes()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	types := uniqueTypes(cfg.fieldTypes)
	if len(types) == 0 {
		return nil, errors.New("validation: at least one field type is required")
	}

	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft2020)
	if err := addResource(compiler, sectionedSchemaURL, sectionedSchema(types)); err != nil {
		return nil, err
	}
	if err := addResource(compiler, flatSchemaURL, flatSchema(types)); err != nil {
		return nil, err
	}

	sectioned, err := compiler.Compile(sectionedSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("validation: compile sectioned schema: %w", err)
	}
	flat, err := compiler.Compile(flatSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("validation: compile flat schema: %w", err)
	}

	return &Validator{
		fieldTypes: types,
		sectioned:  sectioned,
		flat:       flat,
	}, nil
}

// MustNew panics when the schemas cannot be compiled. Useful for init-time
// wiring where the configuration is static.
func MustNew(options ...Option) *Validator {
	v, err := New(options...)
	if err != nil {
		panic(err)
	}
	return v
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
)

// Default returns a shared Validator using the standard taxonomy.
func Default() *Validator {
	defaultOnce.Do(func() {
		defaultValidator = MustNew()
	})
	return defaultValidator
}

// FieldTypes returns a copy of the accepted field types.
func (v *Validator) FieldTypes() []model.FieldType {
	return append([]model.FieldType(nil), v.fieldTypes...)
}

// Validate checks an arbitrary value. Byte slices and json.RawMessage are
// decoded as JSON; any other value is normalised through a JSON round trip so
// Go structs and YAML-decoded maps are judged by the same rules.
func (v *Validator) Validate(value any) Result {
	switch raw := value.(type) {
	case []byte:
		return v.ValidateJSON(raw)
	case json.RawMessage:
		return v.ValidateJSON(raw)
	}

	instance, err := canonicalize(value)
	if err != nil {
		return invalid(Issue{Message: err.Error()})
	}
	return v.validateInstance(instance)
}

// ValidateJSON decodes raw JSON and validates the result.
func (v *Validator) ValidateJSON(raw []byte) Result {
	if len(bytes.TrimSpace(raw)) == 0 {
		return invalid(Issue{Message: "document is empty"})
	}
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return invalid(Issue{Message: "malformed JSON: " + err.Error()})
	}
	return v.validateInstance(instance)
}

// ValidateYAML decodes raw YAML (a superset of JSON) and validates the result.
func (v *Validator) ValidateYAML(raw []byte) Result {
	if len(bytes.TrimSpace(raw)) == 0 {
		return invalid(Issue{Message: "document is empty"})
	}
	var decoded any
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return invalid(Issue{Message: "malformed YAML: " + err.Error()})
	}
	return v.Validate(decoded)
}

// Parse validates value and, when it conforms, decodes it into the typed
// model. The returned specification is the zero value whenever the result is
// invalid.
func (v *Validator) Parse(value any) (model.FormSpecification, Result) {
	instance := value
	switch raw := value.(type) {
	case []byte:
		instance = nil
		if err := json.Unmarshal(raw, &instance); err != nil {
			return model.FormSpecification{}, invalid(Issue{Message: "malformed JSON: " + err.Error()})
		}
	case json.RawMessage:
		instance = nil
		if err := json.Unmarshal(raw, &instance); err != nil {
			return model.FormSpecification{}, invalid(Issue{Message: "malformed JSON: " + err.Error()})
		}
	}

	canonical, err := canonicalize(instance)
	if err != nil {
		return model.FormSpecification{}, invalid(Issue{Message: err.Error()})
	}
	result := v.validateInstance(canonical)
	if !result.Valid {
		return model.FormSpecification{}, result
	}

	spec, err := model.Decode(canonical)
	if err != nil {
		return model.FormSpecification{}, invalid(Issue{Message: err.Error()})
	}
	return spec, result
}

func (v *Validator) validateInstance(instance any) Result {
	root, ok := instance.(map[string]any)
	if !ok {
		return invalid(Issue{
			Message: fmt.Sprintf("form specification must be an object, got %s", describeKind(instance)),
		})
	}

	schema := v.flat
	if _, hasSections := root["sections"]; hasSections {
		schema = v.sectioned
	}

	err := schema.Validate(root)
	if err == nil {
		return Result{Valid: true}
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return invalid(Issue{Message: strings.TrimSpace(err.Error())})
	}
	return invalid(issuesFromError(verr)...)
}

func addResource(compiler *jsonschema.Compiler, url string, doc map[string]any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("validation: encode schema %s: %w", url, err)
	}
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("validation: decode schema %s: %w", url, err)
	}
	if err := compiler.AddResource(url, parsed); err != nil {
		return fmt.Errorf("validation: add schema %s: %w", url, err)
	}
	return nil
}

func canonicalize(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("value is not a structured document: %v", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("value is not a structured document: %v", err)
	}
	return out, nil
}

func uniqueTypes(in []model.FieldType) []model.FieldType {
	seen := make(map[model.FieldType]struct{}, len(in))
	out := make([]model.FieldType, 0, len(in))
	for _, t := range in {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func describeKind(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", value)
	}
}
