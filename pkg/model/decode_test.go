package model_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/goliatone/go-formspec/pkg/model"
)

func TestDecodeDetectsMode(t *testing.T) {
	t.Parallel()

	flat, err := model.Decode(map[string]any{
		"title":       "T",
		"description": "D",
		"fields": []any{
			map[string]any{"label": "Name", "type": "text", "required": true},
		},
	})
	if err != nil {
		t.Fatalf("decode flat: %v", err)
	}
	if flat.Mode() != model.ModeFlat {
		t.Fatalf("expected flat mode, got %s", flat.Mode())
	}
	if !flat.Fields[0].Required {
		t.Fatalf("expected required flag to decode")
	}

	sectioned, err := model.Decode(map[string]any{
		"title":       "T",
		"description": "D",
		"sections": []any{
			map[string]any{
				"title": "About you",
				"fields": []any{
					map[string]any{"label": "Score", "type": "rating", "scale": float64(10)},
				},
				"conditions": []any{
					map[string]any{"fieldId": "consent", "equals": "yes"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("decode sectioned: %v", err)
	}
	if sectioned.Mode() != model.ModeSectioned {
		t.Fatalf("expected sectioned mode, got %s", sectioned.Mode())
	}
	field := sectioned.Sections[0].Fields[0]
	if field.Scale == nil || *field.Scale != 10 {
		t.Fatalf("expected scale 10, got %v", field.Scale)
	}
	cond := sectioned.Sections[0].Conditions[0]
	if cond.Equals == nil || *cond.Equals != "yes" || cond.NotEquals != nil {
		t.Fatalf("unexpected condition %+v", cond)
	}
}

func TestDecodeNil(t *testing.T) {
	t.Parallel()

	if _, err := model.Decode(nil); err == nil {
		t.Fatalf("expected error for nil value")
	}
}

func TestConditionHelpers(t *testing.T) {
	t.Parallel()

	if !(model.Condition{FieldID: "f1"}).Vacuous() {
		t.Fatalf("expected bare condition to be vacuous")
	}
	if model.Equal("f1", "yes").Vacuous() || model.NotEqual("f1", "no").Vacuous() {
		t.Fatalf("expected comparisons not to be vacuous")
	}
}

func TestMarshalKeepsEmptySections(t *testing.T) {
	t.Parallel()

	spec := model.FormSpecification{
		Title:       "T",
		Description: "D",
		Sections:    []model.Section{},
		Fields:      []model.Field{{Label: "Name", Type: model.FieldTypeText}},
	}
	raw, err := json.Marshal(spec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"sections":[]`) {
		t.Fatalf("expected empty sections key, got %s", raw)
	}

	decoded, err := model.Decode(spec)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Mode() != spec.Mode() {
		t.Fatalf("mode changed across round trip: %s -> %s", spec.Mode(), decoded.Mode())
	}

	flat, err := json.Marshal(model.FormSpecification{Title: "T", Description: "D"})
	if err != nil {
		t.Fatalf("marshal flat: %v", err)
	}
	if strings.Contains(string(flat), "sections") {
		t.Fatalf("nil sections must be omitted, got %s", flat)
	}
}
