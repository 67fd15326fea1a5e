package openapi

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formspec/pkg/model"
	"github.com/goliatone/go-formspec/pkg/normalize"
	"github.com/goliatone/go-formspec/pkg/visibility"
)

func surveyForm() *normalize.Form {
	return normalize.Normalize(model.FormSpecification{
		Title:       "Survey",
		Description: "Tell us more",
		Sections: []model.Section{
			{
				Title: "About you",
				Fields: []model.Field{
					{Label: "Email", Type: model.FieldTypeEmail, Required: true},
					{Label: "Plan", Type: model.FieldTypeRadio, Required: true, Options: []model.ChoiceOption{
						model.PlainOption("Free"), model.PlainOption("Pro"), model.PlainOption("Pro"),
					}},
					{Label: "Score", Type: model.FieldTypeRating, Scale: model.IntPtr(4)},
					{Label: "Topics", Type: model.FieldTypeCheckbox, Options: []model.ChoiceOption{
						model.PlainOption("Speed"), model.PlainOption("Price"),
					}},
				},
			},
			{
				Title:      "Pro feedback",
				Conditions: []model.Condition{model.Equal("Plan", "Pro")},
				Fields: []model.Field{
					{Label: "Seats", Type: model.FieldTypeNumber, Required: true},
				},
			},
		},
	})
}

func TestSubmissionSchema(t *testing.T) {
	t.Parallel()

	schema := SubmissionSchema(surveyForm())

	if diff := cmp.Diff([]string{"Email", "Plan"}, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if len(schema.Properties) != 5 {
		t.Fatalf("expected 5 properties, got %d", len(schema.Properties))
	}
	if diff := cmp.Diff([]any{"Free", "Pro"}, schema.Properties["Plan"].Value.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
	score := schema.Properties["Score"].Value
	if score.Min == nil || *score.Min != 1 || score.Max == nil || *score.Max != 4 {
		t.Fatalf("unexpected rating bounds min=%v max=%v", score.Min, score.Max)
	}
	if schema.Properties["Email"].Value.Format != "email" {
		t.Fatalf("expected email format")
	}
}

func TestValidateAnswers(t *testing.T) {
	t.Parallel()

	form := surveyForm()

	cases := []struct {
		name    string
		answers visibility.Answers
		wantErr bool
	}{
		{name: "valid", answers: visibility.Answers{"Email": "a@b.co", "Plan": "Pro", "Score": 3, "Topics": []string{"Speed"}, "Seats": 4}},
		{name: "conditional field optional", answers: visibility.Answers{"Email": "a@b.co", "Plan": "Free"}},
		{name: "missing required", answers: visibility.Answers{"Plan": "Free"}, wantErr: true},
		{name: "unknown option", answers: visibility.Answers{"Email": "a@b.co", "Plan": "Gold"}, wantErr: true},
		{name: "rating out of range", answers: visibility.Answers{"Email": "a@b.co", "Plan": "Free", "Score": 5}, wantErr: true},
		{name: "unknown field", answers: visibility.Answers{"Email": "a@b.co", "Plan": "Free", "Other": "x"}, wantErr: true},
		{name: "nil answers", answers: nil, wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateAnswers(form, tc.answers)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDocument(t *testing.T) {
	t.Parallel()

	doc, err := Document(surveyForm(), "")
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if doc.Info.Version != "1.0.0" || doc.Info.Title != "Survey" {
		t.Fatalf("unexpected info %+v", doc.Info)
	}
	item := doc.Paths.Find(ResponsesPath)
	if item == nil || item.Post == nil || item.Post.OperationID != OperationID {
		t.Fatalf("expected POST %s operation", ResponsesPath)
	}
	media := item.Post.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value.Title != "Survey" {
		t.Fatalf("expected request body schema")
	}

	if _, err := Document(nil, ""); err == nil {
		t.Fatalf("expected error for nil form")
	}
}
