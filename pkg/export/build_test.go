package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formspec/pkg/model"
	"github.com/goliatone/go-formspec/pkg/normalize"
)

func sectionedForm() *normalize.Form {
	return normalize.Normalize(model.FormSpecification{
		Title:       "Event signup",
		Description: "Register for the event",
		Sections: []model.Section{
			{
				Title: "Contact",
				Fields: []model.Field{
					{Label: "Email", Type: model.FieldTypeEmail, Required: true},
					{Label: "Attending?", Type: model.FieldTypeRadio, Options: []model.ChoiceOption{
						model.LabeledOption("Yes", "Preferences"),
						model.LabeledOption("No", model.GoToSubmitForm),
						model.LabeledOption("Maybe", model.GoToNextSection),
						model.LabeledOption("Later", "Missing"),
					}},
				},
			},
			{
				Title:      "Preferences",
				Conditions: []model.Condition{model.Equal("Attending?", "Yes")},
				Fields: []model.Field{
					{Label: "Meal", Type: model.FieldTypeSelect, Options: []model.ChoiceOption{model.PlainOption("Veg"), model.PlainOption("Fish")}},
					{Label: "Extras", Type: model.FieldTypeCheckbox, Options: []model.ChoiceOption{model.LabeledOption("Parking", "Contact")}},
					{Label: "Notes", Type: model.FieldTypeTextarea},
					{Label: "Excitement", Type: model.FieldTypeRating, Scale: model.IntPtr(12)},
					{Label: "Arrival day", Type: model.FieldTypeDate},
					{Label: "Arrival time", Type: model.FieldTypeTime},
					{Label: "Badge", Type: model.FieldTypeRadio},
				},
			},
		},
	})
}

func TestBuild_FormInfoAndItems(t *testing.T) {
	t.Parallel()

	result, err := Build(sectionedForm())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	reqs := result.Batch.Requests

	info := reqs[0].UpdateFormInfo
	if info == nil || info.Info.Title != "Event signup" || info.UpdateMask != "title,description" {
		t.Fatalf("unexpected form info request: %+v", reqs[0])
	}

	var titles []string
	for i, req := range reqs[1:] {
		if req.CreateItem == nil {
			t.Fatalf("request %d is not createItem", i+1)
		}
		if req.CreateItem.Location.Index != i {
			t.Fatalf("request %d location %d, want %d", i+1, req.CreateItem.Location.Index, i)
		}
		titles = append(titles, req.CreateItem.Item.Title)
	}
	want := []string{"Email", "Attending?", "Preferences", "Meal", "Extras", "Notes", "Excitement", "Arrival day", "Arrival time"}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Fatalf("item titles mismatch (-want +got):\n%s", diff)
	}

	pageBreak := reqs[3].CreateItem.Item
	if pageBreak.PageBreakItem == nil || pageBreak.ItemID != defaultSectionID(1) {
		t.Fatalf("expected page break for second section, got %+v", pageBreak)
	}
}

func TestBuild_QuestionMapping(t *testing.T) {
	t.Parallel()

	result, err := Build(sectionedForm())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	questions := map[string]Question{}
	for _, req := range result.Batch.Requests {
		if req.CreateItem != nil && req.CreateItem.Item.QuestionItem != nil {
			questions[req.CreateItem.Item.Title] = req.CreateItem.Item.QuestionItem.Question
		}
	}

	if q := questions["Email"]; !q.Required || q.TextQuestion == nil || q.TextQuestion.Paragraph {
		t.Fatalf("unexpected email question %+v", q)
	}
	if q := questions["Notes"]; q.TextQuestion == nil || !q.TextQuestion.Paragraph {
		t.Fatalf("expected paragraph question for textarea")
	}
	if q := questions["Meal"]; q.ChoiceQuestion == nil || q.ChoiceQuestion.Type != ChoiceDropDown {
		t.Fatalf("expected drop down for select")
	}
	if q := questions["Extras"]; q.ChoiceQuestion == nil || q.ChoiceQuestion.Type != ChoiceCheckbox || q.ChoiceQuestion.Options[0].GoToSectionID != "" {
		t.Fatalf("expected checkbox without branching, got %+v", q.ChoiceQuestion)
	}
	if diff := cmp.Diff(&ScaleQuestion{Low: 1, High: 10}, questions["Excitement"].ScaleQuestion); diff != "" {
		t.Fatalf("scale mismatch (-want +got):\n%s", diff)
	}
	if questions["Arrival day"].DateQuestion == nil || questions["Arrival time"].TimeQuestion == nil {
		t.Fatalf("expected date and time questions")
	}

	wantOptions := []ChoiceOption{
		{Value: "Yes", GoToSectionID: defaultSectionID(1)},
		{Value: "No", GoToAction: GoToSubmitForm},
		{Value: "Maybe", GoToAction: GoToNextSection},
		{Value: "Later"},
	}
	if diff := cmp.Diff(wantOptions, questions["Attending?"].ChoiceQuestion.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_Warnings(t *testing.T) {
	t.Parallel()

	result, err := Build(sectionedForm())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var messages []string
	for _, w := range result.Warnings {
		messages = append(messages, w.String())
	}
	joined := strings.Join(messages, "\n")
	for _, want := range []string{
		`section 0, Attending?: goTo section "Missing" not found`,
		`section 1: conditional visibility is not supported`,
		`section 1, Extras: checkbox option "Parking" cannot branch`,
		`section 1, Excitement: scale 12 capped at 10`,
		`section 1, Badge: choice field has no options`,
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected warning %q in:\n%s", want, joined)
		}
	}
}

func TestBuild_FlatFormAndCustomIDs(t *testing.T) {
	t.Parallel()

	form := normalize.Normalize(model.FormSpecification{
		Title:       "Quick",
		Description: "Flat",
		Fields: []model.Field{
			{Label: "Name", Type: model.FieldTypeText},
			{Label: "Score", Type: model.FieldTypeRating, Scale: model.IntPtr(1)},
		},
	})
	result, err := Build(form, WithSectionIDs(func(idx int) string { return "s" + string(rune('a'+idx)) }))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, req := range result.Batch.Requests {
		if req.CreateItem != nil && req.CreateItem.Item.PageBreakItem != nil {
			t.Fatalf("flat forms should not produce page breaks")
		}
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0].Message, "raised to 2") {
		t.Fatalf("expected scale warning, got %v", result.Warnings)
	}
}

func TestBuild_DuplicateTitlesAndJSON(t *testing.T) {
	t.Parallel()

	form := normalize.Normalize(model.FormSpecification{
		Title:       "Dupes",
		Description: "Two sections share a title",
		Sections: []model.Section{
			{Title: "Intro", Fields: []model.Field{{Label: "Pick", Type: model.FieldTypeRadio, Options: []model.ChoiceOption{model.LabeledOption("Go", "Same")}}}},
			{Title: "Same", Fields: []model.Field{{Label: "A", Type: model.FieldTypeText}}},
			{Title: "Same", Fields: []model.Field{{Label: "B", Type: model.FieldTypeText}}},
		},
	})
	result, err := Build(form)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0].Message, `"Same" is used more than once`) {
		t.Fatalf("expected duplicate title warning, got %v", result.Warnings)
	}

	raw, err := json.Marshal(result.Batch)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"goToSectionId":"`+defaultSectionID(1)+`"`) {
		t.Fatalf("expected first-match section id in %s", raw)
	}
	if !strings.Contains(string(raw), `"pageBreakItem":{}`) {
		t.Fatalf("expected page break items in %s", raw)
	}
}

func TestBuild_NilForm(t *testing.T) {
	t.Parallel()

	if _, err := Build(nil); err == nil {
		t.Fatalf("expected error for nil form")
	}
}
