// Package export maps a normalized form onto a forms-platform batch update:
// one request to set the form info followed by one createItem request per
// section break and question. Only the request body is produced; sending it
// is left to the caller.
package export

import "strconv"

// Batch is the body of a batchUpdate call.
type Batch struct {
	Requests []Request `json:"requests"`
}

// Request holds exactly one of its members.
type Request struct {
	UpdateFormInfo *UpdateFormInfo `json:"updateFormInfo,omitempty"`
	CreateItem     *CreateItem     `json:"createItem,omitempty"`
}

type UpdateFormInfo struct {
	Info       Info   `json:"info"`
	UpdateMask string `json:"updateMask"`
}

type Info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type CreateItem struct {
	Item     Item     `json:"item"`
	Location Location `json:"location"`
}

type Location struct {
	Index int `json:"index"`
}

// Item is a form item. Exactly one of QuestionItem and PageBreakItem is set.
type Item struct {
	ItemID        string         `json:"itemId,omitempty"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	QuestionItem  *QuestionItem  `json:"questionItem,omitempty"`
	PageBreakItem *PageBreakItem `json:"pageBreakItem,omitempty"`
}

type PageBreakItem struct{}

type QuestionItem struct {
	Question Question `json:"question"`
}

type Question struct {
	Required       bool            `json:"required,omitempty"`
	ChoiceQuestion *ChoiceQuestion `json:"choiceQuestion,omitempty"`
	TextQuestion   *TextQuestion   `json:"textQuestion,omitempty"`
	ScaleQuestion  *ScaleQuestion  `json:"scaleQuestion,omitempty"`
	DateQuestion   *DateQuestion   `json:"dateQuestion,omitempty"`
	TimeQuestion   *TimeQuestion   `json:"timeQuestion,omitempty"`
}

// ChoiceType is the platform's choice question kind.
type ChoiceType string

const (
	ChoiceRadio    ChoiceType = "RADIO"
	ChoiceCheckbox ChoiceType = "CHECKBOX"
	ChoiceDropDown ChoiceType = "DROP_DOWN"
)

type ChoiceQuestion struct {
	Type    ChoiceType     `json:"type"`
	Options []ChoiceOption `json:"options"`
}

// GoToAction is a navigation sentinel understood by the platform.
type GoToAction string

const (
	GoToNextSection GoToAction = "NEXT_SECTION"
	GoToSubmitForm  GoToAction = "SUBMIT_FORM"
)

type ChoiceOption struct {
	Value         string     `json:"value"`
	GoToAction    GoToAction `json:"goToAction,omitempty"`
	GoToSectionID string     `json:"goToSectionId,omitempty"`
}

type TextQuestion struct {
	Paragraph bool `json:"paragraph,omitempty"`
}

type ScaleQuestion struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

type DateQuestion struct{}

type TimeQuestion struct{}

// Warning records something the platform cannot represent. The export still
// succeeds; the affected detail is dropped or adjusted.
type Warning struct {
	Section int    `json:"section"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Field == "" {
		return "section " + strconv.Itoa(w.Section) + ": " + w.Message
	}
	return "section " + strconv.Itoa(w.Section) + ", " + w.Field + ": " + w.Message
}

// Result is the batch plus any warnings raised while building it.
type Result struct {
	Batch    Batch     `json:"batch"`
	Warnings []Warning `json:"warnings,omitempty"`
}
