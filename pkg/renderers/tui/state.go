package tui

import "github.com/goliatone/go-formspec/pkg/visibility"

// State tracks answers keyed by field label and the sections visited so far.
type State struct {
	answers visibility.Answers
	trail   []int
}

// NewState seeds the state with prefilled answers.
func NewState(prefill visibility.Answers) *State {
	answers := make(visibility.Answers, len(prefill))
	for key, value := range prefill {
		answers[key] = value
	}
	return &State{answers: answers}
}

// Answers returns the collected answers (mutable).
func (s *State) Answers() visibility.Answers {
	if s == nil {
		return nil
	}
	return s.answers
}

// Trail lists visited section positions in order.
func (s *State) Trail() []int {
	if s == nil {
		return nil
	}
	return append([]int(nil), s.trail...)
}

// Set records an answer; nil clears it.
func (s *State) Set(label string, value any) {
	if value == nil {
		delete(s.answers, label)
		return
	}
	s.answers[label] = value
}

// Get returns the current answer for label.
func (s *State) Get(label string) (any, bool) {
	value, ok := s.answers[label]
	return value, ok
}

func (s *State) visit(idx int) {
	s.trail = append(s.trail, idx)
}
