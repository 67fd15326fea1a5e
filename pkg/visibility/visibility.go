// Package visibility evaluates section conditions against caller-supplied
// answers. It performs no I/O and keeps no state: every call is a pure
// function of its arguments.
package visibility

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formspec/pkg/model"
)

// Answers maps field identifiers to answer values. Values are compared by
// their string form; slice values (checkbox answers) match when any element
// matches. Nested maps are reachable through dotted identifiers.
type Answers map[string]any

// UnknownFieldPolicy decides the outcome of a condition whose field has no
// answer.
type UnknownFieldPolicy int

const (
	// UnknownVisible treats an unanswered condition as satisfied.
	UnknownVisible UnknownFieldPolicy = iota
	// UnknownHidden treats an unanswered condition as failed.
	UnknownHidden
)

func (p UnknownFieldPolicy) String() string {
	switch p {
	case UnknownHidden:
		return "hidden"
	default:
		return "visible"
	}
}

// ParseUnknownFieldPolicy accepts "visible" or "hidden".
func ParseUnknownFieldPolicy(raw string) (UnknownFieldPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "visible", "show":
		return UnknownVisible, nil
	case "hidden", "hide":
		return UnknownHidden, nil
	default:
		return UnknownVisible, fmt.Errorf("visibility: unknown field policy %q", raw)
	}
}

// Combinator joins the outcomes of several conditions on one section.
type Combinator int

const (
	// All requires every condition to hold.
	All Combinator = iota
	// Any requires at least one condition to hold.
	Any
)

func (c Combinator) String() string {
	if c == Any {
		return "any"
	}
	return "all"
}

// ParseCombinator accepts "all"/"and" or "any"/"or".
func ParseCombinator(raw string) (Combinator, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all", "and":
		return All, nil
	case "any", "or":
		return Any, nil
	default:
		return All, fmt.Errorf("visibility: unknown combinator %q", raw)
	}
}

// Options tunes Evaluate. The zero value means AND semantics with unanswered
// fields treated as visible.
type Options struct {
	Unknown    UnknownFieldPolicy
	Combinator Combinator
}

// Option mutates Options.
type Option func(*Options)

// WithUnknownFieldPolicy sets the policy for unanswered fields.
func WithUnknownFieldPolicy(policy UnknownFieldPolicy) Option {
	return func(o *Options) {
		o.Unknown = policy
	}
}

// WithCombinator sets how multiple conditions are joined.
func WithCombinator(c Combinator) Option {
	return func(o *Options) {
		o.Combinator = c
	}
}

// Resolve applies options over the zero Options.
func Resolve(options ...Option) Options {
	var out Options
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&out)
	}
	return out
}

// Evaluate reports whether a section guarded by conditions is visible. An
// empty condition list is always visible.
func Evaluate(conditions []model.Condition, answers Answers, options ...Option) bool {
	return EvaluateWith(conditions, answers, Resolve(options...))
}

// EvaluateWith is Evaluate with pre-resolved options.
func EvaluateWith(conditions []model.Condition, answers Answers, opts Options) bool {
	if len(conditions) == 0 {
		return true
	}
	if opts.Combinator == Any {
		for _, cond := range conditions {
			if Holds(cond, answers, opts.Unknown) {
				return true
			}
		}
		return false
	}
	for _, cond := range conditions {
		if !Holds(cond, answers, opts.Unknown) {
			return false
		}
	}
	return true
}

// Holds evaluates a single condition. A condition with neither equals nor
// notEquals always holds. When both are set the condition holds if either
// comparison does.
func Holds(cond model.Condition, answers Answers, policy UnknownFieldPolicy) bool {
	if cond.Vacuous() {
		return true
	}
	value, ok := lookup(answers, cond.FieldID)
	if !ok {
		return policy == UnknownVisible
	}
	if cond.Equals != nil && matches(value, *cond.Equals) {
		return true
	}
	if cond.NotEquals != nil && !matches(value, *cond.NotEquals) {
		return true
	}
	return false
}

// Evaluator lets renderers accept custom visibility logic.
type Evaluator interface {
	Visible(conditions []model.Condition, answers Answers, opts Options) bool
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(conditions []model.Condition, answers Answers, opts Options) bool

// Visible delegates to the underlying function.
func (fn EvaluatorFunc) Visible(conditions []model.Condition, answers Answers, opts Options) bool {
	return fn(conditions, answers, opts)
}

// Default is the Evaluator backed by EvaluateWith.
var Default Evaluator = EvaluatorFunc(EvaluateWith)
