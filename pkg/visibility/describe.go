package visibility

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formspec/pkg/model"
)

// Describe renders a condition as a short sentence for previews.
func Describe(cond model.Condition) string {
	if cond.Vacuous() {
		return "Always shown"
	}
	return "Shown when " + clause(cond)
}

// DescribeAll joins condition clauses using the combinator's wording. Vacuous
// conditions are skipped.
func DescribeAll(conditions []model.Condition, c Combinator) string {
	parts := make([]string, 0, len(conditions))
	for _, cond := range conditions {
		if cond.Vacuous() {
			continue
		}
		parts = append(parts, clause(cond))
	}
	if len(parts) == 0 {
		return ""
	}
	joiner := " and "
	if c == Any {
		joiner = " or "
	}
	return "Shown when " + strings.Join(parts, joiner)
}

func clause(cond model.Condition) string {
	field := strings.TrimSpace(cond.FieldID)
	switch {
	case cond.Equals != nil && cond.NotEquals != nil:
		return fmt.Sprintf("%q is %q or is not %q", field, *cond.Equals, *cond.NotEquals)
	case cond.Equals != nil:
		return fmt.Sprintf("%q is %q", field, *cond.Equals)
	default:
		return fmt.Sprintf("%q is not %q", field, *cond.NotEquals)
	}
}
