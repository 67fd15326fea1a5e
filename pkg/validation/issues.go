package validation

import (
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

func issuesFromError(verr *jsonschema.ValidationError) []Issue {
	leaves := flattenValidationErrors(verr)
	issues := make([]Issue, 0, len(leaves))
	seen := make(map[string]struct{}, len(leaves))
	for _, leaf := range leaves {
		issue := issueFromLeaf(leaf)
		key := issue.Path + "\x00" + issue.Message
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		issues = append(issues, issue)
	}
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		return issues[i].Message < issues[j].Message
	})
	return issues
}

// flattenValidationErrors collects the leaves of the cause tree; intermediate
// nodes only restate that a subschema failed.
func flattenValidationErrors(verr *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(verr.Causes) == 0 {
		return []*jsonschema.ValidationError{verr}
	}
	var flat []*jsonschema.ValidationError
	for _, cause := range verr.Causes {
		flat = append(flat, flattenValidationErrors(cause)...)
	}
	return flat
}

func issueFromLeaf(leaf *jsonschema.ValidationError) Issue {
	msg := ""
	if leaf.ErrorKind != nil {
		msg = leaf.ErrorKind.LocalizedString(printer)
	}
	return Issue{
		Path:    pointerFromLocation(leaf.InstanceLocation),
		Field:   fieldPathFromLocation(leaf.InstanceLocation),
		Message: strings.TrimSpace(msg),
	}
}

func pointerFromLocation(location []string) string {
	if len(location) == 0 {
		return ""
	}
	parts := make([]string, 0, len(location))
	for _, segment := range location {
		segment = strings.ReplaceAll(segment, "~", "~0")
		segment = strings.ReplaceAll(segment, "/", "~1")
		parts = append(parts, segment)
	}
	return "/" + strings.Join(parts, "/")
}

func fieldPathFromLocation(location []string) string {
	var b strings.Builder
	for _, segment := range location {
		if isNumeric(segment) {
			b.WriteString("[")
			b.WriteString(segment)
			b.WriteString("]")
			continue
		}
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(segment)
	}
	return b.String()
}

func isNumeric(value string) bool {
	if value == "" {
		return false
	}
	_, err := strconv.Atoi(value)
	return err == nil && !strings.HasPrefix(value, "+") && !strings.HasPrefix(value, "-")
}
