package preview

import (
	"regexp"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Generator-produced text is untrusted; strip all markup before it reaches the
// templates. The policy output is already HTML-escaped.
var textPolicy = bluemonday.StrictPolicy()

func sanitize(value string) string {
	return strings.TrimSpace(textPolicy.Sanitize(value))
}

type cssVar struct {
	Name  string
	Value string
}

var (
	tokenNamePattern = regexp.MustCompile(`[^a-z0-9-]+`)
	tokenValueStrip  = strings.NewReplacer("<", "", ">", "", "{", "", "}", "", ";", "", "\n", " ", "\r", " ")
)

// cssVars turns theme tokens into custom properties, sorted by name. Tokens
// whose names or values reduce to nothing are dropped.
func cssVars(tokens map[string]string) []map[string]any {
	vars := make([]cssVar, 0, len(tokens))
	for key, value := range tokens {
		name := tokenNamePattern.ReplaceAllString(strings.ToLower(strings.ReplaceAll(key, ".", "-")), "-")
		name = strings.Trim(name, "-")
		value = strings.TrimSpace(tokenValueStrip.Replace(value))
		if name == "" || value == "" {
			continue
		}
		vars = append(vars, cssVar{Name: "--formspec-" + name, Value: value})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })

	out := make([]map[string]any, 0, len(vars))
	for _, v := range vars {
		out = append(out, map[string]any{"name": v.Name, "value": v.Value})
	}
	return out
}
