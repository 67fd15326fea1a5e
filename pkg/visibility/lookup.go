package visibility

import (
	"fmt"
	"strconv"
	"strings"
)

func lookup(answers Answers, key string) (any, bool) {
	if len(answers) == 0 {
		return nil, false
	}
	// Exact keys win so labels containing dots still resolve.
	if v, ok := answers[key]; ok {
		return present(v)
	}
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return nil, false
	}
	if v, ok := answers[trimmed]; ok {
		return present(v)
	}
	if !strings.Contains(trimmed, ".") {
		return nil, false
	}

	var current any = map[string]any(answers)
	for _, part := range strings.Split(trimmed, ".") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, false
		}
		switch typed := current.(type) {
		case map[string]any:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		case Answers:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		case map[string]string:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		default:
			return nil, false
		}
	}
	return present(current)
}

// present treats nil as "no answer".
func present(value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	return value, true
}

func matches(value any, want string) bool {
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			if coerceString(item) == want {
				return true
			}
		}
		return false
	case []string:
		for _, item := range v {
			if item == want {
				return true
			}
		}
		return false
	default:
		return coerceString(value) == want
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(value)
	}
}
