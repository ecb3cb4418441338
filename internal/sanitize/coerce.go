package sanitize

import (
	"strconv"
	"strings"
)

// defaultScore is the neutral midpoint substituted for absent or unusable
// sentiment and mood values.
const defaultScore = 5

// intOr coerces v to an integer, returning def when no coercion exists
// (coerce-or-default). Floats truncate toward zero.
func intOr(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return def
}

// clamp forces v into [min, max], min-then-max. Out-of-range values are
// squashed, not rejected.
func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// isZero reports whether a JSON-like scalar is empty: nil, false, zero
// numbers, empty strings and empty collections.
func isZero(v any) bool {
	switch n := v.(type) {
	case nil:
		return true
	case bool:
		return !n
	case int:
		return n == 0
	case int64:
		return n == 0
	case float64:
		return n == 0
	case string:
		return n == ""
	case []any:
		return len(n) == 0
	case map[string]any:
		return len(n) == 0
	}
	return false
}

func truthy(v any) bool {
	return !isZero(v)
}

// asList normalizes a value to []any. Decoded JSON always arrives as []any,
// but the engine's own output carries typed slices; both shapes are accepted
// so an already-sanitized entry can be re-fed without losing its lists.
func asList(v any) ([]any, bool) {
	switch items := v.(type) {
	case []any:
		return items, true
	case []string:
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = item
		}
		return out, true
	case []bool:
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = item
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = item
		}
		return out, true
	}
	return nil, false
}
