// Package projector turns a semi-structured listing record into a
// display-ready editor projection and computes minimal patch payloads for
// saves. Records arrive from backends the console does not own: the same
// attribute may be stored as total_area, area or square_total depending on
// where the listing was imported from, and no two records are guaranteed to
// share a schema. Everything here is pure, in-memory transformation; the
// HTTP layer owns fetching and writing.
package projector

import (
	"strconv"
	"strings"
)

// Record is one listing's backend payload as decoded JSON: keys map to
// null, bool, float64, string, []any or nested map[string]any.
type Record map[string]any

// Patch is the minimal key -> value diff submitted to update a record.
// It only ever contains keys that already exist in the source record.
type Patch map[string]any

// meaningful reports whether a value is worth binding to: present, non-nil
// and not a blank string.
func meaningful(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// scalarString renders a scalar JSON value as editor text. Numbers keep
// their shortest textual form (40, not 40.000000).
func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// ParseBool interprets the loosely typed toggle values backends send.
func ParseBool(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	switch scalarFold(v) {
	case "1", "yes", "true", "on", "да", "есть":
		return true
	}
	return false
}

func scalarFold(v any) string {
	return strings.ToLower(strings.TrimSpace(scalarString(v)))
}
