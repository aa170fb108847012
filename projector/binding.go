package projector

import (
	"sort"
	"strconv"
	"strings"

	"github.com/yourorg/listing-console/internal/canon"
)

// Binding is the backend key an editor field reads from and writes to for
// one record, plus the raw value found there. Bindings are resolved once
// when a session opens and reused for the save.
type Binding struct {
	Key   string
	Value any
}

// ResolveBinding picks the backend key holding a field's value. Candidates
// are probed in a fixed order: the canonical key first, then each alias.
// Pass 1 takes the first candidate with a meaningful value; pass 2 settles
// for a candidate that is merely present. An entirely unbound field falls
// back to the canonical key with an empty value — it still renders, and the
// closed-schema rule keeps it out of any patch.
//
// Resolution is pure: the same spec and record always yield the same
// binding.
func ResolveBinding(spec FieldSpec, rec Record) Binding {
	candidates := make([]string, 0, 1+len(spec.AliasKeys))
	candidates = append(candidates, spec.Key)
	candidates = append(candidates, spec.AliasKeys...)

	for _, key := range candidates {
		if v, ok := rec[key]; ok && meaningful(v) {
			return Binding{Key: key, Value: v}
		}
	}
	for _, key := range candidates {
		if v, ok := rec[key]; ok {
			return Binding{Key: key, Value: v}
		}
	}
	return Binding{Key: spec.Key, Value: ""}
}

// FormatForDisplay renders a raw bound value as editor text. Collections
// are flattened element-wise; scalars go through boolean-text normalization
// and, when the spec asks for it, locality stripping. The result is always
// a string.
func FormatForDisplay(raw any, spec FieldSpec) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case []any:
		return joinDisplayEntries(v)
	case map[string]any:
		return joinDisplayEntries(sortedValues(v))
	default:
		s := scalarString(normalizeBooleanText(v))
		if spec.StripCity {
			s = canon.StripLocalityPrefix(s)
			if strings.Contains(s, ",") {
				s = canon.ShortAddress(s)
			}
		}
		return s
	}
}

// normalizeBooleanText maps the zoo of boolean spellings backends use onto
// display text: truthy literals become "Да", falsy ones become the empty
// string, anything else passes through untouched.
func normalizeBooleanText(v any) any {
	switch t := v.(type) {
	case bool:
		if t {
			return "Да"
		}
		return ""
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "false", "0", "нет", "no":
			return ""
		case "true", "1", "да", "yes":
			return "Да"
		}
	}
	return v
}

func joinDisplayEntries(entries []any) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		s := scalarString(normalizeBooleanText(entry))
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// sortedValues flattens a map deterministically. Index-like keys sort
// numerically so {"0":..,"1":..,"10":..} keeps collection order.
func sortedValues(m map[string]any) []any {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aerr := strconv.Atoi(keys[i])
		b, berr := strconv.Atoi(keys[j])
		if aerr == nil && berr == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	values := make([]any, 0, len(keys))
	for _, k := range keys {
		values = append(values, m[k])
	}
	return values
}
