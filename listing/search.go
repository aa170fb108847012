package listing

import "strings"

// MatchesQuery implements the console's search box: case-insensitive
// substring match over id, addresses, title and complex name, with a
// digits-only fallback so "45 000" or a partial id finds price and id
// matches regardless of formatting.
func MatchesQuery(id string, rec map[string]any, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	haystack := strings.ToLower(strings.Join([]string{
		id,
		textOf(rec["full_address"]),
		textOf(rec["address"]),
		textOf(rec["title"]),
		firstText(rec, "complex_name", "complex"),
	}, " "))
	if strings.Contains(haystack, query) {
		return true
	}

	digitsQuery := digitsOnly(query)
	if digitsQuery == "" {
		return false
	}
	for _, key := range []string{"price", "price_total", "price_rub"} {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		if strings.Contains(digitsOnly(scalarText(v)), digitsQuery) {
			return true
		}
	}
	idDigits := digitsOnly(id)
	if idDigits == "" {
		idDigits = digitsOnly(textOf(rec["external_id"]))
	}
	return idDigits != "" && strings.Contains(idDigits, digitsQuery)
}

func textOf(v any) string {
	s, _ := v.(string)
	return s
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
