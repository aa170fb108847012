// Package listing carries the console's card-level semantics: resolving a
// listing's moderation status and deal type out of inconsistent backend
// fields, matching search queries, and building card summaries.
package listing

import (
	"strconv"
	"strings"
)

// Console statuses. Whatever a backend or the syndication provider calls a
// state, it lands on one of these.
const (
	StatusActive   = "active"
	StatusDraft    = "draft"
	StatusInactive = "inactive"
	StatusArchived = "archived"
	StatusRejected = "rejected"
)

const (
	DealTypeRent = "rent"
	DealTypeSale = "sale"
)

// StatusLabels are the user-facing names for each status.
var StatusLabels = map[string]string{
	StatusActive:   "Активное",
	StatusDraft:    "Черновик",
	StatusInactive: "Неактивное",
	StatusArchived: "В архиве",
	StatusRejected: "Отклонено",
}

// fold lowercases the textual form of a scalar; non-scalars fold to "".
func fold(v any) string {
	switch t := v.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(t))
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// ResolveStatus reads a listing's status from whichever of the known status
// fields is populated, matching loosely in both English and Russian.
// Listings with no recognizable status count as active unless explicitly
// flagged inactive.
func ResolveStatus(rec map[string]any) string {
	candidates := []any{
		rec["status"],
		rec["state"],
		rec["moderation_status"],
		rec["moderation"],
		rec["approval_status"],
		rec["cian_status"],
	}
	for _, candidate := range candidates {
		value := fold(candidate)
		if value == "" {
			continue
		}
		switch {
		case strings.Contains(value, "draft") || strings.Contains(value, "чернов"):
			return StatusDraft
		case strings.Contains(value, "reject") || strings.Contains(value, "откл"):
			return StatusRejected
		case strings.Contains(value, "archive") || strings.Contains(value, "архив"):
			return StatusArchived
		case strings.Contains(value, "inactive") || strings.Contains(value, "pause") || strings.Contains(value, "неакт"):
			return StatusInactive
		case strings.Contains(value, "active") || strings.Contains(value, "актив"):
			return StatusActive
		}
	}
	if active, ok := rec["is_active"].(bool); ok && !active {
		return StatusInactive
	}
	return StatusActive
}

// MapProviderStatus translates a syndication provider offer status into a
// console status, or "" when the provider string is unknown. Unknown
// statuses must not override what the console already knows.
func MapProviderStatus(providerStatus string) string {
	value := strings.ToLower(strings.TrimSpace(providerStatus))
	if value == "" {
		return ""
	}
	switch {
	case strings.Contains(value, "publish") ||
		strings.Contains(value, "размещ") ||
		strings.Contains(value, "опублик"):
		return StatusActive
	case strings.Contains(value, "moderate") ||
		strings.Contains(value, "модерац") ||
		strings.Contains(value, "ожидает") ||
		strings.Contains(value, "установлено из импорта"):
		return StatusDraft
	case strings.Contains(value, "refus") ||
		strings.Contains(value, "откл") ||
		strings.Contains(value, "blocked") ||
		strings.Contains(value, "remove") ||
		strings.Contains(value, "удален") ||
		strings.Contains(value, "снят"):
		return StatusRejected
	case strings.Contains(value, "deactiv") ||
		strings.Contains(value, "деактив") ||
		strings.Contains(value, "pause"):
		return StatusInactive
	}
	return ""
}

// ResolveDealType decides rent vs sale from the usual suspects, defaulting
// to rent — this console manages a rental portfolio.
func ResolveDealType(rec map[string]any) string {
	candidates := []any{
		rec["deal_type"],
		rec["type"],
		rec["offer_type"],
		rec["category"],
		rec["listing_type"],
	}
	for _, candidate := range candidates {
		value := fold(candidate)
		if value == "" {
			continue
		}
		if strings.Contains(value, "sale") || strings.Contains(value, "sell") || strings.Contains(value, "прод") {
			return DealTypeSale
		}
		if strings.Contains(value, "rent") || strings.Contains(value, "аренда") || strings.Contains(value, "снять") {
			return DealTypeRent
		}
	}
	return DealTypeRent
}
