// Package canon normalizes the free-form addresses that imported listings
// carry. Every feed spells the locality differently ("г. Москва, ...",
// "Москва, ...", "Moscow, ..."); display code wants the address without it,
// and card views want just the street-level tail.
package canon

import (
	"regexp"
	"strings"
)

var (
	reLocalityCyr = regexp.MustCompile(`(?i)^(г\.?\s*)?москва,?\s*`)
	reLocalityLat = regexp.MustCompile(`(?i)^moscow,?\s*`)
)

// StripLocalityPrefix removes a leading city-name prefix, with or without
// the "г." marker and trailing comma. Display-only: stored values keep
// their full form.
func StripLocalityPrefix(s string) string {
	if s == "" {
		return s
	}
	s = reLocalityCyr.ReplaceAllString(s, "")
	s = reLocalityLat.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ShortAddress collapses a comma-delimited address to its last two
// segments, which for the feeds at hand is street plus house number.
// Addresses without commas pass through unchanged.
func ShortAddress(address string) string {
	if address == "" {
		return address
	}
	parts := []string{}
	for _, part := range strings.Split(address, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return address
	}
	if len(parts) > 2 {
		parts = parts[len(parts)-2:]
	}
	return strings.Join(parts, ", ")
}
