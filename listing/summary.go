package listing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yourorg/listing-console/internal/canon"
	"github.com/yourorg/listing-console/projector"
)

// Summary is the card-level projection of one listing.
type Summary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Address    string `json:"address"`
	PriceLabel string `json:"priceLabel"`
	MetaLine   string `json:"metaLine,omitempty"`
	PhotoURL   string `json:"photoUrl,omitempty"`
	Status     string `json:"status"`
	DealType   string `json:"dealType"`
}

// Summarize builds the card view for a raw listing record.
func Summarize(id string, rec map[string]any) Summary {
	title := firstText(rec, "title", "address", "full_address")
	if title == "" {
		title = "Объект #" + id
	}
	address := canon.ShortAddress(firstText(rec, "full_address", "address", "location"))
	if address == "" {
		address = "Адрес уточняется"
	}
	return Summary{
		ID:         id,
		Title:      title,
		Address:    address,
		PriceLabel: FormatPrice(firstValue(rec, "price", "price_total", "price_rub")),
		MetaLine:   metaLine(rec),
		PhotoURL:   projector.FirstPhotoURL(rec),
		Status:     ResolveStatus(rec),
		DealType:   ResolveDealType(rec),
	}
}

// FormatPrice renders a price with thousands grouping and the ruble sign,
// or an em dash when the listing has no usable price.
func FormatPrice(v any) string {
	n, ok := toNumber(v)
	if !ok || n == 0 {
		return "—"
	}
	return groupDigits(strconv.FormatFloat(n, 'f', -1, 64)) + " ₽"
}

func metaLine(rec map[string]any) string {
	parts := []string{}
	if rooms := scalarText(rec["rooms"]); rooms != "" {
		parts = append(parts, rooms+" комн.")
	}
	if area := scalarText(rec["total_area"]); area != "" {
		parts = append(parts, area+" м²")
	}
	if floor := scalarText(rec["floor"]); floor != "" {
		if floors := scalarText(rec["floors"]); floors != "" {
			parts = append(parts, fmt.Sprintf("%s/%s этаж", floor, floors))
		} else {
			parts = append(parts, floor+" этаж")
		}
	}
	return strings.Join(parts, " · ")
}

func firstText(rec map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := rec[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func firstValue(rec map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := rec[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func scalarText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// groupDigits inserts spaces every three digits from the right, leaving any
// fractional part alone.
func groupDigits(s string) string {
	whole, frac, hasFrac := strings.Cut(s, ".")
	neg := strings.HasPrefix(whole, "-")
	if neg {
		whole = whole[1:]
	}
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if neg {
		out = "-" + out
	}
	if hasFrac {
		out += "." + frac
	}
	return out
}
