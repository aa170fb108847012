package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		rec := map[string]any{
			"title":        "Уютная двушка",
			"full_address": "г. Москва, ул. Ленина, д. 5",
			"price":        45000.0,
			"rooms":        2.0,
			"total_area":   45.0,
			"floor":        3.0,
			"floors":       9.0,
			"photos":       []any{"http://a.jpg"},
			"status":       "published",
			"deal_type":    "rent",
		}
		s := Summarize("101", rec)
		assert.Equal(t, "101", s.ID)
		assert.Equal(t, "Уютная двушка", s.Title)
		assert.Equal(t, "ул. Ленина, д. 5", s.Address)
		assert.Equal(t, "45 000 ₽", s.PriceLabel)
		assert.Equal(t, "2 комн. · 45 м² · 3/9 этаж", s.MetaLine)
		assert.Equal(t, "http://a.jpg", s.PhotoURL)
		assert.Equal(t, DealTypeRent, s.DealType)
	})

	t.Run("sparse record falls back", func(t *testing.T) {
		s := Summarize("202", map[string]any{})
		assert.Equal(t, "Объект #202", s.Title)
		assert.Equal(t, "Адрес уточняется", s.Address)
		assert.Equal(t, "—", s.PriceLabel)
		assert.Empty(t, s.MetaLine)
		assert.Empty(t, s.PhotoURL)
		assert.Equal(t, StatusActive, s.Status)
	})

	t.Run("floor without floors", func(t *testing.T) {
		s := Summarize("1", map[string]any{"floor": 5.0})
		assert.Equal(t, "5 этаж", s.MetaLine)
	})
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "45 000 ₽", FormatPrice(45000.0))
	assert.Equal(t, "1 250 000 ₽", FormatPrice(1250000.0))
	assert.Equal(t, "900 ₽", FormatPrice(900.0))
	assert.Equal(t, "45 000 ₽", FormatPrice("45000"))
	assert.Equal(t, "45 000.5 ₽", FormatPrice(45000.5))
	assert.Equal(t, "—", FormatPrice(nil))
	assert.Equal(t, "—", FormatPrice(0.0))
	assert.Equal(t, "—", FormatPrice("договорная"))
}

func TestMatchesQuery(t *testing.T) {
	rec := map[string]any{
		"full_address": "Москва, ул. Тверская, 7",
		"title":        "Студия у метро",
		"complex_name": "ЖК Светлый",
		"price":        45000.0,
	}

	t.Run("empty query matches everything", func(t *testing.T) {
		assert.True(t, MatchesQuery("77", rec, ""))
		assert.True(t, MatchesQuery("77", rec, "   "))
	})

	t.Run("case-insensitive substring over text fields", func(t *testing.T) {
		assert.True(t, MatchesQuery("77", rec, "тверская"))
		assert.True(t, MatchesQuery("77", rec, "СТУДИЯ"))
		assert.True(t, MatchesQuery("77", rec, "светлый"))
	})

	t.Run("id substring", func(t *testing.T) {
		assert.True(t, MatchesQuery("obj-778", rec, "778"))
	})

	t.Run("formatted price digits match", func(t *testing.T) {
		assert.True(t, MatchesQuery("77", rec, "45 000"))
		assert.True(t, MatchesQuery("77", rec, "45000"))
	})

	t.Run("no match", func(t *testing.T) {
		assert.False(t, MatchesQuery("77", rec, "арбат"))
		assert.False(t, MatchesQuery("77", rec, "99999"))
	})
}
