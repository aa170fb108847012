package projector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func areaSpec() FieldSpec {
	return FieldSpec{Key: "total_area", Label: "Общая площадь", Kind: KindNumber, AliasKeys: []string{"area", "square_total"}}
}

func TestResolveBinding(t *testing.T) {
	t.Run("canonical key wins over aliases", func(t *testing.T) {
		rec := Record{"total_area": 45.0, "area": 50.0}
		b := ResolveBinding(areaSpec(), rec)
		assert.Equal(t, "total_area", b.Key)
		assert.Equal(t, 45.0, b.Value)
	})

	t.Run("meaningless canonical value falls through to alias", func(t *testing.T) {
		rec := Record{"total_area": "", "area": 50.0}
		b := ResolveBinding(areaSpec(), rec)
		assert.Equal(t, "area", b.Key)
		assert.Equal(t, 50.0, b.Value)
	})

	t.Run("nil is skipped like a blank string", func(t *testing.T) {
		rec := Record{"total_area": nil, "square_total": "41.5"}
		b := ResolveBinding(areaSpec(), rec)
		assert.Equal(t, "square_total", b.Key)
	})

	t.Run("only empty candidates binds the first present one", func(t *testing.T) {
		rec := Record{"square_total": ""}
		b := ResolveBinding(areaSpec(), rec)
		assert.Equal(t, "square_total", b.Key)
		assert.Equal(t, "", b.Value)
	})

	t.Run("nothing present falls back to canonical key", func(t *testing.T) {
		b := ResolveBinding(areaSpec(), Record{"unrelated": 1.0})
		assert.Equal(t, "total_area", b.Key)
		assert.Equal(t, "", b.Value)
	})

	t.Run("resolution is deterministic", func(t *testing.T) {
		rec := Record{"area": 50.0, "square_total": 60.0}
		first := ResolveBinding(areaSpec(), rec)
		for i := 0; i < 20; i++ {
			assert.Equal(t, first, ResolveBinding(areaSpec(), rec))
		}
	})

	t.Run("zero and false are meaningful", func(t *testing.T) {
		rec := Record{"total_area": 0.0, "area": 50.0}
		b := ResolveBinding(areaSpec(), rec)
		assert.Equal(t, "total_area", b.Key)
		assert.Equal(t, 0.0, b.Value)
	})
}

func TestFormatForDisplay(t *testing.T) {
	plain := FieldSpec{Key: "x", Kind: KindText}

	t.Run("nil renders empty", func(t *testing.T) {
		assert.Equal(t, "", FormatForDisplay(nil, plain))
	})

	t.Run("numbers keep their shortest form", func(t *testing.T) {
		assert.Equal(t, "40", FormatForDisplay(40.0, plain))
		assert.Equal(t, "40.5", FormatForDisplay(40.5, plain))
	})

	t.Run("booleans become Да or empty", func(t *testing.T) {
		assert.Equal(t, "Да", FormatForDisplay(true, plain))
		assert.Equal(t, "", FormatForDisplay(false, plain))
		assert.Equal(t, "Да", FormatForDisplay("yes", plain))
		assert.Equal(t, "", FormatForDisplay("нет", plain))
		assert.Equal(t, "Да", FormatForDisplay("1", plain))
		assert.Equal(t, "", FormatForDisplay("0", plain))
	})

	t.Run("non-boolean text passes through", func(t *testing.T) {
		assert.Equal(t, "евроремонт", FormatForDisplay("евроремонт", plain))
	})

	t.Run("boolean normalization is idempotent", func(t *testing.T) {
		once := FormatForDisplay("да", plain)
		assert.Equal(t, "Да", once)
		assert.Equal(t, "Да", FormatForDisplay(once, plain))

		cleared := FormatForDisplay("нет", plain)
		assert.Equal(t, "", cleared)
		assert.Equal(t, "", FormatForDisplay(cleared, plain))
	})

	t.Run("arrays join element-wise", func(t *testing.T) {
		got := FormatForDisplay([]any{"лоджия", "балкон"}, plain)
		assert.Equal(t, "лоджия, балкон", got)
	})

	t.Run("objects flatten with index-like keys in numeric order", func(t *testing.T) {
		got := FormatForDisplay(map[string]any{"10": "c", "2": "b", "0": "a"}, plain)
		assert.Equal(t, "a, b, c", got)
	})

	t.Run("empty collection entries are dropped", func(t *testing.T) {
		got := FormatForDisplay([]any{"a", "", nil, "b"}, plain)
		assert.Equal(t, "a, b", got)
	})

	t.Run("city stripping applies for display only", func(t *testing.T) {
		spec := FieldSpec{Key: "address", Kind: KindText, StripCity: true}
		got := FormatForDisplay("г. Москва, ул. Ленина, д. 5", spec)
		assert.Equal(t, "ул. Ленина, д. 5", got)
	})

	t.Run("city stripping is idempotent on already-short addresses", func(t *testing.T) {
		spec := FieldSpec{Key: "address", Kind: KindText, StripCity: true}
		once := FormatForDisplay("Москва, ул. Тверская, 7", spec)
		again := FormatForDisplay(once, spec)
		assert.Equal(t, once, again)
	})
}

func TestSessionBindings(t *testing.T) {
	rec := Record{
		"total_area":   45.0,
		"area":         50.0,
		"full_address": "г. Москва, Арбат, 10",
	}
	sess := Open(rec, DefaultSchema())

	t.Run("binding keys are exposed per field", func(t *testing.T) {
		assert.Equal(t, "total_area", sess.BindingKey("total_area"))
		assert.Equal(t, "full_address", sess.BindingKey("address"))
	})

	t.Run("projection carries display values and binding keys", func(t *testing.T) {
		groups := sess.Projection()
		var addr *FieldView
		for _, g := range groups {
			for i := range g.Fields {
				if g.Fields[i].Key == "address" {
					addr = &g.Fields[i]
				}
			}
		}
		require.NotNil(t, addr)
		assert.Equal(t, "full_address", addr.BindingKey)
		assert.Equal(t, "Арбат, 10", addr.Value)
	})

	t.Run("snapshot shields the session from later record mutation", func(t *testing.T) {
		mutable := Record{"total_area": 45.0}
		s := Open(mutable, DefaultSchema())
		mutable["total_area"] = 99.0
		assert.Equal(t, "total_area", s.BindingKey("total_area"))
		patch := s.BuildPatch(map[string]string{"total_area": "45"}, nil)
		assert.Empty(t, patch)
	})
}

func TestParseBool(t *testing.T) {
	assert.True(t, ParseBool(true))
	assert.True(t, ParseBool("да"))
	assert.True(t, ParseBool("есть"))
	assert.True(t, ParseBool("1"))
	assert.True(t, ParseBool(1.0))
	assert.True(t, ParseBool("on"))
	assert.False(t, ParseBool(false))
	assert.False(t, ParseBool(nil))
	assert.False(t, ParseBool("нет"))
	assert.False(t, ParseBool(0.0))
	assert.False(t, ParseBool("включено")) // unknown spellings stay off
}
