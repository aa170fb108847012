package projector

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPhotos(t *testing.T) {
	t.Run("list shape", func(t *testing.T) {
		rec := Record{"photos": []any{"http://a.jpg", "http://b.jpg"}}
		col := ExtractPhotos(rec)
		assert.Equal(t, "photos", col.Key)
		assert.Equal(t, ShapeList, col.Shape)
		assert.Equal(t, []string{"http://a.jpg", "http://b.jpg"}, col.URLs)
	})

	t.Run("delimited string shape", func(t *testing.T) {
		rec := Record{"photo_urls": "http://a.jpg\nhttp://b.jpg, http://c.jpg"}
		col := ExtractPhotos(rec)
		assert.Equal(t, "photo_urls", col.Key)
		assert.Equal(t, ShapeDelimited, col.Shape)
		assert.Equal(t, []string{"http://a.jpg", "http://b.jpg", "http://c.jpg"}, col.URLs)
	})

	t.Run("index map shape keeps numeric order", func(t *testing.T) {
		rec := Record{"images": map[string]any{
			"10": "http://k.jpg",
			"2":  "http://c.jpg",
			"0":  "http://a.jpg",
		}}
		col := ExtractPhotos(rec)
		assert.Equal(t, ShapeIndexMap, col.Shape)
		assert.Equal(t, []string{"http://a.jpg", "http://c.jpg", "http://k.jpg"}, col.URLs)
	})

	t.Run("json-encoded array string is decoded and tagged as a list", func(t *testing.T) {
		rec := Record{"photos_json": `["http://a.jpg","http://b.jpg"]`}
		col := ExtractPhotos(rec)
		assert.Equal(t, "photos_json", col.Key)
		assert.Equal(t, ShapeList, col.Shape)
		assert.Equal(t, []string{"http://a.jpg", "http://b.jpg"}, col.URLs)
	})

	t.Run("objects with url fields flatten", func(t *testing.T) {
		rec := Record{"gallery": []any{
			map[string]any{"url": "http://a.jpg", "width": 800.0},
			map[string]any{"url": "http://b.jpg"},
		}}
		col := ExtractPhotos(rec)
		assert.Equal(t, []string{"http://a.jpg", "http://b.jpg"}, col.URLs)
	})

	t.Run("one nested level inside entries is still found", func(t *testing.T) {
		rec := Record{"media": []any{
			map[string]any{"photo": map[string]any{"url": "http://deep.jpg"}},
		}}
		col := ExtractPhotos(rec)
		assert.Equal(t, []string{"http://deep.jpg"}, col.URLs)
	})

	t.Run("non-url noise is dropped", func(t *testing.T) {
		rec := Record{"photos": []any{"not-a-url", "http://ok.jpg", 42.0}}
		col := ExtractPhotos(rec)
		assert.Equal(t, []string{"http://ok.jpg"}, col.URLs)
	})

	t.Run("first key with urls wins over an earlier empty key", func(t *testing.T) {
		rec := Record{
			"photos_json": "",
			"photos":      []any{"http://a.jpg"},
		}
		col := ExtractPhotos(rec)
		assert.Equal(t, "photos", col.Key)
		assert.Equal(t, []string{"http://a.jpg"}, col.URLs)
	})

	t.Run("all keys empty remembers the first present one", func(t *testing.T) {
		rec := Record{"photos": []any{}, "images": []any{}}
		col := ExtractPhotos(rec)
		assert.Equal(t, "photos", col.Key)
		assert.Equal(t, ShapeList, col.Shape)
		assert.Empty(t, col.URLs)
	})

	t.Run("no photo keys at all yields the default empty collection", func(t *testing.T) {
		col := ExtractPhotos(Record{"title": "x"})
		assert.Equal(t, "photos_json", col.Key)
		assert.Equal(t, ShapeList, col.Shape)
		assert.Empty(t, col.URLs)
	})

}

func TestSerializeRoundTrip(t *testing.T) {
	t.Run("list round-trips as a list", func(t *testing.T) {
		rec := Record{"photos": []any{"http://a.jpg", "http://b.jpg"}}
		col := ExtractPhotos(rec)
		out := Serialize(col, col.URLs)
		if diff := cmp.Diff([]string{"http://a.jpg", "http://b.jpg"}, out); diff != "" {
			t.Fatalf("unexpected serialization (-want +got):\n%s", diff)
		}
	})

	t.Run("delimited round-trips newline-joined", func(t *testing.T) {
		rec := Record{"photo_urls": "http://a.jpg, http://b.jpg"}
		col := ExtractPhotos(rec)
		out := Serialize(col, col.URLs)
		assert.Equal(t, "http://a.jpg\nhttp://b.jpg", out)
	})

	t.Run("index map round-trips with zero-based string keys", func(t *testing.T) {
		rec := Record{"images": map[string]any{"0": "http://a.jpg", "1": "http://b.jpg"}}
		col := ExtractPhotos(rec)
		out := Serialize(col, col.URLs)
		want := map[string]any{"0": "http://a.jpg", "1": "http://b.jpg"}
		if diff := cmp.Diff(want, out); diff != "" {
			t.Fatalf("unexpected serialization (-want +got):\n%s", diff)
		}
	})

	t.Run("re-extracting a serialized value reproduces the urls", func(t *testing.T) {
		for _, rec := range []Record{
			{"photos": []any{"http://a.jpg", "http://b.jpg"}},
			{"photo_urls": "http://a.jpg\nhttp://b.jpg"},
			{"images": map[string]any{"0": "http://a.jpg", "1": "http://b.jpg"}},
		} {
			col := ExtractPhotos(rec)
			serialized := Serialize(col, col.URLs)
			again, _ := normalizePhotoValue(serialized, 0)
			assert.Equal(t, col.URLs, again)
		}
	})

	t.Run("empty key serializes to nil", func(t *testing.T) {
		assert.Nil(t, Serialize(PhotoCollection{}, []string{"http://a.jpg"}))
	})
}

func TestResolveMainPhotoBinding(t *testing.T) {
	t.Run("url and index keys resolve independently", func(t *testing.T) {
		rec := Record{
			"main_photo_url":   "http://a.jpg",
			"main_photo_index": 2.0,
		}
		b := ResolveMainPhotoBinding(rec)
		assert.Equal(t, "main_photo_url", b.Key)
		assert.Equal(t, "http://a.jpg", b.Value)
		assert.Equal(t, "main_photo_index", b.IndexKey)
		assert.Equal(t, 2.0, b.Index)
	})

	t.Run("index without url", func(t *testing.T) {
		b := ResolveMainPhotoBinding(Record{"cover_index": 1.0})
		assert.Empty(t, b.Key)
		assert.Equal(t, "cover_index", b.IndexKey)
	})

	t.Run("neither present", func(t *testing.T) {
		b := ResolveMainPhotoBinding(Record{})
		assert.Empty(t, b.Key)
		assert.Empty(t, b.IndexKey)
	})
}

func TestFirstPhotoURL(t *testing.T) {
	t.Run("direct main photo wins", func(t *testing.T) {
		rec := Record{
			"main_photo_url": "http://main.jpg",
			"photos":         []any{"http://a.jpg"},
		}
		assert.Equal(t, "http://main.jpg", FirstPhotoURL(rec))
	})

	t.Run("falls back to the first collection url", func(t *testing.T) {
		rec := Record{"photos": []any{"http://a.jpg", "http://b.jpg"}}
		assert.Equal(t, "http://a.jpg", FirstPhotoURL(rec))
	})

	t.Run("json-encoded strings are probed", func(t *testing.T) {
		rec := Record{"photos_json": `[{"url":"http://j.jpg"}]`}
		assert.Equal(t, "http://j.jpg", FirstPhotoURL(rec))
	})

	t.Run("nothing usable returns empty", func(t *testing.T) {
		assert.Equal(t, "", FirstPhotoURL(Record{"photos": []any{"nope"}}))
	})

	t.Run("nesting beyond the depth cap terminates without a url", func(t *testing.T) {
		within := Record{"photos": []any{[]any{[]any{"http://deep.jpg"}}}}
		assert.Equal(t, "http://deep.jpg", FirstPhotoURL(within))

		beyond := Record{"photos": []any{[]any{[]any{[]any{[]any{"http://deeper.jpg"}}}}}}
		assert.Equal(t, "", FirstPhotoURL(beyond))
	})
}

func TestSessionPhotoOperations(t *testing.T) {
	open := func() *Session {
		return Open(Record{
			"photos":         []any{"http://a.jpg", "http://b.jpg", "http://c.jpg"},
			"main_photo_url": "http://b.jpg",
		}, DefaultSchema())
	}

	t.Run("reorder moves within bounds", func(t *testing.T) {
		s := open()
		require.NoError(t, s.ReorderPhotos(2, 0))
		assert.Equal(t, []string{"http://c.jpg", "http://a.jpg", "http://b.jpg"}, s.Photos())
	})

	t.Run("reorder out of range fails loudly", func(t *testing.T) {
		s := open()
		assert.ErrorIs(t, s.ReorderPhotos(0, 3), ErrIndexOutOfRange)
		assert.ErrorIs(t, s.ReorderPhotos(-1, 0), ErrIndexOutOfRange)
	})

	t.Run("remove drops the photo and refreshes main when needed", func(t *testing.T) {
		s := open()
		require.NoError(t, s.RemovePhoto(1))
		assert.Equal(t, []string{"http://a.jpg", "http://c.jpg"}, s.Photos())
		assert.Equal(t, "http://a.jpg", s.MainPhotoURL())
	})

	t.Run("remove out of range fails loudly", func(t *testing.T) {
		s := open()
		assert.ErrorIs(t, s.RemovePhoto(3), ErrIndexOutOfRange)
	})

	t.Run("set main promotes to the front", func(t *testing.T) {
		s := open()
		require.NoError(t, s.SetMainPhoto(2))
		assert.Equal(t, []string{"http://c.jpg", "http://a.jpg", "http://b.jpg"}, s.Photos())
		assert.Equal(t, "http://c.jpg", s.MainPhotoURL())
	})

	t.Run("add photo accepts data urls", func(t *testing.T) {
		s := Open(Record{}, DefaultSchema())
		s.AddPhoto("data:image/jpeg;base64,AAAA")
		assert.Equal(t, []string{"data:image/jpeg;base64,AAAA"}, s.Photos())
		assert.Equal(t, "data:image/jpeg;base64,AAAA", s.MainPhotoURL())
	})
}
