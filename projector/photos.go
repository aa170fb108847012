package projector

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Shape tags how a record stored its photo collection. Serialization must
// hand the backend the same structural type it returned: a list stays a
// list, a newline-delimited string stays a string, an index-keyed object
// stays an object.
type Shape string

const (
	ShapeList      Shape = "list"
	ShapeDelimited Shape = "delimited-string"
	ShapeIndexMap  Shape = "index-map"
)

// maxPhotoDepth bounds recursive URL extraction so self-referential or
// deeply nested malformed payloads terminate with "no URL found" instead of
// looping.
const maxPhotoDepth = 3

// photoCollectionKeys are the known photo-bearing keys, in probe order.
var photoCollectionKeys = []string{
	"photos_json",
	"photos",
	"images",
	"gallery",
	"media",
	"photo_urls",
	"img_urls",
	"photos_links",
	"attachments",
}

var mainPhotoKeys = []string{
	"main_photo_url",
	"mainPhotoUrl",
	"main_photo",
	"photo_main",
	"cover",
	"cover_url",
}

var mainPhotoIndexKeys = []string{
	"main_photo_index",
	"mainPhotoIndex",
	"photo_main_index",
	"cover_index",
}

// thumbnailKeys is the wider probe list used for card thumbnails, covering
// both single-photo and collection keys.
var thumbnailKeys = []string{
	"main_photo_url", "main_photo", "mainPhotoUrl", "mainPhoto",
	"photo_main", "photo_main_url", "cover", "cover_url", "coverUrl",
	"photo", "photo_url", "photoUrl", "photo_link",
	"photos_links", "photosLinks", "photos_url", "photosUrls",
	"image", "image_url", "imageUrl", "image_urls",
	"img", "img_url", "imgUrl",
	"pictures", "media", "gallery", "slides", "attachments",
	"photos", "photos_json", "images",
}

// PhotoCollection is a record's photos flattened to an ordered URL list,
// plus the key and shape they were found under.
type PhotoCollection struct {
	Key   string   `json:"key"`
	URLs  []string `json:"urls"`
	Shape Shape    `json:"shape"`
}

// MainPhotoBinding locates a record's designated main photo. Key/Value hold
// a direct URL binding; IndexKey/Index hold an optional 1-based pointer
// into the photo collection. Either, both, or neither may be present.
type MainPhotoBinding struct {
	Key      string
	Value    any
	IndexKey string
	Index    any
}

// looksLikeURL is the URL acceptance rule used throughout: a trimmed string
// beginning with the literal prefix "http". Deliberately loose — it has to
// match whatever heterogeneous backends actually store, so no scheme or
// host validation.
func looksLikeURL(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "http")
}

// ExtractPhotos finds and flattens a record's photo data regardless of how
// the backend stored it. The first candidate key yielding at least one URL
// wins; a present-but-empty key is remembered as a fallback so the original
// key and shape survive even when nothing parses. Records without any photo
// key get an empty list-shaped collection under the default key.
func ExtractPhotos(rec Record) PhotoCollection {
	var fallback *PhotoCollection
	for _, key := range photoCollectionKeys {
		v, ok := rec[key]
		if !ok {
			continue
		}
		urls, shape := normalizePhotoValue(v, 0)
		col := PhotoCollection{Key: key, URLs: urls, Shape: shape}
		if len(urls) > 0 {
			return col
		}
		if fallback == nil {
			fallback = &col
		}
	}
	if fallback != nil {
		return *fallback
	}
	return PhotoCollection{Key: photoCollectionKeys[0], URLs: []string{}, Shape: ShapeList}
}

// normalizePhotoValue flattens one photo field value into URLs. Strings
// that look like JSON are decoded and re-normalized, so the shape tag
// reflects the value the URLs were actually read from: a JSON-encoded array
// serializes back as an array.
func normalizePhotoValue(v any, depth int) ([]string, Shape) {
	if depth > maxPhotoDepth {
		return []string{}, ShapeList
	}
	switch t := v.(type) {
	case []any:
		return flattenPhotoEntries(t), ShapeList
	case string:
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			return []string{}, ShapeDelimited
		}
		if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
			var parsed any
			if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
				return normalizePhotoValue(parsed, depth+1)
			}
			// unparseable JSON degrades to token scanning below
		}
		return splitURLTokens(trimmed), ShapeDelimited
	case map[string]any:
		return flattenPhotoEntries(sortedValues(t)), ShapeIndexMap
	default:
		return []string{}, ShapeList
	}
}

// flattenPhotoEntries accepts the element shapes seen in the wild: URL
// strings, objects exposing a .url string, and one extra level of nesting
// of either.
func flattenPhotoEntries(entries []any) []string {
	urls := []string{}
	for _, entry := range entries {
		switch e := entry.(type) {
		case string:
			if looksLikeURL(e) {
				urls = append(urls, strings.TrimSpace(e))
			}
		case map[string]any:
			if u, ok := e["url"].(string); ok && looksLikeURL(u) {
				urls = append(urls, strings.TrimSpace(u))
				continue
			}
			for _, nested := range sortedValues(e) {
				switch n := nested.(type) {
				case string:
					if looksLikeURL(n) {
						urls = append(urls, strings.TrimSpace(n))
					}
				case map[string]any:
					if u, ok := n["url"].(string); ok && looksLikeURL(u) {
						urls = append(urls, strings.TrimSpace(u))
					}
				}
			}
		}
	}
	return urls
}

// splitURLTokens scans a delimited string for URL-ish tokens. Non-URL noise
// is silently dropped and does not survive a round trip.
func splitURLTokens(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	urls := []string{}
	for _, f := range fields {
		f = strings.Trim(f, `"'`)
		if looksLikeURL(f) {
			urls = append(urls, f)
		}
	}
	return urls
}

// Serialize turns an edited URL list back into the backend value for the
// collection's original shape. Extracting and serializing an unmodified
// list reproduces the URL subset of the original value.
func Serialize(meta PhotoCollection, urls []string) any {
	if meta.Key == "" {
		return nil
	}
	switch meta.Shape {
	case ShapeDelimited:
		return strings.Join(urls, "\n")
	case ShapeIndexMap:
		out := make(map[string]any, len(urls))
		for i, u := range urls {
			out[strconv.Itoa(i)] = u
		}
		return out
	default:
		return append([]string(nil), urls...)
	}
}

// ResolveMainPhotoBinding probes the main-photo key names and, separately,
// the main-photo-index key names. The two are independent: a record may
// have neither, either, or both.
func ResolveMainPhotoBinding(rec Record) MainPhotoBinding {
	b := MainPhotoBinding{Value: ""}
	for _, key := range mainPhotoKeys {
		if v, ok := rec[key]; ok {
			b.Key, b.Value = key, v
			break
		}
	}
	for _, key := range mainPhotoIndexKeys {
		if v, ok := rec[key]; ok {
			b.IndexKey, b.Index = key, v
			break
		}
	}
	return b
}

// FirstPhotoURL picks a card thumbnail from whatever photo-ish key a record
// exposes, or returns "" when nothing resolves.
func FirstPhotoURL(rec Record) string {
	for _, key := range thumbnailKeys {
		if url := pickFirstURL(rec[key], 0); url != "" {
			return url
		}
	}
	return ""
}

func pickFirstURL(v any, depth int) string {
	if v == nil || depth > maxPhotoDepth {
		return ""
	}
	switch t := v.(type) {
	case string:
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			return ""
		}
		if strings.HasPrefix(trimmed, "http") {
			return trimmed
		}
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			var parsed any
			if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
				return pickFirstURL(parsed, depth+1)
			}
		}
		for _, chunk := range strings.Fields(trimmed) {
			if strings.HasPrefix(chunk, "http") {
				return chunk
			}
		}
		return ""
	case []any:
		for _, item := range t {
			if url := pickFirstURL(item, depth+1); url != "" {
				return url
			}
		}
		return ""
	case map[string]any:
		if u, ok := t["url"].(string); ok && strings.HasPrefix(u, "http") {
			return u
		}
		for _, item := range sortedValues(t) {
			if url := pickFirstURL(item, depth+1); url != "" {
				return url
			}
		}
		return ""
	default:
		return ""
	}
}
