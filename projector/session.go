package projector

import (
	"errors"
	"maps"
	"slices"
)

// ErrIndexOutOfRange is returned by photo operations referencing an index
// the current photo list does not have. Stale indices (a menu action firing
// after a removal) are a caller bug and fail loudly instead of silently
// reshuffling the wrong photo.
var ErrIndexOutOfRange = errors.New("photo index out of range")

type fieldState struct {
	spec    FieldSpec
	binding Binding
	display string
}

// Session holds one record's editing state. Bindings, photos and toggle
// snapshots are computed once at open against a snapshot of the record and
// stay stable for the session's lifetime, even if the underlying record is
// mutated elsewhere.
type Session struct {
	source Record
	schema []Group
	fields map[string]fieldState

	photosMeta     PhotoCollection
	originalPhotos []string
	photos         []string

	main    MainPhotoBinding
	mainURL string

	toggles map[string]bool
}

// Open resolves every field binding, extracts the photo collection and
// snapshots toggle state for one editing session.
func Open(rec Record, schema []Group) *Session {
	s := &Session{
		source:  maps.Clone(rec),
		schema:  schema,
		fields:  map[string]fieldState{},
		toggles: map[string]bool{},
	}
	if s.source == nil {
		s.source = Record{}
	}
	for _, group := range schema {
		for _, spec := range group.Fields {
			binding := ResolveBinding(spec, s.source)
			s.fields[spec.Key] = fieldState{
				spec:    spec,
				binding: binding,
				display: FormatForDisplay(binding.Value, spec),
			}
		}
		for _, spec := range group.Toggles {
			s.toggles[spec.Key] = ParseBool(s.source[spec.Key])
		}
	}
	s.photosMeta = ExtractPhotos(s.source)
	s.originalPhotos = append([]string(nil), s.photosMeta.URLs...)
	s.photos = append([]string(nil), s.photosMeta.URLs...)
	s.main = ResolveMainPhotoBinding(s.source)
	s.mainURL = scalarString(s.main.Value)
	if s.mainURL == "" && len(s.photos) > 0 {
		s.mainURL = s.photos[0]
	}
	return s
}

// FieldView is one editor input, ready to render.
type FieldView struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	Kind       Kind   `json:"kind"`
	FullWidth  bool   `json:"fullWidth,omitempty"`
	BindingKey string `json:"binding"`
	Value      string `json:"value"`
}

// ToggleView is one boolean toggle with its prefilled state.
type ToggleView struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// GroupView is one accordion section of the rendered editor.
type GroupView struct {
	Key         string       `json:"key"`
	Title       string       `json:"title"`
	Fields      []FieldView  `json:"fields,omitempty"`
	Toggles     []ToggleView `json:"toggles,omitempty"`
	Photos      bool         `json:"photos,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
}

// Projection renders the session as display-ready groups.
func (s *Session) Projection() []GroupView {
	out := make([]GroupView, 0, len(s.schema))
	for _, group := range s.schema {
		gv := GroupView{
			Key:         group.Key,
			Title:       group.Title,
			Photos:      group.Photos,
			Placeholder: group.Placeholder,
		}
		for _, spec := range group.Fields {
			st := s.fields[spec.Key]
			gv.Fields = append(gv.Fields, FieldView{
				Key:        spec.Key,
				Label:      spec.Label,
				Kind:       spec.Kind,
				FullWidth:  spec.FullWidth,
				BindingKey: st.binding.Key,
				Value:      st.display,
			})
		}
		for _, spec := range group.Toggles {
			gv.Toggles = append(gv.Toggles, ToggleView{
				Key:    spec.Key,
				Label:  spec.Label,
				Active: s.toggles[spec.Key],
			})
		}
		out = append(out, gv)
	}
	return out
}

// Photos returns the current ordered URL list.
func (s *Session) Photos() []string {
	return append([]string(nil), s.photos...)
}

// PhotosMeta returns the key and shape the photos were extracted from.
func (s *Session) PhotosMeta() PhotoCollection {
	return PhotoCollection{Key: s.photosMeta.Key, URLs: s.Photos(), Shape: s.photosMeta.Shape}
}

// MainPhotoURL returns the current designated main photo, "" when unset.
func (s *Session) MainPhotoURL() string { return s.mainURL }

// Toggles returns the current toggle states.
func (s *Session) Toggles() map[string]bool {
	return maps.Clone(s.toggles)
}

// BindingKey returns the backend key a field resolved to at open time.
func (s *Session) BindingKey(fieldKey string) string {
	if st, ok := s.fields[fieldKey]; ok {
		return st.binding.Key
	}
	return fieldKey
}

// AddPhoto appends a photo. Both http URLs and data URLs from device
// uploads are accepted; empty strings are ignored.
func (s *Session) AddPhoto(url string) {
	if url == "" {
		return
	}
	s.photos = append(s.photos, url)
	if s.mainURL == "" {
		s.mainURL = s.photos[0]
	}
}

// ReorderPhotos moves the photo at from before the photo currently at to.
func (s *Session) ReorderPhotos(from, to int) error {
	if from < 0 || to < 0 || from >= len(s.photos) || to >= len(s.photos) {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}
	moved := s.photos[from]
	s.photos = append(s.photos[:from], s.photos[from+1:]...)
	s.photos = slices.Insert(s.photos, to, moved)
	s.ensureMainPhoto()
	return nil
}

// RemovePhoto deletes the photo at index.
func (s *Session) RemovePhoto(index int) error {
	if index < 0 || index >= len(s.photos) {
		return ErrIndexOutOfRange
	}
	s.photos = append(s.photos[:index], s.photos[index+1:]...)
	s.ensureMainPhoto()
	return nil
}

// SetMainPhoto promotes the photo at index to the front and marks it main.
func (s *Session) SetMainPhoto(index int) error {
	if index < 0 || index >= len(s.photos) {
		return ErrIndexOutOfRange
	}
	selected := s.photos[index]
	s.photos = append(s.photos[:index], s.photos[index+1:]...)
	s.photos = slices.Insert(s.photos, 0, selected)
	s.mainURL = s.photos[0]
	return nil
}

// SetPhotos replaces the whole list, for callers that kept the ordering
// client-side and submit it in one piece.
func (s *Session) SetPhotos(urls []string) {
	s.photos = append([]string(nil), urls...)
	s.ensureMainPhoto()
}

// SetMainPhotoURL sets the designated main photo directly.
func (s *Session) SetMainPhotoURL(url string) {
	s.mainURL = url
	s.ensureMainPhoto()
}

// ensureMainPhoto keeps the main photo pointing at a photo that still
// exists, falling back to the first one.
func (s *Session) ensureMainPhoto() {
	if s.mainURL != "" && !slices.Contains(s.photos, s.mainURL) {
		if len(s.photos) > 0 {
			s.mainURL = s.photos[0]
		} else {
			s.mainURL = ""
		}
	}
}
