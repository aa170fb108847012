package projector

import "slices"

// BuildPatch computes the minimal set of backend-key changes for a save.
// Field values map field keys to submitted form text; a missing key means
// the field was not part of the form. Toggle states always stage: toggles
// carry no dirty bit, they simply report where they ended up. A toggle key
// the caller did not submit stages at its open-time snapshot, never at the
// zero value.
//
// The patch obeys the closed-schema rule: it never introduces a key the
// source record does not already have. An empty patch means "no changes";
// callers must not issue a write for it.
func (s *Session) BuildPatch(values map[string]string, toggles map[string]bool) Patch {
	staged := map[string]any{}

	for _, group := range s.schema {
		for _, spec := range group.Fields {
			raw, ok := values[spec.Key]
			if !ok {
				continue
			}
			st := s.fields[spec.Key]
			if raw == st.display {
				// unchanged relative to what the form was prefilled
				// with; display-only transforms (city stripping) must
				// not leak into a write
				continue
			}
			if raw == "" {
				staged[st.binding.Key] = nil
			} else {
				staged[st.binding.Key] = raw
			}
		}
		for _, spec := range group.Toggles {
			state, ok := toggles[spec.Key]
			if !ok {
				state = s.toggles[spec.Key]
			}
			staged[spec.Key] = state
		}
	}

	patch := Patch{}
	for key, v := range staged {
		if _, ok := s.source[key]; ok {
			patch[key] = v
		}
	}

	if s.photosMeta.Key != "" && !slices.Equal(s.originalPhotos, s.photos) {
		if _, ok := s.source[s.photosMeta.Key]; ok {
			patch[s.photosMeta.Key] = Serialize(s.photosMeta, s.photos)
		}
	}

	if s.main.Key != "" {
		if scalarString(s.main.Value) != s.mainURL {
			patch[s.main.Key] = s.mainURL
		}
	}

	// An index pointer cannot be trusted after the editor reshuffles the
	// list by URL, so it is only ever staged to clear it.
	if s.main.IndexKey != "" && s.mainURL == "" && s.main.Index != nil {
		patch[s.main.IndexKey] = nil
	}

	return patch
}
