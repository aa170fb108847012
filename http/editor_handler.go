package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/yourorg/listing-console/internal/store"
	"github.com/yourorg/listing-console/projector"
)

// RegisterEditor exposes the record projector over HTTP: GET opens an
// editing session and returns the display-ready projection, POST submits
// the form state and applies the computed minimal patch.
func RegisterEditor(r chi.Router, d ObjectsDeps) {
	r.Get("/api/objects/{id}/editor", d.editorShow)
	r.Post("/api/objects/{id}/editor", d.editorSave)
}

func (d ObjectsDeps) editorShow(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")
	rec, ok := d.loadRecord(w, req, id)
	if !ok {
		return
	}
	sess := projector.Open(rec, projector.DefaultSchema())
	render.JSON(w, req, map[string]any{
		"ok":           true,
		"id":           id,
		"groups":       sess.Projection(),
		"photos":       sess.PhotosMeta(),
		"mainPhotoUrl": sess.MainPhotoURL(),
	})
}

type editorSaveRequest struct {
	Values  map[string]string `json:"values"`
	Toggles map[string]bool   `json:"toggles"`
	// Photos and MainPhotoURL are pointers so "not touched" and "cleared"
	// stay distinguishable.
	Photos       *[]string `json:"photos"`
	MainPhotoURL *string   `json:"mainPhotoUrl"`
}

func (d ObjectsDeps) editorSave(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")
	var body editorSaveRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		errJSON(w, req, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	rec, ok := d.loadRecord(w, req, id)
	if !ok {
		return
	}

	sess := projector.Open(rec, projector.DefaultSchema())
	if body.Photos != nil {
		sess.SetPhotos(*body.Photos)
	}
	if body.MainPhotoURL != nil {
		sess.SetMainPhotoURL(*body.MainPhotoURL)
	}
	patch := sess.BuildPatch(body.Values, body.Toggles)
	if len(patch) == 0 {
		// nothing changed: no store write at all
		render.JSON(w, req, map[string]any{"ok": true, "changed": false})
		return
	}

	payload, err := json.Marshal(patch)
	if err != nil {
		errJSON(w, req, http.StatusInternalServerError, "encode_error", err.Error())
		return
	}
	merged, err := d.applyPatch(w, req, id, payload)
	if err != nil {
		return
	}
	var updated map[string]any
	if err := json.Unmarshal(merged, &updated); err != nil {
		errJSON(w, req, http.StatusInternalServerError, "decode_error", err.Error())
		return
	}
	render.JSON(w, req, map[string]any{"ok": true, "changed": true, "raw": updated})
}

func (d ObjectsDeps) loadRecord(w http.ResponseWriter, req *http.Request, id string) (projector.Record, bool) {
	rec, err := d.Store.Get(req.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		errJSON(w, req, http.StatusNotFound, "not_found", "object "+id+" not found")
		return nil, false
	}
	if err != nil {
		errJSON(w, req, http.StatusInternalServerError, "store_error", err.Error())
		return nil, false
	}
	out := projector.Record{}
	if len(rec.Raw) > 0 {
		if err := json.Unmarshal(rec.Raw, &out); err != nil {
			errJSON(w, req, http.StatusInternalServerError, "decode_error", err.Error())
			return nil, false
		}
	}
	return out, true
}
