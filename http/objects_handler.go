package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/yourorg/listing-console/internal/cache"
	"github.com/yourorg/listing-console/internal/contracts"
	"github.com/yourorg/listing-console/internal/events"
	"github.com/yourorg/listing-console/internal/store"
	"github.com/yourorg/listing-console/listing"
)

type ObjectsDeps struct {
	Store     *store.Store
	Cache     *cache.Cache
	Pub       events.Publisher
	Log       *zap.Logger
	ListLimit int
}

// objectItem is one entry of the list/get responses: the raw backend
// payload untouched, with resolved metadata and the card summary alongside.
type objectItem struct {
	ID      string          `json:"id"`
	Raw     map[string]any  `json:"raw"`
	Meta    objectMeta      `json:"meta"`
	Summary listing.Summary `json:"summary"`
}

type objectMeta struct {
	Status   string `json:"status"`
	DealType string `json:"deal_type"`
}

func RegisterObjects(r chi.Router, d ObjectsDeps) {
	r.Route("/api/objects", func(r chi.Router) {
		r.Get("/", d.list)
		r.Post("/", d.create)
		r.Get("/{id}", d.get)
		r.Patch("/{id}", d.patch)
		r.Delete("/{id}", d.del)
	})
}

func (d ObjectsDeps) list(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	limit := d.ListLimit
	if v := q.Get("limit"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			limit = i
		}
	}
	records, err := d.Store.List(req.Context(), limit)
	if err != nil {
		errJSON(w, req, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	query := q.Get("q")
	filter := q.Get("filter")
	items := make([]objectItem, 0, len(records))
	for _, rec := range records {
		item, err := toItem(rec)
		if err != nil {
			d.Log.Warn("skipping undecodable object", zap.String("id", rec.ID), zap.Error(err))
			continue
		}
		if !matchesFilter(filter, item.Meta.Status) {
			continue
		}
		if !listing.MatchesQuery(item.ID, item.Raw, query) {
			continue
		}
		items = append(items, item)
	}
	render.JSON(w, req, map[string]any{"ok": true, "count": len(items), "items": items})
}

// matchesFilter implements the console's status tabs: published shows
// active listings, rejected shows rejected, other is the rest. No filter
// shows everything.
func matchesFilter(filter, status string) bool {
	switch filter {
	case "":
		return true
	case "published":
		return status == listing.StatusActive
	case "rejected":
		return status == listing.StatusRejected
	default:
		return status != listing.StatusActive && status != listing.StatusRejected
	}
}

func (d ObjectsDeps) get(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")
	if v, ok := d.Cache.Get(cache.ObjectKey(id)); ok {
		if item, ok := v.(objectItem); ok {
			render.JSON(w, req, item)
			return
		}
	}
	rec, err := d.Store.Get(req.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		errJSON(w, req, http.StatusNotFound, "not_found", "object "+id+" not found")
		return
	}
	if err != nil {
		errJSON(w, req, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	item, err := toItem(rec)
	if err != nil {
		errJSON(w, req, http.StatusInternalServerError, "decode_error", err.Error())
		return
	}
	d.Cache.Set(cache.ObjectKey(id), item)
	render.JSON(w, req, item)
}

type createRequest struct {
	ID      string         `json:"id"`
	OwnerID string         `json:"owner_id"`
	Raw     map[string]any `json:"raw"`
}

func (d ObjectsDeps) create(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(io.LimitReader(req.Body, 4<<20))
	if err != nil {
		errJSON(w, req, http.StatusBadRequest, "read_error", err.Error())
		return
	}
	if err := contracts.ValidateListingCreate(body); err != nil {
		errJSON(w, req, http.StatusBadRequest, "invalid_payload", err.Error())
		return
	}
	var in createRequest
	if err := json.Unmarshal(body, &in); err != nil {
		errJSON(w, req, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	raw, err := json.Marshal(in.Raw)
	if err != nil {
		errJSON(w, req, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	status := listing.ResolveStatus(in.Raw)
	dealType := listing.ResolveDealType(in.Raw)
	if err := d.Store.Create(req.Context(), in.ID, in.OwnerID, raw, status, dealType); err != nil {
		errJSON(w, req, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	d.Pub.PublishListingUpdated(req.Context(), events.ListingUpdated{ObjectID: in.ID, Status: status})
	render.Status(req, http.StatusCreated)
	render.JSON(w, req, map[string]any{"ok": true, "id": in.ID, "status": status})
}

func (d ObjectsDeps) patch(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")
	var patch map[string]any
	if err := json.NewDecoder(req.Body).Decode(&patch); err != nil {
		errJSON(w, req, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if len(patch) == 0 {
		// no changes, no write
		rec, err := d.Store.Get(req.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			errJSON(w, req, http.StatusNotFound, "not_found", "object "+id+" not found")
			return
		}
		if err != nil {
			errJSON(w, req, http.StatusInternalServerError, "store_error", err.Error())
			return
		}
		writeRaw(w, req, rec.Raw)
		return
	}

	payload, err := json.Marshal(patch)
	if err != nil {
		errJSON(w, req, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	merged, err := d.applyPatch(w, req, id, payload)
	if err != nil {
		return // response already written
	}
	writeRaw(w, req, merged)
}

// applyPatch merges the patch, recomputes derived status columns,
// invalidates the cache entry and publishes the update. On error it writes
// the HTTP response itself and returns a non-nil error as a signal.
func (d ObjectsDeps) applyPatch(w http.ResponseWriter, req *http.Request, id string, patch []byte) ([]byte, error) {
	merged, err := d.Store.ApplyPatch(req.Context(), id, patch)
	if errors.Is(err, store.ErrNotFound) {
		errJSON(w, req, http.StatusNotFound, "not_found", "object "+id+" not found")
		return nil, err
	}
	if err != nil {
		errJSON(w, req, http.StatusInternalServerError, "store_error", err.Error())
		return nil, err
	}
	var rec map[string]any
	if err := json.Unmarshal(merged, &rec); err != nil {
		errJSON(w, req, http.StatusInternalServerError, "decode_error", err.Error())
		return nil, err
	}
	status := listing.ResolveStatus(rec)
	dealType := listing.ResolveDealType(rec)
	if err := d.Store.SetStatus(req.Context(), id, status, dealType); err != nil {
		errJSON(w, req, http.StatusInternalServerError, "store_error", err.Error())
		return nil, err
	}
	d.Cache.Invalidate(cache.ObjectKey(id))
	d.Pub.PublishListingUpdated(req.Context(), events.ListingUpdated{ObjectID: id, Status: status})
	return merged, nil
}

func (d ObjectsDeps) del(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")
	err := d.Store.Delete(req.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		errJSON(w, req, http.StatusNotFound, "not_found", "object "+id+" not found")
		return
	}
	if err != nil {
		errJSON(w, req, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	d.Cache.Invalidate(cache.ObjectKey(id))
	render.JSON(w, req, map[string]any{"ok": true})
}

func toItem(rec store.ObjectRecord) (objectItem, error) {
	raw := map[string]any{}
	if len(rec.Raw) > 0 {
		if err := json.Unmarshal(rec.Raw, &raw); err != nil {
			return objectItem{}, err
		}
	}
	return objectItem{
		ID:      rec.ID,
		Raw:     raw,
		Meta:    objectMeta{Status: rec.Status, DealType: rec.DealType},
		Summary: listing.Summarize(rec.ID, raw),
	}, nil
}

// writeRaw sends a stored JSON payload through unchanged; the saved editor
// reads the updated record straight out of the PATCH response.
func writeRaw(w http.ResponseWriter, _ *http.Request, raw []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(raw)
}
