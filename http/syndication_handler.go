package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/yourorg/listing-console/internal/statussync"
)

type SyndicationDeps struct {
	Syncer *statussync.Syncer
}

func RegisterSyndication(r chi.Router, d SyndicationDeps) {
	r.Get("/api/cian/order-report", d.orderReport)
}

// orderReport serves the provider's order report, normally out of the redis
// cache. When another instance is mid-fetch the client gets a 202 and is
// expected to retry.
func (d SyndicationDeps) orderReport(w http.ResponseWriter, req *http.Request) {
	if d.Syncer == nil {
		errJSON(w, req, http.StatusServiceUnavailable, "sync_disabled", "syndication is not configured")
		return
	}
	raw, err := d.Syncer.Report(req.Context())
	if errors.Is(err, statussync.ErrSyncInProgress) {
		render.Status(req, http.StatusAccepted)
		render.JSON(w, req, map[string]any{"ok": false, "status": "in_progress"})
		return
	}
	if err != nil {
		errJSON(w, req, http.StatusBadGateway, "upstream_error", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(raw)
}
