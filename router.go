package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	httpapi "github.com/yourorg/listing-console/http"
	"github.com/yourorg/listing-console/internal/logger"
)

func BuildRouter(log *zap.Logger, objects httpapi.ObjectsDeps, synd httpapi.SyndicationDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(httprate.LimitByIP(100, 1*time.Minute))
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Use(logger.Middleware(log))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"ok":true}`)) })

	httpapi.RegisterObjects(r, objects)
	httpapi.RegisterEditor(r, objects)
	httpapi.RegisterSyndication(r, synd)

	return r
}
