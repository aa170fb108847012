package httpapi

import (
	"net/http"

	"github.com/go-chi/render"
)

func errJSON(w http.ResponseWriter, req *http.Request, status int, code, detail string) {
	render.Status(req, status)
	render.JSON(w, req, map[string]any{"error": code, "detail": detail})
}
