package ui

import (
	"github.com/go-chi/chi/v5"
)

func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/static/app.css", h.Stylesheet)
	r.Get("/", h.Home)
	r.Get("/tables/{tableName}", h.TablePage)
	r.Get("/tables/{tableName}/export", h.Export)
}
