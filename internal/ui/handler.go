// Package ui serves the demo table browser: an index of registered tables,
// a page per table with sorting, filtering, and pagination, and CSV/JSON
// export endpoints.
package ui

import (
	"log/slog"
	"net/http"

	gomponents "maragu.dev/gomponents"

	"carpenter"
)

type Handler struct {
	Tables *carpenter.Carpenter
	Logger *slog.Logger
	// SecureCookies marks session cookies Secure; enable in production.
	SecureCookies bool
}

func NewHandler(tables *carpenter.Carpenter, logger *slog.Logger, secureCookies bool) *Handler {
	return &Handler{Tables: tables, Logger: logger, SecureCookies: secureCookies}
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}
