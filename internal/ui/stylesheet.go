package ui

import "net/http"

const appCSS = `
:root { --border: #d7d2c8; --accent: #7a5c3e; --muted: #6f6a60; }
* { box-sizing: border-box; }
body { margin: 0; font-family: system-ui, sans-serif; background: #f6f4ef; color: #2a2620; }
.layout { max-width: 960px; margin: 0 auto; padding: 1.5rem; }
.topbar { display: flex; justify-content: space-between; align-items: baseline; }
.nav a { margin-left: 1rem; color: var(--accent); text-decoration: none; }
.page-title { font-size: 1.4rem; margin: 1rem 0; }
.card { background: #fff; border: 1px solid var(--border); border-radius: 6px; padding: 1rem; margin-bottom: 1rem; }
.table-wrap { overflow-x: auto; padding: 0; }
table { width: 100%; border-collapse: collapse; }
th, td { text-align: left; padding: 0.5rem 0.75rem; border-bottom: 1px solid var(--border); }
th a { color: var(--accent); text-decoration: none; }
.muted { color: var(--muted); font-size: 0.85rem; }
.pagination { display: flex; gap: 0.4rem; }
.page-link { padding: 0.2rem 0.6rem; border: 1px solid var(--border); border-radius: 4px; color: var(--accent); text-decoration: none; }
.page-link.active { background: var(--accent); color: #fff; }
input[type="text"] { padding: 0.4rem; border: 1px solid var(--border); border-radius: 4px; width: 100%; }
`

func (h *Handler) Stylesheet(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(appCSS))
}
