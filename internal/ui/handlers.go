package ui

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"carpenter/domain"
	"carpenter/session"
	"carpenter/table"
	"carpenter/view"
)

// Home lists every registered table.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	names := h.Tables.Names()
	sort.Strings(names)

	items := make([]gomponents.Node, 0, len(names))
	for _, name := range names {
		items = append(items, html.Li(
			html.A(html.Href("/tables/"+name), gomponents.Text(name)),
			gomponents.Text(" "),
			html.A(html.Href("/tables/"+name+"/export"), html.Class("muted"), gomponents.Text("csv")),
		))
	}

	body := html.Div(html.Class("card"), html.Ul(gomponents.Group(items)))
	if len(names) == 0 {
		body = html.Div(html.Class("card"),
			html.P(html.Class("muted"), gomponents.Text("No tables registered.")))
	}
	renderHTML(w, http.StatusOK, appPage("Tables", body))
}

// TablePage renders one table, applying sort/filter/page query parameters
// to its session state first.
func (h *Handler) TablePage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "tableName")
	ctx := r.Context()

	tbl, err := h.Tables.Get(ctx, name, h.useCookieSession(w, r), h.applyQuery(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	tbl.UseView(view.NewHTML(view.HTMLBasePath("/tables/" + name)))

	var buf bytes.Buffer
	if err := tbl.Render(ctx, &buf); err != nil {
		h.renderError(w, r, err)
		return
	}

	renderHTML(w, http.StatusOK, appPage(name,
		html.Div(html.Class("card"),
			html.A(html.Href("/tables/"+name+"/export"), gomponents.Text("Export CSV")),
			gomponents.Text(" · "),
			html.A(html.Href("/tables/"+name+"/export?format=json"), gomponents.Text("Export JSON")),
		),
		gomponents.Raw(buf.String()),
	))
}

// Export streams the current page of a table as CSV (default) or JSON.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "tableName")
	ctx := r.Context()

	tbl, err := h.Tables.Get(ctx, name, h.useCookieSession(w, r), h.applyQuery(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "csv":
		tbl.UseView(view.CSV{})
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
	case "json":
		tbl.UseView(view.JSON{})
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	default:
		http.Error(w, "unsupported format", http.StatusBadRequest)
		return
	}

	if err := tbl.Render(ctx, w); err != nil {
		h.Logger.Error("export failed", "table", name, "error", err)
	}
}

// useCookieSession swaps the configured session driver for a cookie one
// bound to this request, so each visitor keeps their own sort and filter
// state.
func (h *Handler) useCookieSession(w http.ResponseWriter, r *http.Request) func(t *table.Table) error {
	return func(t *table.Table) error {
		opts := []session.CookieOption{}
		if h.SecureCookies {
			opts = append(opts, session.Secure())
		}
		t.UseSession(session.NewCookie(w, r, opts...))
		return nil
	}
}

// applyQuery turns sort/dir/page/f_<column> query parameters into a
// session-state update on the freshly built table.
func (h *Handler) applyQuery(r *http.Request) func(t *table.Table) error {
	return func(t *table.Table) error {
		q := r.URL.Query()
		if len(q) == 0 {
			return nil
		}
		return t.UpdateState(r.Context(), func(s *domain.State) {
			if sortKey := q.Get("sort"); sortKey != "" {
				s.Sort = sortKey
				s.Dir = domain.SortDirection(q.Get("dir")).Normalize()
				s.Page = 1
			}
			if raw := q.Get("page"); raw != "" {
				if page, err := strconv.Atoi(raw); err == nil && page > 0 {
					s.Page = page
				}
			}
			for key, values := range q {
				if col, ok := strings.CutPrefix(key, "f_"); ok && len(values) > 0 {
					s.SetFilter(col, values[0])
					s.Page = 1
				}
			}
		})
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	var unknown *domain.UnknownTableError
	var validation *domain.ValidationError
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &unknown):
		status = http.StatusNotFound
	case errors.As(err, &validation):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		h.Logger.Error("table request failed", "path", r.URL.Path, "error", err)
	}
	renderHTML(w, status, appPage("Error",
		html.Div(html.Class("card"), html.P(gomponents.Text(err.Error()))),
	))
}
