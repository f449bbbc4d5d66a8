package view

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	gomponents "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	html "maragu.dev/gomponents/html"

	"carpenter/domain"
	"carpenter/table"
)

// HTML renders a table as an HTML fragment: a quick-filter card, the table
// itself with sortable header links, and a pagination card. The fragment
// is meant to be embedded in a page shell by the caller.
type HTML struct {
	basePath string
}

var _ table.View = (*HTML)(nil)

// HTMLOption configures the HTML view.
type HTMLOption func(*HTML)

// HTMLBasePath sets the path sort and page links point at (usually the
// page currently showing the table).
func HTMLBasePath(p string) HTMLOption {
	return func(v *HTML) { v.basePath = p }
}

// NewHTML creates an HTML view.
func NewHTML(opts ...HTMLOption) *HTML {
	v := &HTML{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *HTML) Render(_ context.Context, w io.Writer, t *table.Table) error {
	columns := t.VisibleColumns()
	state := t.State()

	headers := make([]gomponents.Node, 0, len(columns))
	for _, col := range columns {
		headers = append(headers, v.header(col, state))
	}

	rows := make([]gomponents.Node, 0, len(t.Rows()))
	for _, row := range t.Rows() {
		rows = append(rows, rowNode(row, columns))
	}

	fragment := html.Div(
		data.Signals(map[string]any{"q": ""}),
		html.Div(
			html.Class("card"),
			html.Label(gomponents.Text("Quick filter")),
			html.Input(html.Type("text"), data.Bind("q"), html.Placeholder("Filter visible rows")),
		),
		html.Div(
			html.Class("card table-wrap"),
			html.Table(
				html.THead(html.Tr(gomponents.Group(headers))),
				html.TBody(gomponents.Group(rows)),
			),
		),
		v.paginationCard(t.PageInfo()),
	)
	return fragment.Render(w)
}

func (v *HTML) header(col *table.Column, state domain.State) gomponents.Node {
	if !col.Sortable() {
		return html.Th(gomponents.Text(col.Label()))
	}

	dir := domain.SortAsc
	marker := ""
	if state.Sort == col.Key() {
		if state.Dir == domain.SortAsc {
			dir = domain.SortDesc
			marker = " ^"
		} else {
			marker = " v"
		}
	}
	href := fmt.Sprintf("%s?sort=%s&dir=%s", v.basePath, col.Key(), dir)
	return html.Th(html.A(html.Href(href), gomponents.Text(col.Label()+marker)))
}

func rowNode(row *table.Row, columns []*table.Column) gomponents.Node {
	cells := make([]gomponents.Node, 0, len(columns))

	var searchable []string
	for _, col := range columns {
		text := ""
		if cell, ok := row.Cell(col.Key()); ok {
			text = table.FormatValue(cell.Value())
		}
		searchable = append(searchable, text)
		cells = append(cells, html.Td(gomponents.Text(text)))
	}

	return html.Tr(
		data.Show(containsExpr(strings.Join(searchable, " "))),
		gomponents.Group(cells),
	)
}

// containsExpr builds the datastar expression that hides rows not matching
// the quick-filter signal.
func containsExpr(value string) string {
	lower := strings.ToLower(value)
	return "$q === '' || " + strconv.Quote(lower) + ".includes($q.toLowerCase())"
}

func (v *HTML) paginationCard(page domain.PageInfo) gomponents.Node {
	if page.TotalPages <= 1 {
		return html.Div(
			html.Class("card"),
			html.P(html.Class("muted"),
				gomponents.Text(fmt.Sprintf("%d entries.", page.TotalRows))),
		)
	}

	links := make([]gomponents.Node, 0, len(page.Links))
	for _, link := range page.Links {
		className := "page-link"
		if link.Active {
			className = "page-link active"
		}
		links = append(links, html.A(
			html.Href(link.URL),
			html.Class(className),
			gomponents.Text(strconv.Itoa(link.Page)),
		))
	}

	return html.Div(
		html.Class("card"),
		html.P(html.Class("muted"), gomponents.Text(fmt.Sprintf(
			"Page %d of %d (%d entries).", page.Page, page.TotalPages, page.TotalRows))),
		html.Nav(html.Class("pagination"), gomponents.Group(links)),
	)
}
