package paginate

import (
	"fmt"
	"strings"

	"carpenter/domain"
	"carpenter/table"
)

// linkWindow is how many numbered links appear on each side of the current
// page.
const linkWindow = 2

// Offset is a paginator driver producing numbered page links around the
// current page.
type Offset struct {
	baseURL   string
	pageParam string
}

var _ table.Paginator = (*Offset)(nil)

// OffsetOption configures the offset paginator.
type OffsetOption func(*Offset)

// WithBaseURL sets the URL links are built on (query parameters appended).
func WithBaseURL(u string) OffsetOption {
	return func(o *Offset) { o.baseURL = u }
}

// WithPageParam sets the query parameter carrying the page number
// (default "page").
func WithPageParam(name string) OffsetOption {
	return func(o *Offset) {
		if name != "" {
			o.pageParam = name
		}
	}
}

// NewOffset creates an offset paginator.
func NewOffset(opts ...OffsetOption) *Offset {
	o := &Offset{pageParam: "page"}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Offset) Paginate(total int64, pageSize, page int) (domain.PageInfo, error) {
	if pageSize <= 0 {
		return domain.PageInfo{}, domain.ErrValidation("page size must be positive, got %d", pageSize)
	}
	if page < 1 {
		page = 1
	}
	totalPages := domain.TotalPages(total, pageSize)

	info := domain.PageInfo{
		Page:       page,
		PageSize:   pageSize,
		TotalRows:  total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}

	first := page - linkWindow
	if first < 1 {
		first = 1
	}
	last := page + linkWindow
	if last > totalPages {
		last = totalPages
	}
	for p := first; p <= last; p++ {
		info.Links = append(info.Links, domain.PageLink{
			Page:   p,
			URL:    o.pageURL(p),
			Active: p == page,
		})
	}
	return info, nil
}

func (o *Offset) pageURL(page int) string {
	sep := "?"
	if strings.Contains(o.baseURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s%s=%d", o.baseURL, sep, o.pageParam, page)
}

// Token is a paginator driver producing opaque next-page tokens instead of
// numbered links, for API-style consumers.
type Token struct{}

var _ table.Paginator = Token{}

func (Token) Paginate(total int64, pageSize, page int) (domain.PageInfo, error) {
	if pageSize <= 0 {
		return domain.PageInfo{}, domain.ErrValidation("page size must be positive, got %d", pageSize)
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	next := domain.NextPageToken(offset, pageSize, total)
	return domain.PageInfo{
		Page:       page,
		PageSize:   pageSize,
		TotalRows:  total,
		TotalPages: domain.TotalPages(total, pageSize),
		HasPrev:    page > 1,
		HasNext:    next != "",
		NextToken:  next,
	}, nil
}
