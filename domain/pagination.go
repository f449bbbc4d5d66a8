package domain

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

// DefaultPageSize is the page size used when a table declares none.
const DefaultPageSize = 25

// MaxPageSize is the maximum allowed page size.
const MaxPageSize = 1000

// PageLink is one navigable page reference produced by a paginator.
type PageLink struct {
	Page   int    `json:"page"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// PageInfo is the pagination metadata a paginator driver derives from the
// total record count, the page size, and the current page. Views consume it
// as-is; which fields are populated depends on the driver (numbered links
// vs. opaque next-page tokens).
type PageInfo struct {
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalRows  int64      `json:"total_rows"`
	TotalPages int        `json:"total_pages"`
	HasPrev    bool       `json:"has_prev"`
	HasNext    bool       `json:"has_next"`
	Links      []PageLink `json:"links,omitempty"`
	NextToken  string     `json:"next_token,omitempty"`
}

// ClampPageSize returns size bounded to [1, MaxPageSize], substituting
// DefaultPageSize for non-positive values.
func ClampPageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// EncodePageToken creates an opaque page token from an offset.
// Returns the empty string for offset <= 0.
func EncodePageToken(offset int) string {
	if offset <= 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

// DecodePageToken decodes a page token back into an offset.
// Empty or malformed tokens decode to 0.
func DecodePageToken(token string) int {
	if token == "" {
		return 0
	}
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0
	}
	offset, err := strconv.Atoi(string(decoded))
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

// NextPageToken calculates the token for the page after the given
// offset/limit window, or the empty string when no rows remain.
func NextPageToken(offset, limit int, total int64) string {
	next := offset + limit
	if int64(next) >= total {
		return ""
	}
	return EncodePageToken(next)
}

// TotalPages computes the page count for a total row count and page size.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	pages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		pages++
	}
	if pages > int64(^uint(0)>>1) {
		return int(^uint(0) >> 1)
	}
	return int(pages)
}

// String implements fmt.Stringer for log output.
func (p PageInfo) String() string {
	return fmt.Sprintf("page %d/%d (%d rows)", p.Page, p.TotalPages, p.TotalRows)
}
