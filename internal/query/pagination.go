package query

import (
	"net/url"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page is the requested window.
type Page struct {
	Page  int
	Limit int
}

// ParsePage reads page/limit, clamping to sane values: page is at least 1 and
// a missing, malformed or non-positive limit becomes the default.
func ParsePage(values url.Values) Page {
	p := Page{Page: DefaultPage, Limit: DefaultLimit}

	if n, err := strconv.Atoi(values.Get("page")); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(values.Get("limit")); err == nil && n > 0 {
		p.Limit = n
	}

	return p
}

// Offset is the number of records skipped before the window.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination is the response envelope accompanying a windowed result.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// Result assembles the envelope for a total match count. Pages is
// ceil(total/limit), zero when nothing matched.
func (p Page) Result(total int64) Pagination {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Pagination{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: pages,
	}
}
