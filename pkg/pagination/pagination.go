package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	// WindowSize is the maximum number of numbered page buttons a client renders.
	WindowSize = 5
)

// Params holds pagination parameters extracted from a request. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// FromContext extracts pagination parameters from the echo context.
func FromContext(c echo.Context) Params {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

// Offset returns the SQL offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is one page of records plus the counters a list view needs.
type Page struct {
	Items      interface{} `json:"items"`
	TotalCount int         `json:"totalCount"`
	Page       int         `json:"page"`
}

// Response is the envelope every list endpoint returns. Clients parse it at
// the gateway boundary instead of duck-typing per call site.
type Response struct {
	Data Page `json:"data"`
}

func NewResponse(items interface{}, totalCount, page int) *Response {
	return &Response{Data: Page{Items: items, TotalCount: totalCount, Page: page}}
}

// TotalPages returns ceil(totalCount / limit). Zero records is zero pages.
func TotalPages(totalCount, limit int) int {
	if totalCount <= 0 || limit <= 0 {
		return 0
	}
	return (totalCount + limit - 1) / limit
}

// Window returns the page numbers to render as buttons: at most WindowSize,
// all pages when totalPages <= WindowSize, otherwise a window centered on
// currentPage and clamped to [1, totalPages].
func Window(totalPages, currentPage int) []int {
	if totalPages <= 0 {
		return nil
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}

	size := WindowSize
	if totalPages < size {
		size = totalPages
	}

	start := currentPage - size/2
	if start < 1 {
		start = 1
	}
	if start+size-1 > totalPages {
		start = totalPages - size + 1
	}

	pages := make([]int, size)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}
