package pagination

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPerPage = 30
	MaxPerPage     = 2048
)

// Params holds page-number pagination parameters extracted from a request.
type Params struct {
	Page    int
	PerPage int
}

// FromContext extracts pagination parameters from the echo context.
func FromContext(c echo.Context) Params {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))
	return New(page, perPage)
}

// New clamps raw values into valid Params: page is at least 1, a missing
// per_page falls back to the default and the rest is clamped to
// [1, MaxPerPage].
func New(page, perPage int) Params {
	if page < 1 {
		page = 1
	}
	if perPage == 0 {
		perPage = DefaultPerPage
	}
	if perPage < 1 {
		perPage = 1
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Params{Page: page, PerPage: perPage}
}

// Offset returns the row offset of the first item on the page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Meta describes where a page sits within the full result set.
type Meta struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewMeta computes page metadata for a total row count.
func NewMeta(p Params, total int) Meta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + p.PerPage - 1) / p.PerPage
	}
	return Meta{
		Page:       p.Page,
		PerPage:    p.PerPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}

// Response wraps a paginated API response body.
type Response struct {
	Items      interface{} `json:"items"`
	Pagination Meta        `json:"pagination"`
}

func NewResponse(items interface{}, p Params, total int) *Response {
	return &Response{Items: items, Pagination: NewMeta(p, total)}
}

// SetHeaders writes X-Total-Count and an RFC 5988 Link header carrying
// self/next/prev/first/last relations. Filter query params from the
// request are preserved in the generated links.
func SetHeaders(c echo.Context, m Meta) {
	req := c.Request()
	path := req.URL.Path
	query := req.URL.Query()

	link := func(page int, rel string) string {
		q := url.Values{}
		for k, vs := range query {
			if k == "page" || k == "per_page" {
				continue
			}
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(m.PerPage))
		return fmt.Sprintf("<%s?%s>; rel=%q", path, q.Encode(), rel)
	}

	links := []string{link(m.Page, "self")}
	if m.HasNext {
		links = append(links, link(m.Page+1, "next"))
	}
	if m.HasPrev {
		links = append(links, link(m.Page-1, "prev"), link(1, "first"))
	}
	if m.HasNext {
		links = append(links, link(m.TotalPages, "last"))
	}

	h := c.Response().Header()
	h.Set("X-Total-Count", strconv.Itoa(m.Total))
	h.Set("Link", strings.Join(links, ", "))
}
