// Package paging parses page/limit query parameters and builds the
// pagination block returned with list responses.
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/mediateam/internal/app/system/respond"
	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows in a page.
const PageSize = 20

// MaxPageSize caps client-supplied limits.
const MaxPageSize = 100

// Params is a parsed page request. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// Parse reads ?page= and ?limit= from the request, falling back to page 1
// and PageSize for missing or invalid values.
func Parse(r *http.Request) Params {
	p := Params{Page: 1, Limit: PageSize}
	if n, err := strconv.Atoi(query.Get(r, "page")); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(query.Get(r, "limit")); err == nil && n > 0 {
		p.Limit = min(n, MaxPageSize)
	}
	return p
}

// Skip returns the number of documents to skip for this page.
func (p Params) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// Limit64 returns Limit as int64 for options.Find().SetLimit.
func (p Params) Limit64() int64 { return int64(p.Limit) }

// Result builds the pagination block for a total document count.
func (p Params) Result(total int64) respond.Pagination {
	pages := int64(0)
	if p.Limit > 0 {
		pages = (total + int64(p.Limit) - 1) / int64(p.Limit)
	}
	return respond.Pagination{Page: p.Page, Limit: p.Limit, Total: total, Pages: pages}
}
