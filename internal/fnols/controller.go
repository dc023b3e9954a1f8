// Package fnols derives the FNOL list and detail views from raw backend
// responses: pagination state, timeline ordering and cost/token rollups.
package fnols

import (
	"net/url"
	"strconv"

	"github.com/ecazzaniga/fnolwatch/internal/api"
	"github.com/ecazzaniga/fnolwatch/internal/query"
)

// DefaultPageSize is the fixed page size of the processing log.
const DefaultPageSize = 20

// Operation names shared by cache keys and invalidation.
const (
	OpList   = "fnols.list"
	OpDetail = "fnols.detail"
)

// DetailKey is the cache identity of a single FNOL's detail view.
func DetailKey(fnolID string) query.Key {
	return query.NewKey(OpDetail, "id="+url.QueryEscape(fnolID))
}

// ListQuery is the list view's pagination and filter state. It is a value:
// every change produces a new ListQuery, and therefore a new cache identity,
// never a mutation of an old one.
type ListQuery struct {
	Page     int
	PageSize int
	Search   string
	Status   string
}

// NewListQuery returns the initial state: first page, default size, no filters.
func NewListQuery() ListQuery {
	return ListQuery{Page: 1, PageSize: DefaultPageSize}
}

// Key is the logical query identity (operation plus ordered parameters).
func (q ListQuery) Key() query.Key {
	return query.NewKey(OpList,
		"page="+strconv.Itoa(q.Page),
		"page_size="+strconv.Itoa(q.PageSize),
		"search="+url.QueryEscape(q.Search),
		"status="+q.Status,
	)
}

// Params translates the state into API request parameters.
func (q ListQuery) Params() api.ListParams {
	return api.ListParams{
		Page:     q.Page,
		PageSize: q.PageSize,
		Search:   q.Search,
		Status:   q.Status,
	}
}

// WithSearch returns the state for a new search term. Changing a filter
// resets to the first page so the user is never stranded on a page that no
// longer exists under the narrower result set.
func (q ListQuery) WithSearch(search string) ListQuery {
	if search == q.Search {
		return q
	}
	q.Search = search
	q.Page = 1
	return q
}

// WithStatus returns the state for a new status filter, resetting to page 1
// for the same reason as WithSearch.
func (q ListQuery) WithStatus(status string) ListQuery {
	if status == q.Status {
		return q
	}
	q.Status = status
	q.Page = 1
	return q
}

// WithPage returns the state for an absolute page, clamped to
// [1, totalPages]. A totalPages of zero clamps only the lower bound, which
// covers the first render before any response has arrived.
func (q ListQuery) WithPage(page, totalPages int) ListQuery {
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	q.Page = page
	return q
}

// Next advances one page, never past totalPages even under rapid repeated
// clicks.
func (q ListQuery) Next(totalPages int) ListQuery {
	return q.WithPage(q.Page+1, totalPages)
}

// Prev goes back one page, never below 1.
func (q ListQuery) Prev() ListQuery {
	return q.WithPage(q.Page-1, 0)
}

// TotalPages is ceil(total/pageSize); zero when there are no items.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// ShowingRange returns the 1-based inclusive range [x, y] of item positions
// visible on page, for a "showing X to Y of Z" label. Both are zero when the
// result set is empty.
func ShowingRange(page, pageSize, total int) (int, int) {
	if total <= 0 || page < 1 || pageSize <= 0 {
		return 0, 0
	}
	x := (page-1)*pageSize + 1
	y := page * pageSize
	if y > total {
		y = total
	}
	if x > y {
		return 0, 0
	}
	return x, y
}
