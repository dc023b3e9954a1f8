package web

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/ecazzaniga/fnolwatch/internal/domain"
	"github.com/ecazzaniga/fnolwatch/internal/fnols"
)

// parseListQuery rebuilds the list state from request parameters. Unknown
// status values are dropped rather than forwarded to the backend, and the
// page is normalized through the same clamping as navigation.
func (s *Server) parseListQuery(r *http.Request) fnols.ListQuery {
	q := fnols.NewListQuery()
	if s.cfg.PageSize > 0 {
		q.PageSize = s.cfg.PageSize
	}

	params := r.URL.Query()
	q = q.WithSearch(params.Get("search"))
	if status := params.Get("status"); validStatus(status) {
		q = q.WithStatus(status)
	}
	if page, err := strconv.Atoi(params.Get("page")); err == nil {
		q = q.WithPage(page, 0)
	}
	return q
}

func validStatus(status string) bool {
	switch status {
	case domain.StatusSuccess, domain.StatusFailed, domain.StatusPartial:
		return true
	}
	return false
}

// listURL renders the list state back into a navigable URL. Only non-default
// parameters appear, so the first unfiltered page stays at /fnols.
func listURL(q fnols.ListQuery) string {
	params := url.Values{}
	if q.Page > 1 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if len(params) == 0 {
		return "/fnols"
	}
	return "/fnols?" + params.Encode()
}
