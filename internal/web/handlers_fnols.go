package web

import (
	"errors"
	"net/http"

	"github.com/ecazzaniga/fnolwatch/internal/api"
	"github.com/ecazzaniga/fnolwatch/internal/fnols"
	apperrors "github.com/ecazzaniga/fnolwatch/internal/shared/errors"
	"github.com/ecazzaniga/fnolwatch/internal/shared/middleware"
	"github.com/ecazzaniga/fnolwatch/internal/web/templates"
)

func (s *Server) handleFNOLList(w http.ResponseWriter, r *http.Request) {
	q := s.parseListQuery(r)

	list, stale, err := s.fetchList(r.Context(), q)
	if err != nil {
		apperrors.HandleError(w, err)
		return
	}

	// The backend reports the authoritative page count; re-clamp so a URL
	// pointing past the end lands on the last page instead of an empty one.
	totalPages := fnols.TotalPages(list.Total, q.PageSize)
	if clamped := q.WithPage(q.Page, totalPages); clamped.Page != q.Page {
		q = clamped
		list, stale, err = s.fetchList(r.Context(), q)
		if err != nil {
			apperrors.HandleError(w, err)
			return
		}
	}

	from, to := fnols.ShowingRange(q.Page, q.PageSize, list.Total)
	data := templates.FNOLListData{
		Items:      list.Items,
		Total:      list.Total,
		Page:       q.Page,
		TotalPages: totalPages,
		ShowFrom:   from,
		ShowTo:     to,
		Search:     q.Search,
		Status:     q.Status,
		Stale:      stale,
		PrevURL:    listURL(q.Prev()),
		NextURL:    listURL(q.Next(totalPages)),
		HasPrev:    q.Page > 1,
		HasNext:    q.Page < totalPages,
	}

	// Filter and pagination requests arrive over HTMX and swap just the
	// table; a direct visit renders the full page.
	if middleware.IsHTMX(r) {
		if err := templates.FNOLTable(data).Render(r.Context(), w); err != nil {
			apperrors.HandleError(w, err)
		}
		return
	}
	if err := templates.FNOLListPage(data).Render(r.Context(), w); err != nil {
		apperrors.HandleError(w, err)
	}
}

func (s *Server) handleFNOLDetail(w http.ResponseWriter, r *http.Request) {
	fnolID := r.PathValue("id")
	if fnolID == "" {
		http.NotFound(w, r)
		return
	}

	detail, stale, err := s.fetchDetail(r.Context(), fnolID)
	if err != nil {
		var te *api.TransportError
		if errors.As(err, &te) && te.StatusCode == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		apperrors.HandleError(w, err)
		return
	}

	data := templates.FNOLDetailData{
		View:  fnols.BuildDetailView(detail),
		Stale: stale,
	}
	if err := templates.FNOLDetailPage(data).Render(r.Context(), w); err != nil {
		apperrors.HandleError(w, err)
	}
}
