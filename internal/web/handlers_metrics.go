package web

import (
	"net/http"

	"github.com/ecazzaniga/fnolwatch/internal/metrics"
	apperrors "github.com/ecazzaniga/fnolwatch/internal/shared/errors"
	"github.com/ecazzaniga/fnolwatch/internal/web/templates"
)

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	overview, stale, err := s.fetchOverview(r.Context())
	if err != nil {
		apperrors.HandleError(w, err)
		return
	}

	data := templates.MetricsData{
		Overview: metrics.BuildOverview(overview),
		Stale:    stale,
	}
	if err := templates.MetricsPage(data).Render(r.Context(), w); err != nil {
		apperrors.HandleError(w, err)
	}
}
