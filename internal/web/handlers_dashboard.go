package web

import (
	"log"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/ecazzaniga/fnolwatch/internal/domain"
	apperrors "github.com/ecazzaniga/fnolwatch/internal/shared/errors"
	"github.com/ecazzaniga/fnolwatch/internal/web/templates"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var (
		stats    *domain.DashboardStats
		failures *domain.FailureAnalytics
	)

	// Each panel loads independently. A failed panel logs and renders as
	// unavailable instead of taking down the whole page.
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		v, _, err := s.fetchDashboardStats(ctx)
		if err != nil {
			log.Printf("dashboard stats unavailable: %v", err)
			return nil
		}
		stats = v
		return nil
	})
	g.Go(func() error {
		v, _, err := s.fetchFailureAnalytics(ctx)
		if err != nil {
			log.Printf("failure analytics unavailable: %v", err)
			return nil
		}
		failures = v
		return nil
	})
	_ = g.Wait()

	data := templates.DashboardData{
		Stats:    stats,
		Failures: failures,
	}
	if err := templates.DashboardPage(data).Render(r.Context(), w); err != nil {
		apperrors.HandleError(w, err)
	}
}
