package web

import (
	"context"
	"fmt"

	"github.com/ecazzaniga/fnolwatch/internal/domain"
	"github.com/ecazzaniga/fnolwatch/internal/fnols"
	"github.com/ecazzaniga/fnolwatch/internal/metrics"
	"github.com/ecazzaniga/fnolwatch/internal/query"
)

// Logical query identities for the parameterless overview operations.
const (
	opDashboardStats   = "dashboard.stats"
	opFailureAnalytics = "analytics.failures"
)

func (s *Server) fetchList(ctx context.Context, q fnols.ListQuery) (*domain.ListResponse, bool, error) {
	res := s.cache.Get(ctx, q.Key(), func(ctx context.Context) (any, error) {
		return s.client.ListFNOLs(ctx, q.Params())
	})
	return resolve[*domain.ListResponse](res)
}

func (s *Server) fetchDetail(ctx context.Context, fnolID string) (*domain.Detail, bool, error) {
	res := s.cache.Get(ctx, fnols.DetailKey(fnolID), func(ctx context.Context) (any, error) {
		return s.client.GetFNOLDetail(ctx, fnolID)
	})
	return resolve[*domain.Detail](res)
}

func (s *Server) fetchOverview(ctx context.Context) (*domain.MetricsOverview, bool, error) {
	res := s.cache.Get(ctx, query.NewKey(metrics.OpOverview), func(ctx context.Context) (any, error) {
		return s.client.GetLLMMetrics(ctx)
	})
	return resolve[*domain.MetricsOverview](res)
}

func (s *Server) fetchDashboardStats(ctx context.Context) (*domain.DashboardStats, bool, error) {
	res := s.cache.Get(ctx, query.NewKey(opDashboardStats), func(ctx context.Context) (any, error) {
		return s.client.GetDashboardStats(ctx)
	})
	return resolve[*domain.DashboardStats](res)
}

func (s *Server) fetchFailureAnalytics(ctx context.Context) (*domain.FailureAnalytics, bool, error) {
	res := s.cache.Get(ctx, query.NewKey(opFailureAnalytics), func(ctx context.Context) (any, error) {
		return s.client.GetFailureAnalytics(ctx)
	})
	return resolve[*domain.FailureAnalytics](res)
}

// resolve turns a cache result into value, staleness and error for page
// rendering. A stale value with a failed background refresh still renders:
// the UI never blanks a previously displayed state over a bad revalidation.
func resolve[T any](res query.Result) (T, bool, error) {
	if v, ok := query.Value[T](res); ok {
		return v, res.Stale, nil
	}
	var zero T
	if res.Err != nil {
		return zero, false, res.Err
	}
	return zero, false, fmt.Errorf("unexpected cached value type %T", res.Data)
}

// startPolling subscribes the always-on views to background revalidation and
// returns a function that unsubscribes all of them.
func (s *Server) startPolling() func() {
	if s.cfg.PollInterval <= 0 {
		return func() {}
	}
	stops := []func(){
		s.cache.Subscribe(query.NewKey(opDashboardStats), s.cfg.PollInterval, func(ctx context.Context) (any, error) {
			return s.client.GetDashboardStats(ctx)
		}),
		s.cache.Subscribe(query.NewKey(opFailureAnalytics), s.cfg.PollInterval, func(ctx context.Context) (any, error) {
			return s.client.GetFailureAnalytics(ctx)
		}),
		s.cache.Subscribe(query.NewKey(metrics.OpOverview), s.cfg.PollInterval, func(ctx context.Context) (any, error) {
			return s.client.GetLLMMetrics(ctx)
		}),
	}
	return func() {
		for _, stop := range stops {
			stop()
		}
	}
}
