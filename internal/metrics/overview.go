// Package metrics derives the LLM usage view from the backend's overview
// response. Today's totals and the average cost per case are trusted
// verbatim; the only client-computed statistic is average tokens per request.
package metrics

import (
	"math"

	"github.com/ecazzaniga/fnolwatch/internal/domain"
	"github.com/ecazzaniga/fnolwatch/internal/util"
)

// NoData is the placeholder for a statistic that cannot be derived, e.g. an
// average over zero requests.
const NoData = "-"

// OpOverview is the cache operation name for the metrics overview query.
const OpOverview = "metrics.overview"

// OverviewView is the metrics page's view model, recomputed from the cached
// raw response on every read.
type OverviewView struct {
	TotalTokensToday string
	TotalCostToday   string
	AvgCostPerFNOL   string
	CostTrend        []domain.CostTrendPoint
	Models           []ModelRow
	HasTrend         bool
	HasModels        bool
}

// ModelRow is one model distribution entry with its derived average.
type ModelRow struct {
	domain.ModelUsage
	AvgTokensPerRequest string
}

// BuildOverview derives the view. Total over its input: an empty trend or
// distribution renders as a distinct "no data" state, and a zero request
// count yields a placeholder average rather than a division by zero.
func BuildOverview(o *domain.MetricsOverview) OverviewView {
	view := OverviewView{
		TotalTokensToday: util.FormatTokensInt(o.TotalTokensToday),
		TotalCostToday:   util.FormatCostString(o.TotalCostToday, 2),
		AvgCostPerFNOL:   util.FormatCostString(o.AvgCostPerFNOL, 4),
		// Trend order is owned by the backend; rendered as received.
		CostTrend: o.CostTrend,
		HasTrend:  len(o.CostTrend) > 0,
		HasModels: len(o.ModelDistribution) > 0,
	}

	view.Models = make([]ModelRow, 0, len(o.ModelDistribution))
	for _, m := range o.ModelDistribution {
		row := ModelRow{ModelUsage: m, AvgTokensPerRequest: NoData}
		if avg, ok := AvgTokensPerRequest(m.TotalTokens, m.Count); ok {
			row.AvgTokensPerRequest = util.FormatTokensInt(avg)
		}
		view.Models = append(view.Models, row)
	}
	return view
}

// AvgTokensPerRequest is round(totalTokens/count). The second return is false
// when count is not positive, the defined "no data" case.
func AvgTokensPerRequest(totalTokens, count int64) (int64, bool) {
	if count <= 0 {
		return 0, false
	}
	return int64(math.Round(float64(totalTokens) / float64(count))), true
}
