package fnols

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ecazzaniga/fnolwatch/internal/domain"
	"github.com/ecazzaniga/fnolwatch/internal/util"
)

// DetailView is the per-case view derived from the raw detail response. It is
// recomputed from the cached raw data on every read and never cached itself,
// so displayed totals cannot drift from the underlying records.
type DetailView struct {
	Trace       domain.FNOLTrace
	Stages      []StageView
	Metrics     []domain.LLMMetric
	TotalCost   decimal.Decimal
	TotalTokens int64
	// HasMetrics gates the LLM panel: zero metrics omit it instead of
	// rendering it empty.
	HasMetrics bool
}

// StageView is one timeline step with its rendered duration.
type StageView struct {
	domain.StageExecution
	Duration string
}

// BuildDetailView derives the ordered timeline and the cost/token rollups.
// It is total over its input: missing optionals, bad timestamps and
// unparsable cost strings degrade to placeholders, never panics.
func BuildDetailView(d *domain.Detail) DetailView {
	stages := OrderStages(d.StageExecutions)
	views := make([]StageView, 0, len(stages))
	for _, st := range stages {
		views = append(views, StageView{
			StageExecution: st,
			Duration:       util.FormatDurationMS(st.DurationMS),
		})
	}

	cost, tokens := Rollup(d.LLMMetrics)

	return DetailView{
		Trace:       d.Trace,
		Stages:      views,
		Metrics:     d.LLMMetrics,
		TotalCost:   cost,
		TotalTokens: tokens,
		HasMetrics:  len(d.LLMMetrics) > 0,
	}
}

// OrderStages returns the stage executions sorted ascending by start_time.
// The backend guarantees no secondary key, so equal timestamps keep their
// input relative order (stable sort). Unparsable timestamps sort as zero time.
func OrderStages(stages []domain.StageExecution) []domain.StageExecution {
	out := make([]domain.StageExecution, len(stages))
	copy(out, stages)
	sort.SliceStable(out, func(i, j int) bool {
		return util.ParseTimeRFC3339(out[i].StartTime).Before(util.ParseTimeRFC3339(out[j].StartTime))
	})
	return out
}

// Rollup recomputes total cost and total tokens from the full metric list.
// Cost is summed with exact decimal arithmetic; a cost string that does not
// parse contributes nothing rather than aborting the sum. Zero metrics yield
// zero in both fields.
func Rollup(metrics []domain.LLMMetric) (decimal.Decimal, int64) {
	cost := decimal.Zero
	var tokens int64
	for _, m := range metrics {
		if c, err := m.Cost(); err == nil {
			cost = cost.Add(c)
		}
		tokens += m.TotalTokens
	}
	return cost, tokens
}
