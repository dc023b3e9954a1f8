package fnols

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ecazzaniga/fnolwatch/internal/domain"
)

func stage(id, startTime string) domain.StageExecution {
	return domain.StageExecution{
		ID:        id,
		FNOLID:    "F1",
		StageName: "stage_" + id,
		Status:    domain.StatusSuccess,
		StartTime: startTime,
	}
}

func metric(id, cost string, tokens int64) domain.LLMMetric {
	return domain.LLMMetric{
		ID:          id,
		FNOLID:      "F1",
		CostUSD:     cost,
		TotalTokens: tokens,
	}
}

func TestOrderStages_SortsByStartTime(t *testing.T) {
	stages := []domain.StageExecution{
		stage("late", "2024-01-01T00:00:02Z"),
		stage("early", "2024-01-01T00:00:01Z"),
	}

	ordered := OrderStages(stages)

	if ordered[0].ID != "early" || ordered[1].ID != "late" {
		t.Errorf("expected [early late], got [%s %s]", ordered[0].ID, ordered[1].ID)
	}
	// Input untouched.
	if stages[0].ID != "late" {
		t.Error("OrderStages mutated its input")
	}
}

func TestOrderStages_TiesKeepInputOrder(t *testing.T) {
	const ts = "2024-01-01T00:00:01Z"
	stages := []domain.StageExecution{
		stage("b", "2024-01-01T00:00:02Z"),
		stage("a1", ts),
		stage("a2", ts),
		stage("a3", ts),
	}

	ordered := OrderStages(stages)

	want := []string{"a1", "a2", "a3", "b"}
	for i, id := range want {
		if ordered[i].ID != id {
			t.Fatalf("position %d: got %s, want %s (full order %v)", i, ordered[i].ID, id, ids(ordered))
		}
	}
}

func TestOrderStages_UnparsableTimestampDoesNotPanic(t *testing.T) {
	stages := []domain.StageExecution{
		stage("ok", "2024-01-01T00:00:01Z"),
		stage("bad", "not-a-timestamp"),
	}

	ordered := OrderStages(stages)
	if len(ordered) != 2 {
		t.Fatalf("expected both stages back, got %d", len(ordered))
	}
	// Zero time sorts first.
	if ordered[0].ID != "bad" {
		t.Errorf("expected unparsable timestamp to sort first, got %s", ordered[0].ID)
	}
}

func TestRollup_ExactDecimalSum(t *testing.T) {
	metrics := []domain.LLMMetric{
		metric("m1", "0.0012", 100),
		metric("m2", "0.0038", 250),
	}

	cost, tokens := Rollup(metrics)

	// Exact decimal, not a float-rounding artifact like 0.004999999.
	if !cost.Equal(decimal.RequireFromString("0.005")) {
		t.Errorf("total cost = %s, want 0.005", cost)
	}
	if got := cost.StringFixed(4); got != "0.0050" {
		t.Errorf("total cost fixed = %s, want 0.0050", got)
	}
	if tokens != 350 {
		t.Errorf("total tokens = %d, want 350", tokens)
	}
}

func TestRollup_OrderIndependentAndIdempotent(t *testing.T) {
	metrics := []domain.LLMMetric{
		metric("m1", "0.10", 10),
		metric("m2", "0.25", 20),
		metric("m3", "0.0001", 30),
	}
	permuted := []domain.LLMMetric{metrics[2], metrics[0], metrics[1]}

	c1, t1 := Rollup(metrics)
	c2, t2 := Rollup(permuted)
	c3, t3 := Rollup(metrics) // second pass over the same input

	if !c1.Equal(c2) || t1 != t2 {
		t.Errorf("permutation changed the rollup: (%s, %d) vs (%s, %d)", c1, t1, c2, t2)
	}
	if !c1.Equal(c3) || t1 != t3 {
		t.Errorf("rollup is not idempotent: (%s, %d) vs (%s, %d)", c1, t1, c3, t3)
	}
}

func TestRollup_EmptyAndMalformed(t *testing.T) {
	cost, tokens := Rollup(nil)
	if !cost.IsZero() || tokens != 0 {
		t.Errorf("empty rollup = (%s, %d), want (0, 0)", cost, tokens)
	}

	cost, tokens = Rollup([]domain.LLMMetric{
		metric("bad", "not-a-number", 40),
		metric("ok", "0.5", 60),
	})
	if !cost.Equal(decimal.RequireFromString("0.5")) {
		t.Errorf("malformed cost should contribute nothing, got %s", cost)
	}
	if tokens != 100 {
		t.Errorf("tokens = %d, want 100", tokens)
	}
}

func TestBuildDetailView(t *testing.T) {
	ms := func(v int64) *int64 { return &v }

	d := &domain.Detail{
		Trace: domain.FNOLTrace{FNOLID: "F1", Status: domain.StatusPartial},
		StageExecutions: []domain.StageExecution{
			{ID: "s2", StageName: "llm_extract", StartTime: "2024-01-01T00:00:02Z", DurationMS: ms(1500)},
			{ID: "s1", StageName: "email_parse", StartTime: "2024-01-01T00:00:01Z", DurationMS: ms(80)},
			{ID: "s3", StageName: "enrich", StartTime: "2024-01-01T00:00:03Z"},
		},
		LLMMetrics: []domain.LLMMetric{
			metric("m1", "0.0012", 100),
			metric("m2", "0.0038", 250),
		},
	}

	view := BuildDetailView(d)

	if got := ids2(view.Stages); got[0] != "s1" || got[1] != "s2" || got[2] != "s3" {
		t.Errorf("timeline order = %v, want [s1 s2 s3]", got)
	}
	if view.Stages[0].Duration != "80ms" {
		t.Errorf("s1 duration = %q, want 80ms", view.Stages[0].Duration)
	}
	if view.Stages[1].Duration != "1.50s" {
		t.Errorf("s2 duration = %q, want 1.50s", view.Stages[1].Duration)
	}
	if view.Stages[2].Duration != "N/A" {
		t.Errorf("s3 duration = %q, want N/A", view.Stages[2].Duration)
	}
	if got := view.TotalCost.StringFixed(4); got != "0.0050" {
		t.Errorf("total cost = %s, want 0.0050", got)
	}
	if view.TotalTokens != 350 {
		t.Errorf("total tokens = %d, want 350", view.TotalTokens)
	}
	if !view.HasMetrics {
		t.Error("expected HasMetrics with two metrics")
	}
}

func TestBuildDetailView_NoMetricsOmitsPanel(t *testing.T) {
	view := BuildDetailView(&domain.Detail{Trace: domain.FNOLTrace{FNOLID: "F2"}})

	if view.HasMetrics {
		t.Error("expected HasMetrics=false with zero metrics")
	}
	if !view.TotalCost.IsZero() || view.TotalTokens != 0 {
		t.Errorf("expected zero rollups, got (%s, %d)", view.TotalCost, view.TotalTokens)
	}
	if len(view.Stages) != 0 {
		t.Errorf("expected empty timeline, got %d stages", len(view.Stages))
	}
}

func ids(stages []domain.StageExecution) []string {
	out := make([]string, len(stages))
	for i, s := range stages {
		out[i] = s.ID
	}
	return out
}

func ids2(stages []StageView) []string {
	out := make([]string, len(stages))
	for i, s := range stages {
		out[i] = s.ID
	}
	return out
}
