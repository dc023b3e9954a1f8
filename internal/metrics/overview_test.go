package metrics

import (
	"testing"

	"github.com/ecazzaniga/fnolwatch/internal/domain"
)

func TestAvgTokensPerRequest(t *testing.T) {
	tests := []struct {
		name     string
		tokens   int64
		count    int64
		expected int64
		ok       bool
	}{
		{"exact division", 1000, 4, 250, true},
		{"rounds up", 1001, 2, 501, true},  // 500.5 -> 501
		{"rounds down", 999, 4, 250, true}, // 249.75 -> 250
		{"single request", 37, 1, 37, true},
		{"zero count is no data", 1000, 0, 0, false},
		{"negative count is no data", 1000, -1, 0, false},
		{"zero tokens", 0, 5, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AvgTokensPerRequest(tt.tokens, tt.count)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("AvgTokensPerRequest(%d, %d) = (%d, %v), want (%d, %v)",
					tt.tokens, tt.count, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestBuildOverview(t *testing.T) {
	o := &domain.MetricsOverview{
		TotalTokensToday: 125000,
		TotalCostToday:   "12.3",
		AvgCostPerFNOL:   "0.0450",
		CostTrend: []domain.CostTrendPoint{
			{Date: "2024-01-01", TotalCost: 1.5},
			{Date: "2024-01-02", TotalCost: 2.25},
		},
		ModelDistribution: []domain.ModelUsage{
			{ModelName: "gpt-4o-mini", Count: 40, TotalTokens: 8000},
			{ModelName: "gpt-4o", Count: 0, TotalTokens: 0},
		},
	}

	view := BuildOverview(o)

	if view.TotalTokensToday != "125.0K" {
		t.Errorf("tokens today = %q, want 125.0K", view.TotalTokensToday)
	}
	if view.TotalCostToday != "$12.30" {
		t.Errorf("cost today = %q, want $12.30", view.TotalCostToday)
	}
	if view.AvgCostPerFNOL != "$0.0450" {
		t.Errorf("avg cost = %q, want $0.0450", view.AvgCostPerFNOL)
	}
	if !view.HasTrend || len(view.CostTrend) != 2 {
		t.Errorf("expected trend passthrough, got %+v", view.CostTrend)
	}
	// Trend order is the backend's; position 0 must stay position 0.
	if view.CostTrend[0].Date != "2024-01-01" {
		t.Errorf("trend was reordered: %+v", view.CostTrend)
	}

	if !view.HasModels || len(view.Models) != 2 {
		t.Fatalf("expected 2 model rows, got %d", len(view.Models))
	}
	if view.Models[0].AvgTokensPerRequest != "200" {
		t.Errorf("first model avg = %q, want 200", view.Models[0].AvgTokensPerRequest)
	}
	if view.Models[1].AvgTokensPerRequest != NoData {
		t.Errorf("zero-count model avg = %q, want %q", view.Models[1].AvgTokensPerRequest, NoData)
	}
}

func TestBuildOverview_Empty(t *testing.T) {
	view := BuildOverview(&domain.MetricsOverview{TotalCostToday: "0", AvgCostPerFNOL: "0"})

	if view.HasTrend || view.HasModels {
		t.Errorf("expected empty response to render as no data, got %+v", view)
	}
	if view.TotalCostToday != "$0.00" {
		t.Errorf("cost today = %q, want $0.00", view.TotalCostToday)
	}
	if view.TotalTokensToday != "0" {
		t.Errorf("tokens today = %q, want 0", view.TotalTokensToday)
	}
}
