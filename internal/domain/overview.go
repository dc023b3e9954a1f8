package domain

// MetricsOverview is the backend's LLM usage summary. The today totals and the
// average cost per case are trusted verbatim; only per-model averages are
// derived client-side.
type MetricsOverview struct {
	TotalTokensToday  int64            `json:"total_tokens_today"`
	TotalCostToday    string           `json:"total_cost_today"`
	AvgCostPerFNOL    string           `json:"avg_cost_per_fnol"`
	CostTrend         []CostTrendPoint `json:"cost_trend"`
	ModelDistribution []ModelUsage     `json:"model_distribution"`
}

// CostTrendPoint is one day of the cost trend series, already in
// chronological order when it arrives.
type CostTrendPoint struct {
	Date      string  `json:"date"`
	TotalCost float64 `json:"total_cost"`
}

// ModelUsage is one model's share of the distribution.
type ModelUsage struct {
	ModelName   string `json:"model_name"`
	Count       int64  `json:"count"`
	TotalTokens int64  `json:"total_tokens"`
}

// FailureAnalytics aggregates pipeline failures by stage, code and day.
type FailureAnalytics struct {
	FailureByStage []StageFailureCount `json:"failure_by_stage"`
	TopErrorCodes  []ErrorCodeCount    `json:"top_error_codes"`
	FailureTrend   []FailureTrendPoint `json:"failure_trend"`
}

type StageFailureCount struct {
	StageName    string `json:"stage_name"`
	FailureCount int64  `json:"failure_count"`
}

type ErrorCodeCount struct {
	ErrorCode  string `json:"error_code"`
	ErrorCount int64  `json:"error_count"`
}

type FailureTrendPoint struct {
	Date         string `json:"date"`
	FailureCount int64  `json:"failure_count"`
}

// DashboardStats is the backend's day-level intake summary.
type DashboardStats struct {
	TotalFNOLsToday        int64    `json:"total_fnols_today"`
	SuccessCount           int64    `json:"success_count"`
	FailureCount           int64    `json:"failure_count"`
	PartialCount           int64    `json:"partial_count"`
	AvgProcessingTimeMS    *float64 `json:"avg_processing_time_ms"`
	ManualReviewPercentage float64  `json:"manual_review_percentage"`
}
