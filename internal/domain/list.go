package domain

// FNOLListItem is the list-view projection of a trace.
type FNOLListItem struct {
	FNOLID          string  `json:"fnol_id"`
	Status          string  `json:"status"`
	TotalDurationMS *int64  `json:"total_duration_ms"`
	FailureStage    *string `json:"failure_stage"`
	CreatedAt       string  `json:"created_at"`
}

// ListResponse is one page of the FNOL processing log.
type ListResponse struct {
	Items      []FNOLListItem `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// Detail is the raw per-case response: the trace plus its stage executions
// and LLM metrics, in whatever order the backend produced them.
type Detail struct {
	Trace           FNOLTrace        `json:"trace"`
	StageExecutions []StageExecution `json:"stage_executions"`
	LLMMetrics      []LLMMetric      `json:"llm_metrics"`
}
