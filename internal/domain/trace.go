package domain

// Trace status values reported by the intake pipeline.
const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
	StatusPartial = "PARTIAL"
	StatusSkipped = "SKIPPED"
)

// FNOLTrace is the top-level record of one case's end-to-end processing run.
// All timestamps are ISO-8601 strings as transmitted by the backend.
type FNOLTrace struct {
	FNOLID          string  `json:"fnol_id"`
	Status          string  `json:"status"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time"`
	TotalDurationMS *int64  `json:"total_duration_ms"`
	CreatedAt       string  `json:"created_at"`
}

// StageExecution records one pipeline step's outcome within a trace.
// ErrorCode and ErrorMessage are usually present only for FAILED stages, but
// the backend owns that rule; whatever arrives is rendered.
type StageExecution struct {
	ID           string  `json:"id"`
	FNOLID       string  `json:"fnol_id"`
	StageName    string  `json:"stage_name"`
	Status       string  `json:"status"`
	StartTime    string  `json:"start_time"`
	EndTime      *string `json:"end_time"`
	DurationMS   *int64  `json:"duration_ms"`
	ErrorCode    *string `json:"error_code"`
	ErrorMessage *string `json:"error_message"`
	CreatedAt    string  `json:"created_at"`
}
