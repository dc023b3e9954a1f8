package domain

import "github.com/shopspring/decimal"

// LLMMetric accounts for one language-model invocation attributable to a trace.
// CostUSD stays a decimal string in the canonical record; it is parsed only at
// aggregation or display time to avoid binary floating-point drift.
type LLMMetric struct {
	ID               string  `json:"id"`
	FNOLID           string  `json:"fnol_id"`
	StageName        string  `json:"stage_name"`
	ModelName        string  `json:"model_name"`
	PromptVersion    string  `json:"prompt_version"`
	PromptHash       string  `json:"prompt_hash"`
	PromptTokens     int64   `json:"prompt_tokens"`
	CompletionTokens int64   `json:"completion_tokens"`
	TotalTokens      int64   `json:"total_tokens"`
	CostUSD          string  `json:"cost_usd"`
	LatencyMS        int64   `json:"latency_ms"`
	Temperature      *string `json:"temperature"`
	CreatedAt        string  `json:"created_at"`
}

// Cost parses the cost_usd string into an exact decimal.
func (m LLMMetric) Cost() (decimal.Decimal, error) {
	return decimal.NewFromString(m.CostUSD)
}
