package templates

import (
	"github.com/ecazzaniga/fnolwatch/internal/domain"
	"github.com/ecazzaniga/fnolwatch/internal/fnols"
	"github.com/ecazzaniga/fnolwatch/internal/metrics"
)

// FNOLListData drives the processing log page and its HTMX table partial.
type FNOLListData struct {
	Items      []domain.FNOLListItem
	Total      int
	Page       int
	TotalPages int
	ShowFrom   int
	ShowTo     int
	Search     string
	Status     string
	Stale      bool
	PrevURL    string
	NextURL    string
	HasPrev    bool
	HasNext    bool
}

// FNOLDetailData drives the per-case page: summary cards, stage timeline,
// trace info and the LLM usage panel.
type FNOLDetailData struct {
	View  fnols.DetailView
	Stale bool
}

// MetricsData drives the LLM metrics overview page.
type MetricsData struct {
	Overview metrics.OverviewView
	Stale    bool
}

// DashboardData drives the operations dashboard. Either panel may be nil
// when its backend query failed; the page renders what it has.
type DashboardData struct {
	Stats    *domain.DashboardStats
	Failures *domain.FailureAnalytics
}

// IngestFormData drives the manual intake form. Attachments is the raw
// comma-separated input so a failed submission echoes exactly what was typed.
type IngestFormData struct {
	Subject     string
	Body        string
	Sender      string
	Attachments string
	ReceivedAt  string
	Error       string
	Ack         string
}
