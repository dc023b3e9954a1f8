package templates

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/ecazzaniga/fnolwatch/internal/domain"
	"github.com/ecazzaniga/fnolwatch/internal/util"
)

func formatDuration(ms *int64) string {
	return util.FormatDurationMS(ms)
}

func formatDurationFloat(ms *float64) string {
	if ms == nil {
		return "N/A"
	}
	v := int64(*ms)
	return util.FormatDurationMS(&v)
}

func formatTokens(n int64) string {
	return util.FormatTokensInt(n)
}

func formatDateTime(s string) string {
	return util.FormatDateTime(s)
}

func formatDate(s string) string {
	return util.FormatDateHuman(s)
}

func formatCostCell(s string) string {
	return util.FormatCostString(s, 4)
}

func formatTrendCost(c float64) string {
	return fmt.Sprintf("$%.2f", c)
}

func formatInt(n int64) string {
	return fmt.Sprintf("%d", n)
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

func humanizeStage(name string) string {
	return util.HumanizeStageName(name)
}

func strOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func statusBadgeClass(status string) string {
	switch status {
	case domain.StatusSuccess:
		return "badge badge-success"
	case domain.StatusFailed:
		return "badge badge-failed"
	case domain.StatusPartial:
		return "badge badge-partial"
	case domain.StatusSkipped:
		return "badge badge-skipped"
	default:
		return "badge"
	}
}

func statusLabel(status string) string {
	if status == "" {
		return status
	}
	s := strings.ToLower(status)
	return strings.ToUpper(s[:1]) + s[1:]
}

func pageURL(u string) templ.SafeURL {
	return templ.SafeURL(u)
}

func detailURL(fnolID string) templ.SafeURL {
	return templ.SafeURL("/fnols/" + url.PathEscape(fnolID))
}
