package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatDurationMS renders a millisecond duration for display.
// Absent values fall back to an explicit placeholder rather than zero.
// Examples: nil -> "N/A", 750 -> "750ms", 1500 -> "1.50s"
func FormatDurationMS(ms *int64) string {
	if ms == nil {
		return "N/A"
	}
	if *ms < 1000 {
		return fmt.Sprintf("%dms", *ms)
	}
	return fmt.Sprintf("%.2fs", float64(*ms)/1000)
}

// FormatTokensInt formats an int64 token count with K/M suffix for readability.
// Examples: 500 -> "500", 1500 -> "1.5K", 1500000 -> "1.5M"
func FormatTokensInt(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}

// FormatCost renders an exact decimal USD amount with two places, e.g. "$12.30".
func FormatCost(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// FormatCostPrecise renders an exact decimal USD amount with four places,
// used for per-call costs that round to zero at two places.
func FormatCostPrecise(d decimal.Decimal) string {
	return "$" + d.StringFixed(4)
}

// FormatCostString parses a decimal cost string and renders it with the given
// number of places. Returns the original string if parsing fails.
func FormatCostString(s string, places int32) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return "$" + d.StringFixed(places)
}

// HumanizeStageName turns a pipeline stage token into display text,
// e.g. "llm_extract" -> "llm extract".
func HumanizeStageName(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// FormatDateTime formats an RFC3339 timestamp string to date-time format (2006-01-02 15:04).
// Returns the original string if parsing fails.
func FormatDateTime(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02 15:04")
}

// FormatDateHuman formats an RFC3339 timestamp string to human-readable format (Jan 2, 2006).
// Returns the original string if parsing fails.
func FormatDateHuman(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2, 2006")
}

// ParseTimeRFC3339 parses an RFC3339 timestamp string to time.Time.
// Returns zero time if parsing fails.
func ParseTimeRFC3339(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
