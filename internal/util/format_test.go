package util

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatDurationMS(t *testing.T) {
	ms := func(v int64) *int64 { return &v }

	tests := []struct {
		name     string
		input    *int64
		expected string
	}{
		{"missing duration", nil, "N/A"},
		{"zero", ms(0), "0ms"},
		{"sub-second", ms(750), "750ms"},
		{"boundary just below", ms(999), "999ms"},
		{"exactly one second", ms(1000), "1.00s"},
		{"seconds with fraction", ms(1500), "1.50s"},
		{"long run", ms(90250), "90.25s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDurationMS(tt.input); got != tt.expected {
				t.Errorf("FormatDurationMS(%v) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatTokensInt(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{500, "500"},
		{1500, "1.5K"},
		{1500000, "1.5M"},
	}

	for _, tt := range tests {
		if got := FormatTokensInt(tt.input); got != tt.expected {
			t.Errorf("FormatTokensInt(%d) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatCostString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		places   int32
		expected string
	}{
		{"two places", "12.3", 2, "$12.30"},
		{"four places", "0.0012", 4, "$0.0012"},
		{"unparsable passes through", "n/a", 2, "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCostString(tt.input, tt.places); got != tt.expected {
				t.Errorf("FormatCostString(%q, %d) = %q, want %q", tt.input, tt.places, got, tt.expected)
			}
		})
	}
}

func TestFormatCostPrecise(t *testing.T) {
	d := decimal.RequireFromString("0.005")
	if got := FormatCostPrecise(d); got != "$0.0050" {
		t.Errorf("FormatCostPrecise = %q, want %q", got, "$0.0050")
	}
}

func TestHumanizeStageName(t *testing.T) {
	if got := HumanizeStageName("llm_extract"); got != "llm extract" {
		t.Errorf("HumanizeStageName = %q, want %q", got, "llm extract")
	}
}
