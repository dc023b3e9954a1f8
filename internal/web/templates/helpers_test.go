package templates

import "testing"

func TestDetailURL_EscapesPathSegment(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"FNOL-2024-001", "/fnols/FNOL-2024-001"},
		{"a/b", "/fnols/a%2Fb"},
		{"x?y=1", "/fnols/x%3Fy=1"},
	}
	for _, tt := range tests {
		if got := string(detailURL(tt.id)); got != tt.want {
			t.Errorf("detailURL(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	if got := statusLabel("SUCCESS"); got != "Success" {
		t.Errorf("statusLabel(SUCCESS) = %q", got)
	}
	if got := statusLabel(""); got != "" {
		t.Errorf("statusLabel(empty) = %q", got)
	}
}
