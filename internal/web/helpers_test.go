package web

import (
	"net/http/httptest"
	"testing"

	"github.com/ecazzaniga/fnolwatch/internal/fnols"
)

func TestParseListQuery(t *testing.T) {
	s := &Server{cfg: Config{PageSize: 20}}

	tests := []struct {
		name string
		url  string
		want fnols.ListQuery
	}{
		{
			name: "defaults",
			url:  "/fnols",
			want: fnols.ListQuery{Page: 1, PageSize: 20},
		},
		{
			name: "page and filters",
			url:  "/fnols?page=3&search=FNOL-2024&status=FAILED",
			want: fnols.ListQuery{Page: 3, PageSize: 20, Search: "FNOL-2024", Status: "FAILED"},
		},
		{
			name: "unknown status dropped",
			url:  "/fnols?status=BOGUS",
			want: fnols.ListQuery{Page: 1, PageSize: 20},
		},
		{
			name: "page below one clamps",
			url:  "/fnols?page=-2",
			want: fnols.ListQuery{Page: 1, PageSize: 20},
		},
		{
			name: "non numeric page ignored",
			url:  "/fnols?page=abc",
			want: fnols.ListQuery{Page: 1, PageSize: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			got := s.parseListQuery(r)
			if got != tt.want {
				t.Errorf("parseListQuery(%q) = %+v, want %+v", tt.url, got, tt.want)
			}
		})
	}
}

func TestListURL(t *testing.T) {
	tests := []struct {
		name string
		q    fnols.ListQuery
		want string
	}{
		{
			name: "first unfiltered page is bare",
			q:    fnols.ListQuery{Page: 1, PageSize: 20},
			want: "/fnols",
		},
		{
			name: "page only",
			q:    fnols.ListQuery{Page: 2, PageSize: 20},
			want: "/fnols?page=2",
		},
		{
			name: "filters encode",
			q:    fnols.ListQuery{Page: 1, PageSize: 20, Search: "a b", Status: "FAILED"},
			want: "/fnols?search=a+b&status=FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := listURL(tt.q); got != tt.want {
				t.Errorf("listURL(%+v) = %q, want %q", tt.q, got, tt.want)
			}
		})
	}
}

func TestSplitAttachments(t *testing.T) {
	got := splitAttachments("photos.zip, ,claim.pdf,")
	want := []string{"photos.zip", "claim.pdf"}
	if len(got) != len(want) {
		t.Fatalf("splitAttachments returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitAttachments[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if splitAttachments("  ") != nil {
		t.Error("blank input should yield nil")
	}
}
