package fnols

import "testing"

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total    int
		pageSize int
		expected int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 20, 5},
		{101, 20, 6},
		{7, 3, 3},
	}

	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.pageSize); got != tt.expected {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.pageSize, got, tt.expected)
		}
	}
}

func TestShowingRange(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		total      int
		wantX      int
		wantY      int
	}{
		{"empty set", 1, 20, 0, 0, 0},
		{"first page full", 1, 20, 100, 1, 20},
		{"middle page", 3, 20, 100, 41, 60},
		{"last partial page", 6, 20, 101, 101, 101},
		{"single item", 1, 20, 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := ShowingRange(tt.page, tt.pageSize, tt.total)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("ShowingRange(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.pageSize, tt.total, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

// The displayed range [X, Y] must satisfy 1 <= X <= Y <= total whenever the
// result set is non-empty, for every page the controller can reach.
func TestShowingRange_BoundsHold(t *testing.T) {
	for _, pageSize := range []int{1, 3, 20} {
		for total := 1; total <= 50; total++ {
			for page := 1; page <= TotalPages(total, pageSize); page++ {
				x, y := ShowingRange(page, pageSize, total)
				if x < 1 || x > y || y > total {
					t.Fatalf("bounds violated: page=%d size=%d total=%d -> (%d, %d)",
						page, pageSize, total, x, y)
				}
			}
		}
	}
}

func TestListQuery_PageClamping(t *testing.T) {
	q := NewListQuery()

	// Prev on page 1 stays on page 1, even double-clicked.
	q = q.Prev().Prev()
	if q.Page != 1 {
		t.Errorf("expected page 1 after Prev on first page, got %d", q.Page)
	}

	// Next never exceeds the last page.
	q = q.WithPage(5, 5)
	q = q.Next(5)
	q = q.Next(5)
	if q.Page != 5 {
		t.Errorf("expected page 5 after Next on last page, got %d", q.Page)
	}

	// An out-of-range jump is clamped.
	if got := q.WithPage(99, 5); got.Page != 5 {
		t.Errorf("WithPage(99, 5) = %d, want 5", got.Page)
	}
	if got := q.WithPage(-3, 5); got.Page != 1 {
		t.Errorf("WithPage(-3, 5) = %d, want 1", got.Page)
	}

	// Before the first response totalPages is unknown; only the lower bound
	// can be enforced.
	if got := NewListQuery().WithPage(4, 0); got.Page != 4 {
		t.Errorf("WithPage(4, 0) = %d, want 4", got.Page)
	}
}

func TestListQuery_FilterChangeResetsPage(t *testing.T) {
	q := NewListQuery().WithPage(7, 10)

	if got := q.WithStatus("FAILED"); got.Page != 1 || got.Status != "FAILED" {
		t.Errorf("WithStatus: got page=%d status=%q", got.Page, got.Status)
	}
	if got := q.WithSearch("F1"); got.Page != 1 || got.Search != "F1" {
		t.Errorf("WithSearch: got page=%d search=%q", got.Page, got.Search)
	}

	// Re-applying the same filter is not a change and keeps the page.
	q = q.WithStatus("FAILED").WithPage(3, 10)
	if got := q.WithStatus("FAILED"); got.Page != 3 {
		t.Errorf("unchanged filter reset the page: got %d", got.Page)
	}
}

func TestListQuery_KeyIdentity(t *testing.T) {
	base := NewListQuery()

	if base.Key() != NewListQuery().Key() {
		t.Error("equal states must share a cache identity")
	}

	variants := []ListQuery{
		base.WithPage(2, 10),
		base.WithSearch("F1"),
		base.WithStatus("FAILED"),
	}
	seen := map[string]bool{string(base.Key()): true}
	for _, v := range variants {
		k := string(v.Key())
		if seen[k] {
			t.Errorf("state %+v collides with a previous identity %q", v, k)
		}
		seen[k] = true
	}

	if base.Key().Op() != "fnols.list" {
		t.Errorf("unexpected op %q", base.Key().Op())
	}
}
