package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ecazzaniga/fnolwatch/internal/api"
	"github.com/ecazzaniga/fnolwatch/internal/domain"
	"github.com/ecazzaniga/fnolwatch/internal/query"
	"github.com/ecazzaniga/fnolwatch/internal/shared/middleware"
)

// newTestServer wires a Server against a fake backend, with the HTMX
// middleware applied the way Start does.
func newTestServer(t *testing.T, backend http.Handler) (http.Handler, *Server) {
	t.Helper()
	ts := httptest.NewServer(backend)
	t.Cleanup(ts.Close)

	client := api.NewClient(ts.URL, 2*time.Second)
	cache := query.New(query.Options{
		MaxRetries: 1,
		Backoff:    func(int) time.Duration { return 0 },
	})
	t.Cleanup(cache.Close)

	s := NewServer(Config{Port: 0, PageSize: 20}, client, cache)
	return middleware.HTMX(s.router), s
}

func listBackend(t *testing.T, total int, pages *[]string) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/fnols", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		*pages = append(*pages, page)

		resp := domain.ListResponse{
			Items: []domain.FNOLListItem{
				{FNOLID: "FNOL-2024-0042", Status: domain.StatusSuccess, CreatedAt: "2024-01-05T10:00:00Z"},
			},
			Total:    total,
			PageSize: 20,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})
	return mux
}

func TestHandleFNOLList_ReclampsPagePastBackendTotal(t *testing.T) {
	var pages []string
	// 25 items at page size 20 is 2 pages; page 9 does not exist.
	handler, _ := newTestServer(t, listBackend(t, 25, &pages))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/fnols?page=9", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(pages) != 2 || pages[0] != "9" || pages[1] != "2" {
		t.Fatalf("backend saw pages %v, want the out-of-range request then the clamped refetch [9 2]", pages)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Page 2 of 2") {
		t.Errorf("body does not show the clamped page:\n%s", body)
	}
}

func TestHandleFNOLList_HTMXRendersTablePartial(t *testing.T) {
	var pages []string
	handler, _ := newTestServer(t, listBackend(t, 1, &pages))

	req := httptest.NewRequest("GET", "/fnols", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	partial := rec.Body.String()
	if strings.Contains(partial, "<html") {
		t.Error("htmx request rendered the full page instead of the table partial")
	}
	if !strings.Contains(partial, "FNOL-2024-0042") {
		t.Errorf("partial does not contain the row data:\n%s", partial)
	}

	// The same URL without the header renders the whole document.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/fnols", nil))
	if full := rec.Body.String(); !strings.Contains(full, "<html") {
		t.Error("direct visit did not render the full page")
	}
}

func TestHandleFNOLDetail_BackendNotFoundIs404(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/fnols/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such fnol", http.StatusNotFound)
	})
	handler, _ := newTestServer(t, mux)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/fnols/NOPE", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleFNOLList_BackendErrorIs502(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/fnols", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	handler, _ := newTestServer(t, mux)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/fnols", nil))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}
