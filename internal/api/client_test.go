package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecazzaniga/fnolwatch/internal/domain"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second)
}

func TestListFNOLs_QueryParams(t *testing.T) {
	var gotQuery map[string][]string

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/fnols" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(domain.ListResponse{Page: 2, PageSize: 20})
	})

	resp, err := client.ListFNOLs(context.Background(), ListParams{
		Page:     2,
		PageSize: 20,
		Status:   "FAILED",
		Search:   "F1",
	})
	if err != nil {
		t.Fatalf("ListFNOLs: %v", err)
	}
	if resp.Page != 2 {
		t.Errorf("expected page 2, got %d", resp.Page)
	}

	for key, want := range map[string]string{
		"page":      "2",
		"page_size": "20",
		"status":    "FAILED",
		"search":    "F1",
	} {
		if got := gotQuery[key]; len(got) != 1 || got[0] != want {
			t.Errorf("query %s = %v, want %q", key, got, want)
		}
	}
	for _, absent := range []string{"date_from", "date_to"} {
		if _, ok := gotQuery[absent]; ok {
			t.Errorf("expected %s to be omitted", absent)
		}
	}
}

func TestGetFNOLDetail_EscapesID(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/api/fnols/FNOL%2F2024" {
			t.Errorf("unexpected path %q", r.URL.EscapedPath())
		}
		json.NewEncoder(w).Encode(domain.Detail{Trace: domain.FNOLTrace{FNOLID: "FNOL/2024"}})
	})

	detail, err := client.GetFNOLDetail(context.Background(), "FNOL/2024")
	if err != nil {
		t.Fatalf("GetFNOLDetail: %v", err)
	}
	if detail.Trace.FNOLID != "FNOL/2024" {
		t.Errorf("expected trace id round-trip, got %q", detail.Trace.FNOLID)
	}
}

func TestGet_ErrorStatusBecomesTransportError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.GetDashboardStats(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransportError, got %T", err)
	}
	if te.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", te.StatusCode)
	}
	if te.Op != "get_dashboard_stats" {
		t.Errorf("expected op get_dashboard_stats, got %q", te.Op)
	}
}

func TestGet_MalformedBodyBecomesTransportError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	})

	_, err := client.GetLLMMetrics(context.Background())
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransportError for parse failure, got %v", err)
	}
}

func TestSubmitIngest(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/fnol-ingest" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
		var payload domain.IngestPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decoding payload: %v", err)
		}
		if payload.Subject != "water damage" {
			t.Errorf("expected subject round-trip, got %q", payload.Subject)
		}
		json.NewEncoder(w).Encode(map[string]string{"fnol_id": "F99"})
	})

	ack, err := client.SubmitIngest(context.Background(), domain.IngestPayload{
		Subject:    "water damage",
		Sender:     "claims@example.com",
		ReceivedAt: "2024-01-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("SubmitIngest: %v", err)
	}

	var parsed map[string]string
	if err := json.Unmarshal(ack, &parsed); err != nil {
		t.Fatalf("acknowledgement is not JSON: %v", err)
	}
	if parsed["fnol_id"] != "F99" {
		t.Errorf("expected acknowledgement passthrough, got %v", parsed)
	}
}
