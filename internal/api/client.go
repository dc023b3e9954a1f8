// Package api is the typed client for the FNOL backend REST contract.
// Each method issues exactly one request; retry and caching policy live in
// the query layer so transport stays independently testable.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecazzaniga/fnolwatch/internal/domain"
)

// Client talks to one FNOL backend instance.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// ListParams are the query parameters of GET /api/fnols. Zero-valued optional
// filters are omitted from the request.
type ListParams struct {
	Page     int
	PageSize int
	Status   string
	Search   string
	DateFrom string
	DateTo   string
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(p.Page))
	v.Set("page_size", strconv.Itoa(p.PageSize))
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.DateFrom != "" {
		v.Set("date_from", p.DateFrom)
	}
	if p.DateTo != "" {
		v.Set("date_to", p.DateTo)
	}
	return v
}

// ListFNOLs fetches one page of the FNOL processing log.
func (c *Client) ListFNOLs(ctx context.Context, p ListParams) (*domain.ListResponse, error) {
	var out domain.ListResponse
	if err := c.get(ctx, "list_fnols", "/api/fnols", p.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFNOLDetail fetches the trace, stage executions and LLM metrics for one case.
func (c *Client) GetFNOLDetail(ctx context.Context, fnolID string) (*domain.Detail, error) {
	var out domain.Detail
	path := "/api/fnols/" + url.PathEscape(fnolID)
	if err := c.get(ctx, "get_fnol_detail", path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLLMMetrics fetches the LLM usage overview.
func (c *Client) GetLLMMetrics(ctx context.Context) (*domain.MetricsOverview, error) {
	var out domain.MetricsOverview
	if err := c.get(ctx, "get_llm_metrics", "/api/metrics/llm", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFailureAnalytics fetches failure aggregates by stage, code and day.
func (c *Client) GetFailureAnalytics(ctx context.Context) (*domain.FailureAnalytics, error) {
	var out domain.FailureAnalytics
	if err := c.get(ctx, "get_failure_analytics", "/api/analytics/failures", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDashboardStats fetches today's intake summary.
func (c *Client) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var out domain.DashboardStats
	if err := c.get(ctx, "get_dashboard_stats", "/api/dashboard/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitIngest posts a parsed intake payload. The acknowledgement shape is
// backend-defined, so it is returned raw.
func (c *Client) SubmitIngest(ctx context.Context, payload domain.IngestPayload) (json.RawMessage, error) {
	const op = "submit_ingest"

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("encoding payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/fnol-ingest", bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	return json.RawMessage(raw), nil
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
