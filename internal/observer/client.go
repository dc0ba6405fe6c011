// Package observer provides a client for fetching growth statistics from
// the fediverse.observer GraphQL API.
package observer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fedigraph/internal/model"
)

const (
	// DefaultBaseURL is the public fediverse.observer endpoint.
	DefaultBaseURL = "https://api.fediverse.observer/"

	requestTimeout = 10 * time.Second
	maxBodySize    = 8 << 20 // 8 MB; the full history is a few hundred KB
)

// monthlyStatsQuery fetches the whole monthlystats history. The API has no
// server-side filtering; grouping and range selection happen locally.
const monthlyStatsQuery = `{
  monthlystats{
    id
    total_users
    date_checked
  }
}`

// Client fetches monthly growth statistics over GraphQL.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given endpoint. An empty baseURL uses
// DefaultBaseURL.
func NewClient(baseURL string) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// FetchMonthlyStats posts the stats query and returns the decoded records.
// Any non-2xx status, transport failure, GraphQL error, or unexpected
// response structure is fatal for the invocation; there is no retry.
func (c *Client) FetchMonthlyStats(ctx context.Context) ([]model.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	payload, err := json.Marshal(graphqlRequest{Query: monthlyStatsQuery})
	if err != nil {
		return nil, fmt.Errorf("observer: encoding query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("observer: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("observer: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("observer: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("observer: query failed with status %d: %s", resp.StatusCode, bodySnippet(body))
	}

	var decoded statsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("observer: parsing response: %w", err)
	}
	if len(decoded.Errors) > 0 {
		return nil, fmt.Errorf("observer: query error: %s", decoded.Errors[0].Message)
	}
	if decoded.Data == nil || decoded.Data.MonthlyStats == nil {
		return nil, fmt.Errorf("observer: response does not have the expected structure")
	}

	return decoded.Data.MonthlyStats, nil
}

// bodySnippet trims a response body for inclusion in error messages.
func bodySnippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
