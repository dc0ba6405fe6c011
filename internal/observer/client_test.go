package observer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchMonthlyStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		var req graphqlRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("request body is not a graphql envelope: %v", err)
		}
		if !strings.Contains(req.Query, "monthlystats") {
			t.Errorf("query %q does not request monthlystats", req.Query)
		}

		_, _ = w.Write([]byte(`{"data":{"monthlystats":[
			{"id":1,"total_users":100,"date_checked":"2025-01-01 00:00:00"},
			{"id":2,"total_users":0,"date_checked":"2025-02-01 00:00:00"}
		]}}`))
	}))
	defer srv.Close()

	records, err := NewClient(srv.URL).FetchMonthlyStats(context.Background())
	if err != nil {
		t.Fatalf("FetchMonthlyStats: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	if records[0].ID != 1 || records[0].TotalUsers != 100 || records[0].DateChecked != "2025-01-01 00:00:00" {
		t.Errorf("records[0] = %+v", records[0])
	}
	if records[1].TotalUsers != 0 {
		t.Errorf("records[1].TotalUsers = %d, want 0", records[1].TotalUsers)
	}
}

func TestFetchMonthlyStatsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchMonthlyStats(context.Background())
	if err == nil {
		t.Fatal("expected error on 502")
	}
	if !strings.Contains(err.Error(), "502") || !strings.Contains(err.Error(), "upstream down") {
		t.Errorf("error %q should carry status and body", err)
	}
}

func TestFetchMonthlyStatsMissingStructure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchMonthlyStats(context.Background())
	if err == nil || !strings.Contains(err.Error(), "expected structure") {
		t.Errorf("err = %v, want expected-structure error", err)
	}
}

func TestFetchMonthlyStatsGraphQLError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"field not found"}]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchMonthlyStats(context.Background())
	if err == nil || !strings.Contains(err.Error(), "field not found") {
		t.Errorf("err = %v, want graphql error message surfaced", err)
	}
}

func TestNewClientDefaultsEndpoint(t *testing.T) {
	c := NewClient("  ")
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, DefaultBaseURL)
	}
}
