package observer

import "fedigraph/internal/model"

// graphqlRequest is the POST body: a raw query string, no variables.
type graphqlRequest struct {
	Query string `json:"query"`
}

// statsResponse is the raw API response envelope.
type statsResponse struct {
	Data   *statsData     `json:"data"`
	Errors []graphqlError `json:"errors"`
}

type statsData struct {
	MonthlyStats []model.Record `json:"monthlystats"`
}

type graphqlError struct {
	Message string `json:"message"`
}
