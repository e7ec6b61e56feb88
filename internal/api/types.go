// Package api defines the JSON request and response bodies of the public HTTP API.
package api

import "time"

// HealthStatusHealthy is the only status reported by the health endpoint.
const HealthStatusHealthy = "healthy"

// ErrorResponse is returned for every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ResearchCompanyRequest is the body of POST /research_company.
type ResearchCompanyRequest struct {
	CompanyInput string `json:"company_input"`
}

// ResearchCompanyResponse is the profile returned by POST /research_company.
type ResearchCompanyResponse struct {
	Input        string            `json:"input"`
	ResolvedInfo string            `json:"resolved_info"`
	Timestamp    string            `json:"timestamp"`
	Sections     map[string]string `json:"sections"`
}

// FormatTimestamp renders t as ISO 8601 (RFC 3339 with fractional seconds when present).
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
