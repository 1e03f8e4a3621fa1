package domain

import (
	"context"
	"time"
)

// CheckStatus is the outcome of a single diagnostic check.
type CheckStatus string

const (
	CheckPass CheckStatus = "PASS"
	CheckFail CheckStatus = "FAIL"
	CheckInfo CheckStatus = "INFO"
)

// Suite selects which diagnostic checks run.
type Suite string

const (
	// SuiteConnection is the admin connection test: health, events, admin login.
	SuiteConnection Suite = "connection"
	// SuiteDebug is the production debug page: environment, health, CORS, admin endpoint.
	SuiteDebug Suite = "debug"
)

// CheckResult is one row of a diagnostics report.
// swagger:model CheckResult
type CheckResult struct {
	Name       string         `json:"name"`
	Status     CheckStatus    `json:"status"`
	HTTPStatus int            `json:"http_status,omitempty"`
	DurationMS int64          `json:"duration_ms"`
	Error      string         `json:"error,omitempty"`
	Detail     map[string]any `json:"detail,omitempty"`
}

// DiagnosticsReport is the outcome of a diagnostics run.
// swagger:model DiagnosticsReport
type DiagnosticsReport struct {
	Suite       Suite         `json:"suite"`
	APIURL      string        `json:"api_url"`
	PublicURL   string        `json:"public_url"`
	Environment string        `json:"environment"`
	StartedAt   time.Time     `json:"started_at"`
	Checks      []CheckResult `json:"checks"`
}

// Passed is true when no check failed.
func (r *DiagnosticsReport) Passed() bool {
	for _, c := range r.Checks {
		if c.Status == CheckFail {
			return false
		}
	}
	return true
}

// DiagnosticsService runs connectivity checks against the content API.
type DiagnosticsService interface {
	Run(ctx context.Context, suite Suite) (*DiagnosticsReport, error)
}
