package services

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"devcatalyst/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProber answers probes by path.
type fakeProber struct {
	mu        sync.Mutex
	responses map[string]*domain.ProbeResponse
	errs      map[string]error
	seen      []domain.ProbeRequest
}

func (f *fakeProber) Probe(_ context.Context, req domain.ProbeRequest) (*domain.ProbeResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, req)
	if err := f.errs[req.Path]; err != nil {
		return nil, err
	}
	return f.responses[req.Path], nil
}

func (f *fakeProber) BaseURL() string { return "http://api.test/api" }

var ignoreDuration = cmpopts.IgnoreFields(domain.CheckResult{}, "DurationMS")

func diagConfig() DiagnosticsConfig {
	return DiagnosticsConfig{
		APIURL:      "http://api.test/api",
		PublicURL:   "https://devcatalyst.dev",
		Environment: "production",
	}
}

func TestDiagnosticsService_Connection(t *testing.T) {
	backend := &fakeBackend{
		ping:   &domain.PingResult{Status: "Backend is running!"},
		events: []*domain.Event{{ID: 1}, {ID: 2}},
		login:  &domain.LoginResult{Success: true, Token: "probe-token", User: &domain.AdminUser{Username: "probe"}},
	}
	cfg := diagConfig()
	cfg.ProbeUsername, cfg.ProbePassword = "probe", "secret"
	svc := NewDiagnosticsService(backend, &fakeProber{}, cfg)

	report, err := svc.Run(context.Background(), domain.SuiteConnection)
	require.NoError(t, err)
	assert.True(t, report.Passed())

	want := []domain.CheckResult{
		{Name: "Basic Connectivity", Status: domain.CheckPass, HTTPStatus: 200, Detail: map[string]any{"status": "Backend is running!", "endpoints": map[string]string(nil)}},
		{Name: "Events Endpoint", Status: domain.CheckPass, HTTPStatus: 200, Detail: map[string]any{"count": 2}},
		{Name: "Admin Login", Status: domain.CheckPass, HTTPStatus: 200, Detail: map[string]any{"success": true, "username": "probe"}},
	}
	if diff := cmp.Diff(want, report.Checks, ignoreDuration); diff != "" {
		t.Errorf("checks mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, backend.Calls(), "Logout", "probe session is closed")
}

func TestDiagnosticsService_ConnectionFailures(t *testing.T) {
	backend := &fakeBackend{
		pingErr:       domain.NewBackendError("ping", 0, "connection refused"),
		listEventsErr: domain.NewBackendError("list events", 500, ""),
	}
	svc := NewDiagnosticsService(backend, &fakeProber{}, diagConfig())

	report, err := svc.Run(context.Background(), domain.SuiteConnection)
	require.NoError(t, err)
	assert.False(t, report.Passed())
	require.Len(t, report.Checks, 3)
	assert.Equal(t, domain.CheckFail, report.Checks[0].Status)
	assert.Equal(t, 0, report.Checks[0].HTTPStatus)
	assert.Equal(t, domain.CheckFail, report.Checks[1].Status)
	assert.Equal(t, 500, report.Checks[1].HTTPStatus)
	assert.Equal(t, domain.CheckInfo, report.Checks[2].Status, "no probe credentials skips login")
	assert.NotContains(t, backend.Calls(), "Login")
}

func TestDiagnosticsService_DebugAdminProbe(t *testing.T) {
	tests := []struct {
		status int
		want   domain.CheckStatus
	}{
		{http.StatusBadRequest, domain.CheckPass},
		{http.StatusUnauthorized, domain.CheckPass},
		{http.StatusMethodNotAllowed, domain.CheckPass},
		{http.StatusOK, domain.CheckPass},
		{http.StatusInternalServerError, domain.CheckFail},
		{http.StatusBadGateway, domain.CheckFail},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			prober := &fakeProber{responses: map[string]*domain.ProbeResponse{
				"/test/":        {StatusCode: 200, Header: http.Header{"Access-Control-Allow-Origin": []string{"*"}}},
				"/admin/login/": {StatusCode: tt.status, Body: []byte(`{"detail":"x"}`)},
			}}
			backend := &fakeBackend{ping: &domain.PingResult{Status: "ok"}}
			svc := NewDiagnosticsService(backend, prober, diagConfig())

			report, err := svc.Run(context.Background(), domain.SuiteDebug)
			require.NoError(t, err)
			require.Len(t, report.Checks, 4)
			assert.Equal(t, "Admin Endpoint", report.Checks[3].Name)
			assert.Equal(t, tt.want, report.Checks[3].Status)
			assert.Equal(t, tt.status, report.Checks[3].HTTPStatus)
		})
	}
}

func TestDiagnosticsService_DebugCORS(t *testing.T) {
	tests := []struct {
		name string
		resp *domain.ProbeResponse
		err  error
		want domain.CheckStatus
	}{
		{"wildcard", &domain.ProbeResponse{StatusCode: 200, Header: http.Header{"Access-Control-Allow-Origin": []string{"*"}}}, nil, domain.CheckPass},
		{"echo", &domain.ProbeResponse{StatusCode: 200, Header: http.Header{"Access-Control-Allow-Origin": []string{"https://devcatalyst.dev"}}}, nil, domain.CheckPass},
		{"other origin", &domain.ProbeResponse{StatusCode: 200, Header: http.Header{"Access-Control-Allow-Origin": []string{"https://elsewhere.dev"}}}, nil, domain.CheckFail},
		{"missing header", &domain.ProbeResponse{StatusCode: 200, Header: http.Header{}}, nil, domain.CheckFail},
		{"http error", &domain.ProbeResponse{StatusCode: 500, Header: http.Header{"Access-Control-Allow-Origin": []string{"*"}}}, nil, domain.CheckFail},
		{"unreachable", nil, domain.NewBackendError("probe /test/", 0, "refused"), domain.CheckFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prober := &fakeProber{
				responses: map[string]*domain.ProbeResponse{
					"/test/":        tt.resp,
					"/admin/login/": {StatusCode: 401},
				},
				errs: map[string]error{"/test/": tt.err},
			}
			svc := NewDiagnosticsService(&fakeBackend{ping: &domain.PingResult{}}, prober, diagConfig())

			report, err := svc.Run(context.Background(), domain.SuiteDebug)
			require.NoError(t, err)
			cors := report.Checks[2]
			assert.Equal(t, "CORS Configuration", cors.Name)
			assert.Equal(t, tt.want, cors.Status)
			if tt.want == domain.CheckFail {
				assert.Equal(t, corsFailureHint, cors.Detail["suggestion"])
			}
		})
	}
}

func TestDiagnosticsService_DebugReport(t *testing.T) {
	prober := &fakeProber{responses: map[string]*domain.ProbeResponse{
		"/test/":        {StatusCode: 200, Header: http.Header{"Access-Control-Allow-Origin": []string{"*"}}},
		"/admin/login/": {StatusCode: 400},
	}}
	svc := NewDiagnosticsService(&fakeBackend{ping: &domain.PingResult{Status: "ok"}}, prober, diagConfig()).(*diagnosticsService)
	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return started }

	report, err := svc.Run(context.Background(), domain.SuiteDebug)
	require.NoError(t, err)
	assert.Equal(t, started, report.StartedAt)
	assert.Equal(t, "https://devcatalyst.dev", report.PublicURL)

	names := make([]string, len(report.Checks))
	for i, c := range report.Checks {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Environment Detection", "Backend Connectivity", "CORS Configuration", "Admin Endpoint"}, names)
	assert.Equal(t, domain.CheckInfo, report.Checks[0].Status)
	assert.True(t, report.Passed())

	for _, req := range prober.seen {
		if req.Path == "/test/" {
			assert.Equal(t, "https://devcatalyst.dev", req.Header.Get("Origin"))
		}
	}
}

func TestDiagnosticsService_UnknownSuite(t *testing.T) {
	svc := NewDiagnosticsService(&fakeBackend{}, &fakeProber{}, diagConfig())
	_, err := svc.Run(context.Background(), domain.Suite("nope"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}
