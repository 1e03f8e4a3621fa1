package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"devcatalyst/internal/domain"
)

// Per-check deadlines.
const (
	connectivityTimeout  = 10 * time.Second
	adminProbeTimeout    = 5 * time.Second
	defaultCheckTimeout  = 15 * time.Second
	corsFailureHint      = "Check CORS_ALLOWED_ORIGINS in backend settings"
	probeCredentialsHint = "PROBE_USERNAME and PROBE_PASSWORD are not set"
)

// DiagnosticsConfig describes the deployment being diagnosed.
type DiagnosticsConfig struct {
	APIURL        string
	PublicURL     string
	Environment   string
	ProbeUsername string
	ProbePassword string
	CheckTimeout  time.Duration
}

type diagnosticsService struct {
	backend domain.Backend
	prober  domain.Prober
	cfg     DiagnosticsConfig
	now     func() time.Time
}

// NewDiagnosticsService returns a service that runs connectivity checks against the content API.
func NewDiagnosticsService(backend domain.Backend, prober domain.Prober, cfg DiagnosticsConfig) domain.DiagnosticsService {
	if cfg.CheckTimeout <= 0 {
		cfg.CheckTimeout = defaultCheckTimeout
	}
	return &diagnosticsService{backend: backend, prober: prober, cfg: cfg, now: time.Now}
}

type check func(ctx context.Context) domain.CheckResult

// Run executes the suite's checks concurrently. The report keeps the suite's order.
func (s *diagnosticsService) Run(ctx context.Context, suite domain.Suite) (*domain.DiagnosticsReport, error) {
	var checks []check
	switch suite {
	case domain.SuiteConnection:
		checks = []check{s.basicConnectivity, s.eventsEndpoint, s.adminLogin}
	case domain.SuiteDebug:
		checks = []check{s.environment, s.backendConnectivity, s.cors, s.adminEndpoint}
	default:
		return nil, fmt.Errorf("%w: unknown diagnostics suite %q", domain.ErrValidation, suite)
	}

	report := &domain.DiagnosticsReport{
		Suite:       suite,
		APIURL:      s.cfg.APIURL,
		PublicURL:   s.cfg.PublicURL,
		Environment: s.cfg.Environment,
		StartedAt:   s.now().UTC(),
		Checks:      make([]domain.CheckResult, len(checks)),
	}
	var g errgroup.Group
	for i, c := range checks {
		g.Go(func() error {
			start := time.Now()
			res := c(ctx)
			res.DurationMS = time.Since(start).Milliseconds()
			report.Checks[i] = res
			return nil
		})
	}
	_ = g.Wait()
	return report, nil
}

func (s *diagnosticsService) basicConnectivity(ctx context.Context) domain.CheckResult {
	return s.ping(ctx, "Basic Connectivity", s.cfg.CheckTimeout)
}

func (s *diagnosticsService) backendConnectivity(ctx context.Context) domain.CheckResult {
	return s.ping(ctx, "Backend Connectivity", connectivityTimeout)
}

func (s *diagnosticsService) ping(ctx context.Context, name string, timeout time.Duration) domain.CheckResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	res, err := s.backend.Ping(ctx)
	if err != nil {
		return failed(name, err)
	}
	return domain.CheckResult{
		Name:       name,
		Status:     domain.CheckPass,
		HTTPStatus: http.StatusOK,
		Detail:     map[string]any{"status": res.Status, "endpoints": res.Endpoints},
	}
}

func (s *diagnosticsService) eventsEndpoint(ctx context.Context) domain.CheckResult {
	const name = "Events Endpoint"
	ctx, cancel := context.WithTimeout(ctx, s.cfg.CheckTimeout)
	defer cancel()
	events, err := s.backend.ListEvents(ctx, "")
	if err != nil {
		return failed(name, err)
	}
	return domain.CheckResult{
		Name:       name,
		Status:     domain.CheckPass,
		HTTPStatus: http.StatusOK,
		Detail:     map[string]any{"count": len(events)},
	}
}

func (s *diagnosticsService) adminLogin(ctx context.Context) domain.CheckResult {
	const name = "Admin Login"
	if s.cfg.ProbeUsername == "" || s.cfg.ProbePassword == "" {
		return domain.CheckResult{Name: name, Status: domain.CheckInfo, Detail: map[string]any{"skipped": probeCredentialsHint}}
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.CheckTimeout)
	defer cancel()
	res, err := s.backend.Login(ctx, s.cfg.ProbeUsername, s.cfg.ProbePassword)
	if err != nil {
		return failed(name, err)
	}
	if !res.Success {
		return domain.CheckResult{Name: name, Status: domain.CheckFail, HTTPStatus: http.StatusOK, Error: res.Message}
	}
	// The probe session is not needed past this point.
	if res.Token != "" {
		_ = s.backend.Logout(ctx, res.Token)
	}
	detail := map[string]any{"success": true}
	if res.User != nil {
		detail["username"] = res.User.Username
	}
	return domain.CheckResult{Name: name, Status: domain.CheckPass, HTTPStatus: http.StatusOK, Detail: detail}
}

func (s *diagnosticsService) environment(context.Context) domain.CheckResult {
	return domain.CheckResult{
		Name:   "Environment Detection",
		Status: domain.CheckInfo,
		Detail: map[string]any{
			"environment":   s.cfg.Environment,
			"api_url":       s.cfg.APIURL,
			"public_url":    s.cfg.PublicURL,
			"is_production": s.cfg.Environment == "production",
		},
	}
}

// cors passes when the API answers with an Access-Control-Allow-Origin that admits the console.
func (s *diagnosticsService) cors(ctx context.Context) domain.CheckResult {
	const name = "CORS Configuration"
	ctx, cancel := context.WithTimeout(ctx, s.cfg.CheckTimeout)
	defer cancel()
	resp, err := s.prober.Probe(ctx, domain.ProbeRequest{
		Method: http.MethodGet,
		Path:   "/test/",
		Header: http.Header{"Origin": []string{s.cfg.PublicURL}},
	})
	if err != nil {
		res := failed(name, err)
		res.Detail = map[string]any{"suggestion": corsFailureHint}
		return res
	}
	allowed := resp.Header.Get("Access-Control-Allow-Origin")
	res := domain.CheckResult{
		Name:       name,
		HTTPStatus: resp.StatusCode,
		Detail:     map[string]any{"origin": s.cfg.PublicURL, "allow_origin": allowed},
	}
	switch {
	case resp.StatusCode >= http.StatusBadRequest:
		res.Status = domain.CheckFail
		res.Error = fmt.Sprintf("HTTP %d", resp.StatusCode)
		res.Detail["suggestion"] = corsFailureHint
	case allowed == "*" || (allowed != "" && allowed == s.cfg.PublicURL):
		res.Status = domain.CheckPass
	default:
		res.Status = domain.CheckFail
		res.Error = "origin not allowed"
		res.Detail["suggestion"] = corsFailureHint
	}
	return res
}

// adminEndpoint posts throwaway credentials. Any answer below 500 means the endpoint is alive.
func (s *diagnosticsService) adminEndpoint(ctx context.Context) domain.CheckResult {
	const name = "Admin Endpoint"
	ctx, cancel := context.WithTimeout(ctx, adminProbeTimeout)
	defer cancel()
	resp, err := s.prober.Probe(ctx, domain.ProbeRequest{
		Method: http.MethodPost,
		Path:   "/admin/login/",
		Body:   map[string]string{"username": "test", "password": "test"},
	})
	if err != nil {
		return failed(name, err)
	}
	res := domain.CheckResult{Name: name, HTTPStatus: resp.StatusCode}
	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		res.Status = domain.CheckFail
		res.Error = fmt.Sprintf("HTTP %d", resp.StatusCode)
		res.Detail = bodyDetail(resp.Body)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
		res.Status = domain.CheckPass
		res.Detail = map[string]any{"endpoint": "Login endpoint rejects invalid credentials as expected"}
	default:
		res.Status = domain.CheckPass
		res.Detail = map[string]any{"endpoint": "Login endpoint responding"}
	}
	return res
}

func failed(name string, err error) domain.CheckResult {
	res := domain.CheckResult{Name: name, Status: domain.CheckFail, HTTPStatus: domain.BackendStatus(err), Error: err.Error()}
	if errors.Is(err, context.DeadlineExceeded) {
		res.Error = "timed out: " + err.Error()
	}
	return res
}

func bodyDetail(body []byte) map[string]any {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return map[string]any{"response": string(body)}
	}
	return map[string]any{"response": v}
}
