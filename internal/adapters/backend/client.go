package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gojektech/heimdall/v6/httpclient"

	"devcatalyst/internal/domain"
)

// maxBodyBytes bounds how much of a response is read into memory.
const maxBodyBytes = 4 << 20

// Client talks to the DevCatalyst content API.
type Client struct {
	baseURL string
	http    *httpclient.Client
}

// NewClient returns a client for the API rooted at baseURL. Calls never retry.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http: httpclient.NewClient(
			httpclient.WithHTTPTimeout(timeout),
			httpclient.WithRetryCount(0),
		),
	}
}

var (
	_ domain.Backend = (*Client)(nil)
	_ domain.Prober  = (*Client)(nil)
)

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ListEvents(ctx context.Context, token string) ([]*domain.Event, error) {
	var events []*domain.Event
	if err := c.getList(ctx, "list events", "/events/", token, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) CreateEvent(ctx context.Context, token string, in domain.EventInput) (*domain.Event, error) {
	var e domain.Event
	if err := c.do(ctx, "create event", http.MethodPost, "/events/", token, in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) UpdateEvent(ctx context.Context, token string, id int64, in domain.EventInput) (*domain.Event, error) {
	var e domain.Event
	if err := c.do(ctx, "update event", http.MethodPut, fmt.Sprintf("/events/%d/", id), token, in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) DeleteEvent(ctx context.Context, token string, id int64) error {
	return c.do(ctx, "delete event", http.MethodDelete, fmt.Sprintf("/events/%d/", id), token, nil, nil)
}

func (c *Client) ListGallery(ctx context.Context, token string) ([]*domain.GalleryItem, error) {
	var items []*domain.GalleryItem
	if err := c.getList(ctx, "list gallery", "/gallery/", token, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateGalleryItem(ctx context.Context, token string, in domain.GalleryInput) (*domain.GalleryItem, error) {
	var it domain.GalleryItem
	if err := c.do(ctx, "create gallery item", http.MethodPost, "/gallery/", token, in, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *Client) UpdateGalleryItem(ctx context.Context, token string, id int64, in domain.GalleryInput) (*domain.GalleryItem, error) {
	var it domain.GalleryItem
	if err := c.do(ctx, "update gallery item", http.MethodPut, fmt.Sprintf("/gallery/%d/", id), token, in, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *Client) DeleteGalleryItem(ctx context.Context, token string, id int64) error {
	return c.do(ctx, "delete gallery item", http.MethodDelete, fmt.Sprintf("/gallery/%d/", id), token, nil, nil)
}

func (c *Client) Register(ctx context.Context, in domain.RegistrationInput) (*domain.Registration, error) {
	var r domain.Registration
	if err := c.do(ctx, "register", http.MethodPost, "/register/", "", in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Login posts admin credentials. A 200 reply with success=false is returned
// as a result, not an error.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var res domain.LoginResult
	if err := c.do(ctx, "admin login", http.MethodPost, "/admin/login/", "", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, "admin logout", http.MethodPost, "/admin/logout/", token, nil, nil)
}

func (c *Client) Dashboard(ctx context.Context, token string) (*domain.DashboardSummary, error) {
	var env struct {
		Success bool                     `json:"success"`
		Data    *domain.DashboardSummary `json:"data"`
		Message string                   `json:"message"`
	}
	if err := c.do(ctx, "admin dashboard", http.MethodGet, "/admin/dashboard/", token, nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		msg := env.Message
		if msg == "" {
			msg = "response has no data"
		}
		return nil, fmt.Errorf("admin dashboard: %s", msg)
	}
	return env.Data, nil
}

func (c *Client) Ping(ctx context.Context) (*domain.PingResult, error) {
	var res domain.PingResult
	if err := c.do(ctx, "ping", http.MethodGet, "/test/", "", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Probe sends a raw request and reports whatever came back.
// Only transport failures are returned as errors.
func (c *Client) Probe(ctx context.Context, pr domain.ProbeRequest) (*domain.ProbeResponse, error) {
	req, err := c.newRequest(ctx, pr.Method, pr.Path, "", pr.Body)
	if err != nil {
		return nil, err
	}
	for k, vs := range pr.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.NewBackendError("probe "+pr.Path, 0, err.Error())
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("probe %s: read body: %w", pr.Path, err)
	}
	return &domain.ProbeResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       raw,
		Duration:   time.Since(start),
	}, nil
}

// getList accepts a bare JSON array or a paginated {"results": [...]} page.
func (c *Client) getList(ctx context.Context, op, path, token string, out any) error {
	var raw json.RawMessage
	if err := c.do(ctx, op, http.MethodGet, path, token, nil, &raw); err != nil {
		return err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var page struct {
			Results json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
		trimmed = page.Results
	}
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, op, method, path, token string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, token, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return domain.NewBackendError(op, 0, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%s: read body: %w", op, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return domain.NewBackendError(op, resp.StatusCode, extractMessage(raw))
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	return req, nil
}
