// ABOUTME: HTTP client for the Smart Grocery REST API
// ABOUTME: Attaches bearer tokens, normalizes errors and performs the one-shot token refresh

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// TokenStore is the session state the client reads and, on refresh, writes
type TokenStore interface {
	Tokens() (access, refresh string)
	UpdateTokens(access, refresh string) error
	Clear() error
}

// Client is the API client for the Smart Grocery backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	metrics    *Metrics
	now        func() time.Time

	refreshGroup singleflight.Group
}

// Option configures a Client
type Option func(*Client)

// WithTokens attaches the session whose tokens are sent and refreshed
func WithTokens(tokens TokenStore) Option {
	return func(c *Client) { c.tokens = tokens }
}

// WithTimeout overrides the default 30s request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithMetrics records every request into m
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithClock overrides time.Now for token expiry checks
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a new API client with the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient.Transport = &loggingTransport{next: http.DefaultTransport, metrics: c.metrics}
	return c
}

// BaseURL returns the backend URL this client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Metrics returns the attached recorder, or nil
func (c *Client) Metrics() *Metrics {
	return c.metrics
}

// request describes one call
type request struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	// anonymous calls never carry a token and never trigger a refresh
	anonymous bool
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, request{method: http.MethodPost, path: path, body: body}, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, request{method: http.MethodPut, path: path, body: body}, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, request{method: http.MethodPatch, path: path, body: body}, out)
}

func (c *Client) delete(ctx context.Context, path string, body interface{}) error {
	return c.do(ctx, request{method: http.MethodDelete, path: path, body: body}, nil)
}

// do sends r, refreshing the access token at most once and replaying the
// call at most once when the token turns out to be expired.
func (c *Client) do(ctx context.Context, r request, out interface{}) error {
	access := ""
	if !r.anonymous && c.tokens != nil {
		access, _ = c.tokens.Tokens()
	}

	refreshed := false
	if access != "" && tokenExpired(access, c.now()) {
		fresh, err := c.refresh(ctx, access)
		if err != nil {
			return err
		}
		access = fresh
		refreshed = true
	}

	status, err := c.send(ctx, r, access, out)
	if status != http.StatusUnauthorized || access == "" {
		return err
	}

	if refreshed {
		// A token this fresh was still rejected; refreshing again would loop
		return c.reauth(err)
	}

	fresh, rerr := c.refresh(ctx, access)
	if rerr != nil {
		return rerr
	}

	slog.Debug("Replaying request after token refresh", "method", r.method, "path", r.path)
	status, err = c.send(ctx, r, fresh, out)
	if status == http.StatusUnauthorized {
		return c.reauth(err)
	}
	return err
}

// refresh exchanges the refresh token for a new access token. Concurrent
// callers holding the same stale token share a single exchange.
func (c *Client) refresh(ctx context.Context, stale string) (string, error) {
	v, err, shared := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		current, refreshToken := c.tokens.Tokens()
		if current != "" && current != stale && !tokenExpired(current, c.now()) {
			// Another request already refreshed
			return current, nil
		}
		if refreshToken == "" {
			return nil, c.reauth(errors.New("no refresh token"))
		}

		var resp models.RefreshResponse
		_, err := c.send(ctx, request{
			method:    http.MethodPost,
			path:      "/users/refresh/",
			body:      models.RefreshRequest{Refresh: refreshToken},
			anonymous: true,
		}, "", &resp)
		if err != nil {
			if ctx.Err() != nil {
				// The caller gave up; the refresh token was never rejected
				return nil, err
			}
			return nil, c.reauth(err)
		}
		if resp.Access == "" {
			return nil, c.reauth(errors.New("refresh response carried no access token"))
		}

		if err := c.tokens.UpdateTokens(resp.Access, resp.Refresh); err != nil {
			return nil, err
		}
		slog.Debug("Access token refreshed")
		return resp.Access, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		slog.Debug("Shared token refresh with concurrent request")
	}
	return v.(string), nil
}

// reauth clears the session and returns ErrReauthRequired wrapping cause
func (c *Client) reauth(cause error) error {
	if c.tokens != nil {
		if err := c.tokens.Clear(); err != nil {
			slog.Warn("Failed to clear session after refresh failure", "error", err)
		}
	}
	slog.Info("Session expired, reauthentication required", "cause", cause)
	return fmt.Errorf("%w: %v", ErrReauthRequired, cause)
}

// send performs one HTTP round trip and returns the response status (0 on
// transport failure).
func (c *Client) send(ctx context.Context, r request, access string, out interface{}) (int, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, c.handleErrorResponse(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusResetContent {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return resp.StatusCode, nil
		}
		return resp.StatusCode, fmt.Errorf("invalid response from backend: %w", err)
	}
	return resp.StatusCode, nil
}

// handleRequestError converts HTTP client errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return &NetworkError{Code: CodeNetwork, Msg: "request canceled", Err: ctx.Err()}
	}
	if ctx.Err() == context.DeadlineExceeded {
		return &NetworkError{Code: CodeTimeout, Msg: "request timed out", Err: ctx.Err()}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &NetworkError{Code: CodeTimeout, Msg: "request timed out", Err: err}
	}
	return &NetworkError{
		Code: CodeNetwork,
		Msg:  fmt.Sprintf("cannot connect to backend at %s", c.baseURL),
		Err:  err,
	}
}

// errorBody covers the error shapes the backend produces: {"detail": ...},
// {"error": ..., "details": ...}, {"message": ...} and DRF field maps.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Error   string          `json:"error"`
	Details string          `json:"details"`
	Message string          `json:"message"`
	Code    json.RawMessage `json:"code"`
}

// handleErrorResponse parses a non-2xx response into an APIError
func (c *Client) handleErrorResponse(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Code: codeForStatus(resp.StatusCode)}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return apiErr
	}

	apiErr.Message = firstNonEmpty(rawString(body.Detail), body.Error, body.Message)
	if body.Details != "" && apiErr.Message != "" {
		apiErr.Message += ": " + body.Details
	}
	apiErr.ServerCode = rawString(body.Code)

	if apiErr.Message == "" {
		apiErr.Fields = fieldErrors(data)
	}
	return apiErr
}

// fieldErrors decodes {"field": ["msg", ...]} and {"field": "msg"} bodies
func fieldErrors(data []byte) map[string][]string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	fields := make(map[string][]string)
	for k, v := range raw {
		var list []string
		if err := json.Unmarshal(v, &list); err == nil && len(list) > 0 {
			fields[k] = list
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil && s != "" {
			fields[k] = []string{s}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// rawString accepts a JSON string, or joins a JSON string array
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, " ")
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// idPath joins a collection path and an id with the trailing slash the backend expects
func idPath(collection string, id int) string {
	return fmt.Sprintf("%s%d/", collection, id)
}
