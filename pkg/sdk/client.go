package atlas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Option configures the Client.
type Option interface {
	apply(*Client)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*Client)

func (f optionFunc) apply(c *Client) { f(c) }

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *Client) {
		c.apiKey = key
	})
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *Client) {
		c.http = hc
	})
}

// WithTimeout sets the per-request timeout. Ignored when WithHTTPClient
// is also given.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *Client) {
		c.timeout = d
	})
}

// Client talks to the atlas query API.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *http.Client
}

// New creates a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: 30 * time.Second,
	}
	for _, o := range opts {
		o.apply(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c
}

// Query resolves a free-text spatial query. On pipeline degradation the
// server returns a 5xx status together with a usable fallback body; both
// the Response and an *APIError are returned in that case, so callers can
// render the fallback while reporting the failure.
func (c *Client) Query(ctx context.Context, req QueryRequest) (Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("marshal query: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/v1/query", bytes.NewReader(body),
	)
	if err != nil {
		return Response{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("query: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= http.StatusInternalServerError {
		// Degraded pipeline: body is still an AtlasResponse fallback
		var resp Response
		if decErr := json.NewDecoder(httpResp.Body).Decode(&resp); decErr != nil {
			return Response{}, &APIError{StatusCode: httpResp.StatusCode}
		}
		return resp, &APIError{StatusCode: httpResp.StatusCode, Code: "degraded", Message: resp.Summary}
	}

	if httpResp.StatusCode != http.StatusOK {
		return Response{}, decodeAPIError(httpResp)
	}

	var resp Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return Response{}, fmt.Errorf("decode response: %w", err)
	}
	return resp, nil
}

// Health returns the server health report. A degraded report comes back
// with a nil error; only transport and decode failures are errors.
func (c *Client) Health(ctx context.Context) (HealthReport, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return HealthReport{}, fmt.Errorf("build request: %w", err)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return HealthReport{}, fmt.Errorf("health: %w", err)
	}
	defer httpResp.Body.Close()

	var report HealthReport
	if err := json.NewDecoder(httpResp.Body).Decode(&report); err != nil {
		return HealthReport{}, fmt.Errorf("decode health: %w", err)
	}
	return report, nil
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	}
	return apiErr
}
