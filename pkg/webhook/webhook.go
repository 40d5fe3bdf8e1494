// Package webhook publishes inspection reports to HTTP endpoints such as a
// LIMS ingestion hook.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ccollicutt/xrdscan/pkg/output"
)

// DefaultTimeout applies when SendOptions.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// maxBody caps how much of an endpoint's reply is kept.
const maxBody = 1 << 20

// Event names sent in the EventHeader header.
const (
	EventHeader    = "X-Xrdscan-Event"
	EventCompleted = "inspect.completed"
	EventFailed    = "inspect.failed"
)

// Event returns the event name for a report.
func Event(report *output.Report) string {
	if report.HasFailures() {
		return EventFailed
	}
	return EventCompleted
}

// Client posts inspection reports to webhook endpoints.
type Client struct {
	http      *http.Client
	userAgent string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a webhook client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http:      &http.Client{},
		userAgent: "xrdscan-webhook",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendOptions addresses one endpoint.
type SendOptions struct {
	URL     string
	Token   string        // bearer token, optional
	Timeout time.Duration // DefaultTimeout if zero
}

// Response is the outcome of one delivery.
type Response struct {
	StatusCode int
	Body       string
	Duration   time.Duration
	Error      error
}

// Success reports a delivery that got a 2xx reply.
func (r *Response) Success() bool {
	return r.Error == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Send posts report as JSON to opts.URL. It never returns nil; transport
// and HTTP status failures are recorded in Response.Error.
func (c *Client) Send(ctx context.Context, report *output.Report, opts SendOptions) *Response {
	start := time.Now()
	resp := c.deliver(ctx, report, opts)
	resp.Duration = time.Since(start)
	return resp
}

func (c *Client) deliver(ctx context.Context, report *output.Report, opts SendOptions) *Response {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := c.newRequest(ctx, report, opts)
	if err != nil {
		return &Response{Error: err}
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return &Response{Error: fmt.Errorf("request failed: %w", err)}
	}
	defer httpResp.Body.Close()

	resp := &Response{StatusCode: httpResp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBody))
	if err != nil {
		resp.Error = fmt.Errorf("failed to read response: %w", err)
		return resp
	}
	resp.Body = string(body)

	if resp.StatusCode >= 400 {
		resp.Error = fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return resp
}

func (c *Client) newRequest(ctx context.Context, report *output.Report, opts SendOptions) (*http.Request, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(EventHeader, Event(report))
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}
	return req, nil
}
