package leadform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wolfman30/lead-capture/internal/leads"
)

const maxResponseBytes = 1 << 20

// ServerError is a non-success response from the submission endpoint.
// Message holds the server-provided "error" text and may be empty.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("leadform: endpoint returned %d", e.StatusCode)
	}
	return fmt.Sprintf("leadform: endpoint returned %d: %s", e.StatusCode, e.Message)
}

// NetworkError wraps a transport failure: the request never produced a response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "leadform: network error: " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

// Client posts lead submissions to the endpoint. It never retries.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
}

// NewClient builds a client for the given endpoint URL.
func NewClient(endpoint string, opts ...func(*Client)) *Client {
	c := &Client{
		Endpoint:   strings.TrimSpace(endpoint),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTimeout sets the whole-request timeout.
func WithTimeout(d time.Duration) func(*Client) {
	return func(c *Client) {
		if d > 0 {
			c.HTTPClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) func(*Client) {
	return func(c *Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

type submitResponse struct {
	Success bool        `json:"success"`
	Data    *leads.Lead `json:"data"`
	Error   string      `json:"error"`
}

// Submit sends one request. A 2xx response with a JSON body is success; the
// returned lead is nil when the endpoint answered `"data": null`. A 2xx body
// that is not JSON is reported as a NetworkError.
func (c *Client) Submit(ctx context.Context, req leads.SubmitLeadRequest) (*leads.Lead, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("leadform: marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("leadform: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	var decoded submitResponse
	decodeErr := json.Unmarshal(body, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		serverErr := &ServerError{StatusCode: resp.StatusCode}
		if decodeErr == nil {
			serverErr.Message = strings.TrimSpace(decoded.Error)
		}
		return nil, serverErr
	}
	if decodeErr != nil {
		return nil, &NetworkError{Err: fmt.Errorf("decode response: %w", decodeErr)}
	}
	return decoded.Data, nil
}

// IsNetworkError reports whether err came from the transport rather than the server.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
