package execution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"execbench/internal/domain"
	"execbench/internal/protocol"
)

// RequestError is a classified failure returned by Client.Execute
type RequestError struct {
	Kind   domain.FailureKind
	Status string // service-reported status when Kind is KindExecutionFailed
	Err    error
}

// Error implements the error interface
func (e *RequestError) Error() string {
	if e.Kind == domain.KindExecutionFailed && e.Status != "" {
		return fmt.Sprintf("request failed with status %q", e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error
func (e *RequestError) Unwrap() error {
	return e.Err
}

// Client sends execution requests to the remote service
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a Client for the given endpoint. The timeout bounds each
// request end to end, including reading the response body. workers sizes the
// connection pool so concurrent workers reuse keep-alive connections.
func NewClient(endpoint string, timeout time.Duration, workers int) *Client {
	if workers < 1 {
		workers = 1
	}
	transport := &http.Transport{
		MaxIdleConns:        workers,
		MaxIdleConnsPerHost: workers,
		IdleConnTimeout:     90 * time.Second,
	}
	return &Client{
		endpoint: endpoint,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Execute sends one request and decodes the response. A single attempt is
// made per request; every failure comes back as a *RequestError carrying the
// failure kind.
func (c *Client) Execute(ctx context.Context, req protocol.ExecutionRequest) (*protocol.ExecutionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &RequestError{Kind: domain.KindProtocol, Err: fmt.Errorf("encode request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &RequestError{Kind: domain.KindTransport, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &RequestError{Kind: domain.KindTransport, Err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &RequestError{Kind: domain.KindTransport, Err: fmt.Errorf("read response: %w", err)}
	}

	if httpResp.StatusCode != http.StatusOK {
		// Rejected requests may still carry a JSON status, keep it when present
		status := httpResp.Status
		var parsed protocol.ExecutionResponse
		if err := json.Unmarshal(respBody, &parsed); err == nil && parsed.Status != "" {
			status = parsed.Status
		}
		return nil, &RequestError{
			Kind:   domain.KindExecutionFailed,
			Status: status,
			Err:    fmt.Errorf("unexpected HTTP status %s", httpResp.Status),
		}
	}

	var parsed protocol.ExecutionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &RequestError{Kind: domain.KindProtocol, Err: fmt.Errorf("decode response: %w", err)}
	}

	if !parsed.Successful() {
		return nil, &RequestError{
			Kind:   domain.KindExecutionFailed,
			Status: parsed.Status,
			Err:    fmt.Errorf("execution finished with status %q", parsed.Status),
		}
	}

	return &parsed, nil
}
