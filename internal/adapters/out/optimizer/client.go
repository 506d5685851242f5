// Package optimizer is the HTTP adapter for the external route-optimization
// service. It translates the dispatch core's vehicles and shipments into the
// service's JSON contract and maps every transport-level failure onto
// ports.ErrOptimizerUnavailable. The client never retries; transient failures
// are retried by the job runner that invoked the optimization.
package optimizer

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

	"medrush/internal/core/ports"
)

const optimizePath = "/v1/routes:optimize"

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("code %d: %s", e.Code, e.Body)
}

// Client calls the remote optimization service. Safe for concurrent use.
type Client struct {
	session *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates an optimizer client. Both the base URL and the API key
// are required; a client constructed without credentials would fail every
// job that touches the optimizer.
func NewClient(baseURL string, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is empty", ports.ErrOptimizerUnavailable)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: api key is empty", ports.ErrOptimizerUnavailable)
	}

	return &Client{
		session: &http.Client{Timeout: 60 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}, nil
}

// Optimize submits one optimization request and decodes the per-vehicle
// routes from the answer. Any failure to reach the service, a non-success
// status, or an undecodable body surfaces as ports.ErrOptimizerUnavailable.
func (c *Client) Optimize(
	ctx context.Context,
	vehicles []ports.Vehicle,
	shipments []ports.Shipment,
	globalStart time.Time,
	globalEnd time.Time,
) (*ports.OptimizationResult, error) {
	payload, err := json.Marshal(requestFromDomain(vehicles, shipments, globalStart, globalEnd))
	if err != nil {
		return nil, fmt.Errorf("encode optimize request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+optimizePath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ports.ErrOptimizerUnavailable, err)
	}
	defer resp.Body.Close()

	var decoded optimizeResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ports.ErrOptimizerUnavailable, err)
	}

	result, err := decoded.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrOptimizerUnavailable, err)
	}
	return result, nil
}

func (c *Client) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}
