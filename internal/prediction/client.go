// Package prediction talks to the SOC prediction service.
package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"socpredict/internal/apperrors"
	"socpredict/internal/features"
)

const (
	DefaultEndpoint       = "http://127.0.0.1:8000/predict/"
	DefaultHealthEndpoint = "http://127.0.0.1:8000/health/"
)

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 1 << 20

// Client posts feature records to the prediction endpoint.
type Client struct {
	endpoint       string
	healthEndpoint string
	httpClient     *http.Client
	logger         *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each request. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient returns a client for endpoint and healthEndpoint. Empty values
// fall back to the local defaults.
func NewClient(endpoint, healthEndpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if healthEndpoint == "" {
		healthEndpoint = DefaultHealthEndpoint
	}
	c := &Client{
		endpoint:       endpoint,
		healthEndpoint: healthEndpoint,
		httpClient:     &http.Client{},
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the prediction URL.
func (c *Client) Endpoint() string { return c.endpoint }

// HealthEndpoint returns the health probe URL.
func (c *Client) HealthEndpoint() string { return c.healthEndpoint }

// envelope is the service response. Keys other than predictions are ignored.
type envelope struct {
	Predictions json.RawMessage `json:"predictions"`
	Message     string          `json:"message"`
}

// Predict submits f and returns the decoded estimates.
//
// An incomplete record fails validation before any request is made. Network
// errors and non-2xx statuses are transport errors. A 2xx response without a
// predictions object is an unexpected response.
func (c *Client) Predict(ctx context.Context, f features.InputFeatures) (*Result, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	reqID := uuid.NewString()
	log := c.logger.With(zap.String("request_id", reqID), zap.String("endpoint", c.endpoint))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewTransport("error building request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("prediction request failed", zap.Error(err))
		return nil, apperrors.NewTransport("error sending request", err)
	}
	defer resp.Body.Close()

	log.Debug("prediction response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, apperrors.NewTransport(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.NewTransport("error reading response", err)
	}

	result, err := decodeResult(data)
	if err != nil {
		log.Warn("unexpected prediction response", zap.Error(err))
		return nil, err
	}
	return result, nil
}

// decodeResult extracts the three estimates. A model whose value is not a
// JSON number is left nil and rendered as N/A.
func decodeResult(data []byte) (*Result, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, apperrors.NewUnexpectedResponse("response is not a JSON object")
	}

	raw := bytes.TrimSpace(env.Predictions)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, apperrors.NewUnexpectedResponse("response has no predictions object")
	}

	var models map[string]json.RawMessage
	if err := json.Unmarshal(raw, &models); err != nil {
		return nil, apperrors.NewUnexpectedResponse("predictions object is malformed")
	}

	return &Result{
		LinearRegression: modelValue(models["LinearRegression"]),
		RandomForest:     modelValue(models["RandomForest"]),
		GradientBoosting: modelValue(models["GradientBoosting"]),
	}, nil
}

func modelValue(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	var v *float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

// HealthStatus is the health endpoint's answer.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Online reports whether the service declared itself ready.
func (h HealthStatus) Online() bool { return h.Status == "ok" }

// Health probes the health endpoint.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthEndpoint, nil)
	if err != nil {
		return HealthStatus{}, apperrors.NewTransport("error building request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return HealthStatus{}, apperrors.NewTransport("error probing health", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return HealthStatus{}, apperrors.NewTransport(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	var status HealthStatus
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&status); err != nil {
		return HealthStatus{}, apperrors.NewUnexpectedResponse("health response is not a JSON object")
	}
	return status, nil
}
