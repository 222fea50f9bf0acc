// Package backend is the HTTP adapter for the government-services API.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/apunisarkar/sevamcp/internal/domain"
	"github.com/apunisarkar/sevamcp/internal/metrics"
)

// Config holds the backend connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client calls the backend's chatbot endpoints and maps responses into
// domain types. All failures map to domain sentinels so callers can
// dispatch with errors.Is.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New creates a backend client.
func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: trimTrailingSlash(cfg.BaseURL),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// Health probes the backend health endpoint and returns its status string.
func (c *Client) Health(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "health", "/chatbot/health", nil)
	if err != nil {
		return "", err
	}
	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode health: %w", err)
	}
	return resp.Status, nil
}

// Services fetches the full service catalog.
func (c *Client) Services(ctx context.Context) ([]domain.Service, error) {
	body, err := c.get(ctx, "services", "/chatbot/services", nil)
	if err != nil {
		return nil, err
	}
	services, err := decodeServices(body)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Fetched services", zap.Int("count", len(services)))
	return services, nil
}

// ApplicationTimeline fetches the tracking timeline for an application.
func (c *Client) ApplicationTimeline(ctx context.Context, applicationID string) (domain.Timeline, error) {
	path := "/chatbot/application/" + url.PathEscape(applicationID) + "/timeline"
	body, err := c.get(ctx, "timeline", path, nil)
	if err != nil {
		return domain.Timeline{}, err
	}
	var dto timelineDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return domain.Timeline{}, fmt.Errorf("decode timeline: %w", err)
	}
	return dto.toDomain(), nil
}

// Certificate fetches certificate details for an application. A 404
// surfaces the backend's message as a certificate-not-ready error.
func (c *Client) Certificate(ctx context.Context, applicationID string) (domain.Certificate, error) {
	path := "/chatbot/certificate/" + url.PathEscape(applicationID)
	status, body, err := c.do(ctx, "certificate", path, nil)
	if err != nil {
		return domain.Certificate{}, err
	}
	if status == http.StatusNotFound {
		msg := extractMessage(body)
		if msg == "" {
			msg = "Certificate not ready or application not found"
		}
		return domain.Certificate{}, domain.NewCertificateNotReady(msg)
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return domain.Certificate{}, domain.NewStatusError(status)
	}
	var dto certificateDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return domain.Certificate{}, fmt.Errorf("decode certificate: %w", err)
	}
	return dto.toDomain(), nil
}

// SearchByMobile lists applications submitted with a mobile number.
func (c *Client) SearchByMobile(ctx context.Context, mobile string) ([]domain.ApplicationSummary, error) {
	query := url.Values{"mobile": []string{mobile}}
	body, err := c.get(ctx, "search", "/chatbot/search", query)
	if err != nil {
		return nil, err
	}
	var dtos []applicationSummaryDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("decode search results: %w", err)
	}
	apps := make([]domain.ApplicationSummary, 0, len(dtos))
	for _, dto := range dtos {
		apps = append(apps, dto.toDomain())
	}
	return apps, nil
}

// Stats fetches system-wide application statistics.
func (c *Client) Stats(ctx context.Context) (domain.Stats, error) {
	body, err := c.get(ctx, "stats", "/chatbot/stats", nil)
	if err != nil {
		return domain.Stats{}, err
	}
	var dto statsDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return domain.Stats{}, fmt.Errorf("decode stats: %w", err)
	}
	return dto.toDomain(), nil
}

// get runs a GET and maps non-2xx statuses to domain sentinels.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values) ([]byte, error) {
	status, body, err := c.do(ctx, endpoint, path, query)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusNotFound:
		return nil, fmt.Errorf("%s %s: %w", http.MethodGet, path, domain.ErrNotFound)
	case status < http.StatusOK || status >= http.StatusMultipleChoices:
		return nil, domain.NewStatusError(status)
	}
	return body, nil
}

// do runs a GET and returns the raw status and body. Transport failures
// (connect, timeout) map to ErrBackendUnavailable.
func (c *Client) do(ctx context.Context, endpoint, path string, query url.Values) (int, []byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Calling backend", zap.String("url", u))
	start := time.Now()

	resp, err := c.http.Do(req)

	duration := time.Since(start)
	metrics.BackendRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())

	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		if errors.Is(err, context.Canceled) {
			return 0, nil, fmt.Errorf("%s %s: %w", http.MethodGet, path, err)
		}
		return 0, nil, fmt.Errorf("%s %s: %v: %w", http.MethodGet, path, err, domain.ErrBackendUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return 0, nil, fmt.Errorf("read response: %v: %w", err, domain.ErrBackendUnavailable)
	}

	outcome := "success"
	if resp.StatusCode >= http.StatusBadRequest {
		outcome = "error"
	}
	metrics.BackendRequestsTotal.WithLabelValues(endpoint, outcome).Inc()

	c.logger.Debug("Backend responded",
		zap.String("url", u),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", duration),
	)

	return resp.StatusCode, body, nil
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
