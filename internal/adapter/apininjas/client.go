// Package apininjas implements the external phone-validation and world-time
// collaborators against the api-ninjas HTTP endpoints.
package apininjas

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/V4T54L/contact-hub/internal/adapter/metrics"
	"github.com/V4T54L/contact-hub/internal/domain"
)

const apiKeyHeader = "X-Api-Key"

// Client talks to the api-ninjas validatephone and worldtime endpoints.
// It implements domain.PhoneValidator and domain.WorldClock.
//
// Calls are single blocking round trips with no retries: any non-200
// response fails the operation immediately with an upstream error.
type Client struct {
	httpClient *http.Client
	apiKey     string
	phoneURL   string
	timeURL    string
	logger     *slog.Logger
	metrics    *metrics.APIMetrics
}

// NewClient creates a new api-ninjas client. The metrics argument may be nil.
func NewClient(apiKey, phoneURL, timeURL string, timeout time.Duration, logger *slog.Logger, m *metrics.APIMetrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		phoneURL:   phoneURL,
		timeURL:    timeURL,
		logger:     logger.With("component", "apininjas_client"),
		metrics:    m,
	}
}

// Validate asks the validatephone endpoint about a number.
func (c *Client) Validate(ctx context.Context, number string) (domain.PhoneInfo, error) {
	var info domain.PhoneInfo
	if err := c.get(ctx, "phone_validation", c.phoneURL, url.Values{"number": {number}}, &info); err != nil {
		return domain.PhoneInfo{}, err
	}
	return info, nil
}

// CurrentTime asks the worldtime endpoint for the current datetime in a
// timezone and returns the service's datetime string verbatim.
func (c *Client) CurrentTime(ctx context.Context, timezone string) (string, error) {
	var body struct {
		Datetime string `json:"datetime"`
	}
	if err := c.get(ctx, "worldtime", c.timeURL, url.Values{"timezone": {timezone}}, &body); err != nil {
		return "", err
	}
	return body.Datetime, nil
}

func (c *Client) get(ctx context.Context, service, baseURL string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return domain.Wrap(domain.KindUpstream, err, "failed to build %s request", service)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(service, "error", start)
		return domain.Wrap(domain.KindUpstream, err, "%s service unreachable", service)
	}
	defer resp.Body.Close()

	c.observe(service, fmt.Sprintf("%d", resp.StatusCode), start)

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("external service returned non-success status",
			"service", service,
			"status", resp.StatusCode,
		)
		return domain.E(domain.KindUpstream, "%s service returned status %d", service, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.Wrap(domain.KindUpstream, err, "failed to decode %s response", service)
	}
	return nil
}

func (c *Client) observe(service, status string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ExternalRequestsTotal.WithLabelValues(service, status).Inc()
	c.metrics.ExternalRequestDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
}
