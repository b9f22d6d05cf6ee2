package data

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"energy-insights/internal/logging"
	"energy-insights/internal/model"

	"go.uber.org/zap"
)

// Backend is the analytics data source the service reads from. Payloads are
// returned untyped; normalize validates them.
type Backend interface {
	ListSites(ctx context.Context) ([]model.Record, error)
	SiteKPI(ctx context.Context, siteID string) (model.Record, error)
	Opportunities(ctx context.Context, siteID string) ([]model.Record, error)
	CreateOpportunity(ctx context.Context, siteID string, o model.Opportunity) (model.Record, error)
	Series(ctx context.Context, siteID string, hours float64) ([]model.Record, error)
	SeriesSummary(ctx context.Context, siteID string, hours float64) (model.Record, error)
	Insights(ctx context.Context, siteID string, hours float64) (model.Record, error)
}

// AnalyticsClient talks to the analytics backend over HTTP.
type AnalyticsClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
	Cache   *ResponseCache
	Logger  *zap.Logger
}

// NewAnalyticsClient creates a client. A zero timeout defaults to 30s.
func NewAnalyticsClient(apiKey, baseURL string, timeout time.Duration, logger *zap.Logger) *AnalyticsClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AnalyticsClient{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
		Logger:  logging.OrNop(logger),
	}
}

// WithAPIKey returns a shallow copy using apiKey. The HTTP client and cache
// are shared.
func (c *AnalyticsClient) WithAPIKey(apiKey string) *AnalyticsClient {
	cp := *c
	cp.APIKey = apiKey
	return &cp
}

// BackendError represents a non-success answer from the analytics backend.
type BackendError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // For rate limit errors
}

func (e *BackendError) Error() string {
	return e.Message
}

func (c *AnalyticsClient) ListSites(ctx context.Context) ([]model.Record, error) {
	v, err := c.get(ctx, "/sites", nil)
	if err != nil {
		return nil, err
	}
	return asList(v, "sites")
}

func (c *AnalyticsClient) SiteKPI(ctx context.Context, siteID string) (model.Record, error) {
	v, err := c.get(ctx, sitePath(siteID, "kpi"), nil)
	if err != nil {
		return nil, err
	}
	return asObject(v, "kpi")
}

func (c *AnalyticsClient) Opportunities(ctx context.Context, siteID string) ([]model.Record, error) {
	v, err := c.get(ctx, sitePath(siteID, "opportunities"), nil)
	if err != nil {
		return nil, err
	}
	return asList(v, "opportunities")
}

func (c *AnalyticsClient) Series(ctx context.Context, siteID string, hours float64) ([]model.Record, error) {
	v, err := c.get(ctx, sitePath(siteID, "timeseries"), hoursQuery(hours))
	if err != nil {
		return nil, err
	}
	return asList(v, "points")
}

func (c *AnalyticsClient) SeriesSummary(ctx context.Context, siteID string, hours float64) (model.Record, error) {
	v, err := c.get(ctx, sitePath(siteID, "timeseries/summary"), hoursQuery(hours))
	if err != nil {
		return nil, err
	}
	return asObject(v, "summary")
}

func (c *AnalyticsClient) Insights(ctx context.Context, siteID string, hours float64) (model.Record, error) {
	v, err := c.get(ctx, sitePath(siteID, "insights"), hoursQuery(hours))
	if err != nil {
		return nil, err
	}
	return asObject(v, "insights")
}

// CreateOpportunity stores a manual opportunity in the backend and returns
// the stored record.
func (c *AnalyticsClient) CreateOpportunity(ctx context.Context, siteID string, o model.Opportunity) (model.Record, error) {
	body, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("failed to encode opportunity: %w", err)
	}
	v, err := c.do(ctx, http.MethodPost, sitePath(siteID, "opportunities"), nil, body)
	if err != nil {
		return nil, err
	}
	return asObject(v, "opportunity")
}

func (c *AnalyticsClient) get(ctx context.Context, path string, q url.Values) (any, error) {
	cache := c.Cache
	key := ""
	if cache != nil {
		key = GenerateCacheKey(c.APIKey, path, q)
		if raw, ok := cache.Get(key); ok {
			c.Logger.Debug("analytics cache hit", zap.String("path", path))
			return decode(raw)
		}
	}
	raw, err := c.fetch(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		cache.Set(key, raw)
	}
	return decode(raw)
}

func (c *AnalyticsClient) do(ctx context.Context, method, path string, q url.Values, body []byte) (any, error) {
	raw, err := c.fetch(ctx, method, path, q, body)
	if err != nil {
		return nil, err
	}
	return decode(raw)
}

func (c *AnalyticsClient) fetch(ctx context.Context, method, path string, q url.Values, body []byte) ([]byte, error) {
	if c.APIKey == "" {
		return nil, &BackendError{Code: "MISSING_API_KEY", Message: "API key is required"}
	}

	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if q != nil {
		u.RawQuery = q.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.Logger.Warn("analytics request failed",
			zap.String("method", method), zap.String("path", u.Path),
			zap.Duration("duration", duration), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	c.Logger.Debug("analytics response",
		zap.String("method", method), zap.String("path", u.Path),
		zap.Int("status", resp.StatusCode), zap.Duration("duration", duration))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		berr := statusError(resp)
		c.Logger.Warn("analytics error response",
			zap.String("path", u.Path), zap.Int("status", resp.StatusCode), zap.String("code", berr.Code))
		return nil, berr
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return raw, nil
}

func statusError(resp *http.Response) *BackendError {
	switch resp.StatusCode {
	case http.StatusForbidden:
		return &BackendError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_API_KEY",
			Message:    "Invalid API key or insufficient permissions",
		}
	case http.StatusUnauthorized:
		return &BackendError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "Unauthorized: Invalid API key",
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return &BackendError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	case http.StatusNotFound:
		return &BackendError{
			StatusCode: resp.StatusCode,
			Code:       "NOT_FOUND",
			Message:    "Resource not found",
		}
	default:
		return &BackendError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}
}

func decode(raw []byte) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return v, nil
}

// asList accepts a bare array or an envelope holding one under "data",
// "items" or the resource name.
func asList(v any, name string) ([]model.Record, error) {
	if m, ok := v.(map[string]any); ok {
		for _, k := range []string{"data", "items", name} {
			if inner, ok := m[k].([]any); ok {
				v = inner
				break
			}
		}
	}
	arr, ok := v.([]any)
	if !ok {
		if v == nil {
			return []model.Record{}, nil
		}
		return nil, fmt.Errorf("unexpected %s payload: %T", name, v)
	}
	out := make([]model.Record, 0, len(arr))
	for _, item := range arr {
		if rec, ok := item.(map[string]any); ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// asObject accepts an object, optionally wrapped under "data" or the
// resource name. JSON null yields a nil record.
func asObject(v any, name string) (model.Record, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected %s payload: %T", name, v)
	}
	for _, k := range []string{"data", name} {
		if inner, ok := m[k].(map[string]any); ok && len(m) == 1 {
			return inner, nil
		}
	}
	return m, nil
}

func sitePath(siteID, resource string) string {
	return "/sites/" + url.PathEscape(siteID) + "/" + resource
}

func hoursQuery(hours float64) url.Values {
	q := url.Values{}
	q.Set("hours", strconv.FormatFloat(hours, 'f', -1, 64))
	return q
}
