package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/listify/backend/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Client handles communication with a WooCommerce-style catalog REST API
type Client struct {
	httpClient     *http.Client
	baseURL        string
	consumerKey    string
	consumerSecret string
	rateLimiter    *rate.Limiter
	logger         *logrus.Entry
}

// NewClient creates a new catalog client. The base URL is normalized by
// stripping trailing slashes and any admin-panel path suffix.
func NewClient(baseURL, consumerKey, consumerSecret string, logger *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL:        NormalizeBaseURL(baseURL),
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		rateLimiter:    rate.NewLimiter(rate.Limit(2), 5),
		logger:         logger.WithField("component", "catalog"),
	}
}

// NormalizeBaseURL strips trailing slashes and a trailing admin-panel
// path from a store URL pasted by an operator
func NormalizeBaseURL(raw string) string {
	normalized := strings.TrimSpace(raw)
	for _, suffix := range []string{"/wp-admin", "/wp-admin/", "/wp-login.php"} {
		if idx := strings.Index(normalized, suffix); idx > 0 {
			normalized = normalized[:idx]
		}
	}
	return strings.TrimRight(normalized, "/")
}

// Configured reports whether base URL, key and secret are all present
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.consumerKey != "" && c.consumerSecret != ""
}

// CreateProduct posts a draft listing to the catalog. Catalog-side
// rejections come back as *domain.CatalogError so callers can key
// fallbacks off the upstream error code.
func (c *Client) CreateProduct(ctx context.Context, payload *domain.CatalogProductPayload) (*domain.CatalogCreated, error) {
	if !c.Configured() {
		return nil, domain.ErrNotConfigured
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal product payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/wp-json/wc/v3/products", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create product request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamRequest, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.decodeError(resp.StatusCode, respBody)
	}

	var created domain.CatalogCreated
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, &domain.CatalogError{
			StatusCode: resp.StatusCode,
			Message:    "catalog returned a non-JSON success body",
			Body:       truncate(string(respBody), 300),
		}
	}

	c.logger.WithFields(logrus.Fields{
		"productId": created.ID,
		"sku":       created.SKU,
	}).Info("product created as draft")
	return &created, nil
}

// wooError is the catalog API's error envelope
type wooError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Status int `json:"status"`
	} `json:"data"`
}

// decodeError converts a non-2xx reply into a typed CatalogError. A
// non-JSON body is surfaced verbatim (truncated) with an empty code.
func (c *Client) decodeError(statusCode int, body []byte) *domain.CatalogError {
	var parsed wooError
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Message == "" && parsed.Code == "" {
		return &domain.CatalogError{
			StatusCode: statusCode,
			Message:    "catalog returned a non-JSON error body",
			Body:       truncate(string(body), 300),
		}
	}
	return &domain.CatalogError{
		StatusCode: statusCode,
		Code:       parsed.Code,
		Message:    parsed.Message,
		Body:       truncate(string(body), 300),
	}
}

// CheckHealth performs a one-shot connectivity and auth probe against
// the catalog API root. Missing credentials short-circuit without any
// network attempt.
func (c *Client) CheckHealth(ctx context.Context) *domain.HealthResult {
	details := domain.HealthDetails{
		BaseURLConfigured: c.baseURL != "",
		KeyConfigured:     c.consumerKey != "",
		SecretConfigured:  c.consumerSecret != "",
	}

	if !c.Configured() {
		return &domain.HealthResult{
			Status:  domain.HealthMissingCredentials,
			Message: "catalog base URL, key and secret must all be configured",
			Details: details,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/wp-json/wc/v3", nil)
	if err != nil {
		return &domain.HealthResult{
			Status:  domain.HealthNetworkError,
			Message: fmt.Sprintf("could not build probe request: %v", err),
			Details: details,
		}
	}
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.HealthResult{
			Status:  domain.HealthNetworkError,
			Message: fmt.Sprintf("catalog unreachable: %v", err),
			Details: details,
		}
	}
	defer resp.Body.Close()

	details.HTTPStatus = resp.StatusCode
	body, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &domain.HealthResult{
			Status:  domain.HealthAuthFailed,
			Message: "catalog rejected the credentials (401)",
			Details: details,
		}
	case resp.StatusCode == http.StatusForbidden:
		return &domain.HealthResult{
			Status:  domain.HealthInvalidCredentials,
			Message: "catalog refused access for these credentials (403)",
			Details: details,
		}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &domain.HealthResult{
			Status:  domain.HealthNetworkError,
			Message: fmt.Sprintf("catalog returned status %d", resp.StatusCode),
			Details: details,
		}
	}

	var index map[string]interface{}
	if err := json.Unmarshal(body, &index); err != nil {
		return &domain.HealthResult{
			Status:  domain.HealthNetworkError,
			Message: "catalog root returned a non-JSON body",
			Details: details,
		}
	}

	if name, ok := index["name"].(string); ok {
		details.StoreName = name
	}
	if version, ok := index["version"].(string); ok {
		details.StoreVersion = version
	}

	return &domain.HealthResult{
		Status:  domain.HealthConnected,
		Message: "catalog API reachable and authenticated",
		Details: details,
	}
}

// EditURL composes the admin edit link for a created product
func (c *Client) EditURL(productID int64) string {
	return fmt.Sprintf("%s/wp-admin/post.php?post=%d&action=edit", c.baseURL, productID)
}

// PreviewURL composes the storefront preview link, preferring the
// catalog-reported permalink
func (c *Client) PreviewURL(permalink string, productID int64) string {
	if permalink != "" {
		return permalink
	}
	return fmt.Sprintf("%s/?post_type=product&p=%d", c.baseURL, productID)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
