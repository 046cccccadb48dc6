package domain

import "fmt"

// CatalogProductPayload is the catalog API's product shape. Structured
// record sections are flattened into opaque meta_data pairs before
// submission.
type CatalogProductPayload struct {
	Name             string            `json:"name"`
	Type             string            `json:"type"`
	SKU              string            `json:"sku"`
	Status           string            `json:"status"`
	RegularPrice     string            `json:"regular_price,omitempty"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"short_description"`
	Categories       []CatalogCategory `json:"categories,omitempty"`
	Images           []CatalogImage    `json:"images,omitempty"`
	MetaData         []CatalogMeta     `json:"meta_data,omitempty"`
}

// CatalogCategory references a catalog category by name
type CatalogCategory struct {
	Name string `json:"name"`
}

// CatalogImage references a remote image by source URL
type CatalogImage struct {
	Src string `json:"src"`
}

// CatalogMeta is one opaque key/value metadata pair
type CatalogMeta struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CatalogCreated is the catalog's reply to a successful product creation
type CatalogCreated struct {
	ID        int64  `json:"id"`
	SKU       string `json:"sku"`
	Permalink string `json:"permalink"`
	Status    string `json:"status"`
}

// CatalogError is a typed catalog-side failure carrying the upstream
// status and machine-readable error code used to drive import fallbacks.
type CatalogError struct {
	StatusCode int    `json:"statusCode"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Body       string `json:"body,omitempty"`
}

func (e *CatalogError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("catalog error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("catalog error %d: %s", e.StatusCode, e.Message)
}

func (e *CatalogError) Unwrap() error { return ErrUpstreamRequest }

// ImportResult is the outcome of a successful catalog import
type ImportResult struct {
	ProductID       int64  `json:"productId"`
	SKU             string `json:"sku"`
	ImagesPersisted bool   `json:"imagesPersisted"`
	EditURL         string `json:"editUrl"`
	PreviewURL      string `json:"previewUrl"`
}

// HealthStatus classifies the outcome of a catalog health probe
type HealthStatus string

const (
	HealthConnected          HealthStatus = "connected"
	HealthAuthFailed         HealthStatus = "authentication_failed"
	HealthInvalidCredentials HealthStatus = "invalid_credentials"
	HealthNetworkError       HealthStatus = "network_error"
	HealthMissingCredentials HealthStatus = "missing_credentials"
)

// HealthResult is the outcome of a catalog health probe
type HealthResult struct {
	Status  HealthStatus  `json:"status"`
	Message string        `json:"message"`
	Details HealthDetails `json:"details"`
}

// HealthDetails carries probe diagnostics
type HealthDetails struct {
	BaseURLConfigured bool   `json:"baseUrlConfigured"`
	KeyConfigured     bool   `json:"keyConfigured"`
	SecretConfigured  bool   `json:"secretConfigured"`
	HTTPStatus        int    `json:"httpStatus,omitempty"`
	StoreName         string `json:"storeName,omitempty"`
	StoreVersion      string `json:"storeVersion,omitempty"`
}

// ValidationIssue is one rule violation with its UI grouping category
type ValidationIssue struct {
	Field    string `json:"field"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// ValidationResult partitions rule violations into blocking errors and
// non-blocking warnings
type ValidationResult struct {
	IsValid  bool              `json:"isValid"`
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
}
