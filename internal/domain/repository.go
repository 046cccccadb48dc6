package domain

import (
	"context"
	"time"
)

// RegistryStore defines the interface for the duplicate-spec registry.
// Keys are spec hashes; values are the SKU first researched under that
// hash. The in-memory implementation is process-lifetime; a shared
// backend (Redis) can be swapped in for multi-instance deployments.
type RegistryStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CompletionRequest describes a single prompt sent to the AI service
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
}

// AIClient defines the interface for the AI completion service
type AIClient interface {
	// Complete sends the prompt pair and returns the raw reply content.
	Complete(ctx context.Context, req *CompletionRequest) (string, error)
}

// CatalogClient defines the interface for the storefront catalog API
type CatalogClient interface {
	// Configured reports whether base URL, key and secret are all set.
	Configured() bool

	// CreateProduct posts a draft listing. Catalog-side rejections are
	// returned as *CatalogError.
	CreateProduct(ctx context.Context, payload *CatalogProductPayload) (*CatalogCreated, error)

	// CheckHealth performs a one-shot connectivity/auth probe.
	CheckHealth(ctx context.Context) *HealthResult

	// EditURL composes the admin edit link for a created product.
	EditURL(productID int64) string

	// PreviewURL composes the storefront preview link for a created product.
	PreviewURL(permalink string, productID int64) string
}
