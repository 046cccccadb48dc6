package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/listify/backend/internal/domain"
	"github.com/listify/backend/internal/infrastructure/catalog"
	"github.com/sirupsen/logrus"
)

// importFallback is one code-driven recovery path: when the catalog
// rejects a submission with Code, Transform mutates the payload and the
// submission is retried exactly once for that reason.
type importFallback struct {
	Code      string
	Reason    string
	Transform func(payload *domain.CatalogProductPayload)
}

// importFallbacks is the declarative retry-policy table. Each entry
// applies at most once per import; anything not listed here is terminal.
var importFallbacks = []importFallback{
	{
		Code:   "product_invalid_sku",
		Reason: "duplicate SKU",
		Transform: func(payload *domain.CatalogProductPayload) {
			payload.SKU = UniqueSKU(payload.SKU)
		},
	},
	{
		Code:   "woocommerce_product_image_upload_error",
		Reason: "image upload failure",
		Transform: func(payload *domain.CatalogProductPayload) {
			payload.Images = nil
		},
	},
}

// ImportService posts validated records to the catalog as draft listings
type ImportService struct {
	catalogClient domain.CatalogClient
	logger        *logrus.Entry
}

// NewImportService creates an import service with dependencies
func NewImportService(catalogClient domain.CatalogClient, logger *logrus.Logger) *ImportService {
	return &ImportService{
		catalogClient: catalogClient,
		logger:        logger.WithField("component", "import"),
	}
}

// Import flattens the record into the catalog payload and submits it.
// Recovery is limited to the fallback table: one resubmission per
// matched error code. Every other failure is surfaced typed and
// terminal; the caller must resubmit explicitly.
func (s *ImportService) Import(ctx context.Context, record *domain.ProductRecord) (*domain.ImportResult, error) {
	if !s.catalogClient.Configured() {
		return nil, domain.ErrNotConfigured
	}

	payload := catalog.BuildProductPayload(record)
	applied := make(map[string]bool, len(importFallbacks))

	for {
		created, err := s.catalogClient.CreateProduct(ctx, payload)
		if err == nil {
			return &domain.ImportResult{
				ProductID:       created.ID,
				SKU:             payload.SKU,
				ImagesPersisted: len(payload.Images) > 0,
				EditURL:         s.catalogClient.EditURL(created.ID),
				PreviewURL:      s.catalogClient.PreviewURL(created.Permalink, created.ID),
			}, nil
		}

		var catalogErr *domain.CatalogError
		if !errors.As(err, &catalogErr) {
			return nil, err
		}

		fallback := matchFallback(catalogErr.Code)
		if fallback == nil || applied[fallback.Code] {
			return nil, fmt.Errorf("%w: %w", domain.ErrImportRejected, catalogErr)
		}

		applied[fallback.Code] = true
		fallback.Transform(payload)

		s.logger.WithFields(logrus.Fields{
			"code":   catalogErr.Code,
			"reason": fallback.Reason,
			"sku":    payload.SKU,
		}).Warn("catalog rejected submission, retrying with fallback")
	}
}

func matchFallback(code string) *importFallback {
	for i := range importFallbacks {
		if importFallbacks[i].Code == code {
			return &importFallbacks[i]
		}
	}
	return nil
}

// skuSuffixAlphabet feeds the random tail of a uniqued SKU
const skuSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// UniqueSKU appends a base-36 timestamp and two random characters to a
// SKU that collided in the catalog
func UniqueSKU(sku string) string {
	suffix := strconv.FormatInt(time.Now().Unix(), 36)
	var tail strings.Builder
	for i := 0; i < 2; i++ {
		tail.WriteByte(skuSuffixAlphabet[rand.Intn(len(skuSuffixAlphabet))])
	}
	return sku + "-" + suffix + tail.String()
}
