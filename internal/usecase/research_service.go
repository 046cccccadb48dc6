package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/listify/backend/internal/domain"
	"github.com/listify/backend/internal/infrastructure/ai"
	"github.com/sirupsen/logrus"
)

// researchSystemPrompt fixes the schema and extraction rules for the AI
// researcher. The reply must be a single JSON object; markdown fences
// are tolerated and stripped.
const researchSystemPrompt = `You are a product research assistant for a wholesale catalog.
Research the given product and reply with ONE JSON object, no prose, using exactly these keys:
{
  "title": "Brand Model KeySpec",
  "category": "Parent > Child category path",
  "images": ["direct product image URLs"],
  "companyInfo": {"name", "country", "yearEstablished", "ownership", "productionVolumes"},
  "certificationsStandards": {"qualityCertifications", "complianceStandards", "testingReports"},
  "clientsMarkets": {"majorClients", "exportMarkets", "marketPosition"},
  "contactLogistics": {"contactPerson", "email", "phone", "address"},
  "pricing": {"costPrice", "supplyPrice", "wholesalePrice", "retailPrice"},
  "supplierTrade": {"supplierName", "hsCode", "moq", "moqExclusiveImporter", "moqDistributor", "moqRetailer"},
  "logistics": {"certificationRequired", "certificationDetails", "manufacturingTime", "transitTime", "packaging", "paymentMethod"},
  "salesContent": {"keySpecifications": [], "packageOptions": [], "applications": [], "certifications": [{"name", "details"}]},
  "descriptions": {"overview", "identityLine", "highlights": [], "trustStatement"},
  "sources": ["where each fact came from"],
  "confidence": {"specifications": "high|medium|low", "pricing": "...", "supplierInfo": "..."},
  "estimatedFields": [], "assumedFields": [], "missingFields": []
}
Rules: use model-specific values, never generic ones. Prices are numbers in USD.
Omit or null any value you cannot find and list its field name in missingFields.
List every estimated value's field name in estimatedFields and every assumption in assumedFields.`

// Default token budgets for the completion call. The larger budget is
// used when operator-supplied spec sheet text is in the prompt.
const (
	defaultMaxTokens   = 4000
	specSheetMaxTokens = 6000
)

// textFieldFiller substitutes for optional text fields the AI left blank
const textFieldFiller = "Contact supplier to confirm"

// registryKeyPrefix namespaces spec hashes in the duplicate registry
const registryKeyPrefix = "spec:"

// ResearchRequest is one research invocation from the caller-facing API
type ResearchRequest struct {
	ProductName   string `json:"productName" binding:"required"`
	SpecSheetText string `json:"specSheetText,omitempty"`
	CategoryHint  string `json:"categoryHint,omitempty"`
}

// ResearchServiceConfig holds configuration for the research service
type ResearchServiceConfig struct {
	ModelName   string
	RegistryTTL time.Duration
}

// ResearchService composes the research pipeline: AI call, payload
// coercion, title/SKU normalization, spec-hash dedup, pricing and MOQ
// prefill, image filtering and review-note assembly.
type ResearchService struct {
	aiClient    domain.AIClient
	registry    domain.RegistryStore
	modelName   string
	registryTTL time.Duration
	logger      *logrus.Entry
	now         func() time.Time
}

// NewResearchService creates a research service with dependencies
func NewResearchService(
	aiClient domain.AIClient,
	registry domain.RegistryStore,
	config ResearchServiceConfig,
	logger *logrus.Logger,
) *ResearchService {
	return &ResearchService{
		aiClient:    aiClient,
		registry:    registry,
		modelName:   config.ModelName,
		registryTTL: config.RegistryTTL,
		logger:      logger.WithField("component", "research"),
		now:         time.Now,
	}
}

// Research produces a fully populated ProductRecord for the named
// product. The bool result reports whether an identical specification
// set was already researched this process (possible duplicate). Single
// AI attempt; transient upstream failures are not retried.
func (s *ResearchService) Research(ctx context.Context, req *ResearchRequest) (*domain.ProductRecord, bool, error) {
	if req == nil || strings.TrimSpace(req.ProductName) == "" {
		return nil, false, fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	}

	raw, err := s.aiClient.Complete(ctx, &domain.CompletionRequest{
		SystemPrompt: researchSystemPrompt,
		UserPrompt:   buildUserPrompt(req),
		MaxTokens:    maxTokensFor(req),
	})
	if err != nil {
		return nil, false, err
	}

	payload, err := ai.ParseResearchPayload(raw)
	if err != nil {
		return nil, false, err
	}

	record := s.assembleRecord(req, payload)

	duplicate := s.checkAndRegister(ctx, record)

	s.logger.WithFields(logrus.Fields{
		"sku":       record.SKU,
		"specHash":  record.Metadata.SpecHash,
		"duplicate": duplicate,
	}).Info("research complete")

	return record, duplicate, nil
}

// assembleRecord normalizes the coerced AI payload into a complete
// ProductRecord with provenance notes
func (s *ResearchService) assembleRecord(req *ResearchRequest, payload *ai.ResearchPayload) *domain.ProductRecord {
	category := firstNonEmpty(payload.Category, req.CategoryHint)

	// Title falls back from the AI's suggestion to the formatted raw name
	title := strings.TrimSpace(payload.Title)
	if title == "" {
		title = FormatTitle(req.ProductName, payload.KeySpecifications, category).Title
	}
	sku := MakeSKU(title)

	record := &domain.ProductRecord{
		Title:    title,
		SKU:      sku,
		Type:     "simple",
		Category: firstNonEmpty(category, "General > Uncategorized"),

		CompanyInfo: domain.CompanyInfo{
			Name:              payload.CompanyName,
			Country:           payload.CompanyCountry,
			YearEstablished:   payload.YearEstablished,
			Ownership:         fillBlank(payload.Ownership),
			ProductionVolumes: fillBlank(payload.ProductionVolumes),
		},
		CertificationsStandards: domain.CertificationsStandards{
			QualityCertifications: fillBlank(payload.QualityCertifications),
			ComplianceStandards:   fillBlank(payload.ComplianceStandards),
			TestingReports:        fillBlank(payload.TestingReports),
		},
		ClientsMarkets: domain.ClientsMarkets{
			MajorClients:   fillBlank(payload.MajorClients),
			ExportMarkets:  fillBlank(payload.ExportMarkets),
			MarketPosition: fillBlank(payload.MarketPosition),
		},
		ContactLogistics: domain.ContactLogistics{
			ContactPerson: payload.ContactPerson,
			Email:         payload.Email,
			Phone:         payload.Phone,
			Address:       payload.Address,
		},
		Pricing: domain.Pricing{
			CostPrice:      payload.CostPrice,
			SupplyPrice:    payload.SupplyPrice,
			WholesalePrice: payload.WholesalePrice,
			RetailPrice:    payload.RetailPrice,
		},
		SupplierTrade: domain.SupplierTrade{
			SupplierName:         payload.SupplierName,
			HSCode:               payload.HSCode,
			MOQ:                  payload.MOQ,
			MOQExclusiveImporter: payload.MOQExclusiveImporter,
			MOQDistributor:       payload.MOQDistributor,
			MOQRetailer:          payload.MOQRetailer,
		},
		Logistics: domain.Logistics{
			CertificationRequired: payload.CertificationRequired,
			CertificationDetails:  payload.CertificationDetails,
			ManufacturingTime:     payload.ManufacturingTime,
			TransitTime:           payload.TransitTime,
			Packaging:             fillBlank(payload.Packaging),
			PaymentMethod:         payload.PaymentMethod,
		},
		SalesContent: domain.SalesContent{
			KeySpecifications: payload.KeySpecifications,
			PackageOptions:    payload.PackageOptions,
			Applications:      payload.Applications,
			Certifications:    toCertifications(payload.Certifications),
		},
		Descriptions: domain.Descriptions{
			Overview:       payload.Overview,
			IdentityLine:   firstNonEmpty(payload.IdentityLine, title),
			Highlights:     payload.Highlights,
			TrustStatement: payload.TrustStatement,
		},
	}

	prefilledPricing := PrefillPricing(&record.Pricing, record.Category)
	prefilledMOQs := PrefillMOQs(&record.SupplierTrade)
	images, imageNotes := FilterImages(payload.Images, DefaultMaxImages)
	record.Images = images

	record.ReviewNotes = BuildReviewNotes(record, ReviewNoteInput{
		Sources:           payload.Sources,
		SpecSheetProvided: strings.TrimSpace(req.SpecSheetText) != "",
		Confidence: ConfidenceReport{
			Specifications: payload.ConfidenceSpecification,
			Pricing:        payload.ConfidencePricing,
			SupplierInfo:   payload.ConfidenceSupplierInfo,
		},
		EstimatedFields:  payload.EstimatedFields,
		AssumedFields:    payload.AssumedFields,
		MissingFields:    payload.MissingFields,
		PrefilledPricing: prefilledPricing,
		PrefilledMOQs:    prefilledMOQs,
		ImageNotes:       imageNotes,
		GeneratedSKU:     sku,
	})

	record.Metadata = domain.Metadata{
		ResearchedModel: s.modelName,
		ExtractedAt:     s.now().UTC(),
		Sources:         payload.Sources,
		SpecHash:        SpecHash(record.SalesContent.KeySpecifications),
	}

	return record
}

// checkAndRegister flags a registry hit on the record's spec hash and
// registers the hash afterwards. Registry failures are logged and
// treated as "not a duplicate" rather than failing the research.
func (s *ResearchService) checkAndRegister(ctx context.Context, record *domain.ProductRecord) bool {
	key := registryKeyPrefix + record.Metadata.SpecHash

	duplicate, err := s.registry.Exists(ctx, key)
	if err != nil {
		s.logger.WithError(err).Warn("duplicate registry lookup failed")
		duplicate = false
	}

	if err := s.registry.Set(ctx, key, record.SKU, s.registryTTL); err != nil {
		s.logger.WithError(err).Warn("duplicate registry update failed")
	}

	return duplicate
}

// buildUserPrompt composes the user prompt from the product name and
// optional category hint and spec sheet text
func buildUserPrompt(req *ResearchRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product: %s\n", strings.TrimSpace(req.ProductName))
	if req.CategoryHint != "" {
		fmt.Fprintf(&b, "Category hint: %s\n", req.CategoryHint)
	}
	if text := strings.TrimSpace(req.SpecSheetText); text != "" {
		fmt.Fprintf(&b, "\nSpecification sheet text:\n%s\n", text)
	}
	return b.String()
}

func maxTokensFor(req *ResearchRequest) int {
	if strings.TrimSpace(req.SpecSheetText) != "" {
		return specSheetMaxTokens
	}
	return defaultMaxTokens
}

func toCertifications(pairs []ai.CertificationPair) []domain.Certification {
	out := make([]domain.Certification, 0, len(pairs))
	for _, pair := range pairs {
		if pair.Name == "" && pair.Details == "" {
			continue
		}
		out = append(out, domain.Certification{Name: pair.Name, Details: pair.Details})
	}
	return out
}

// fillBlank substitutes the fixed filler for optional text fields the AI
// left blank
func fillBlank(s string) string {
	if strings.TrimSpace(s) == "" {
		return textFieldFiller
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
