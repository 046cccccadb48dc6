package usecase

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/listify/backend/internal/domain"
)

// skuPattern is the recommended lowercase-hyphenated SKU shape
var skuPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateProduct classifies a finished record as import-ready or not.
// Pure, no I/O. Errors block import; warnings may be acknowledged.
// This is the lenient ruleset: prefilled defaults are acceptable and
// errors are reserved for true absence of data needed to construct a
// valid catalog entry.
func ValidateProduct(r *domain.ProductRecord) domain.ValidationResult {
	var result domain.ValidationResult

	addError := func(field, category, message string) {
		result.Errors = append(result.Errors, domain.ValidationIssue{Field: field, Category: category, Message: message})
	}
	addWarning := func(field, category, message string) {
		result.Warnings = append(result.Warnings, domain.ValidationIssue{Field: field, Category: category, Message: message})
	}

	// Identity
	title := strings.TrimSpace(r.Title)
	switch {
	case title == "":
		addError("title", "identity", "Title is empty")
	case len(strings.Fields(title)) < 2:
		addError("title", "identity", "Title needs at least two words")
	default:
		if first := []rune(strings.Fields(title)[0]); !unicode.IsUpper(first[0]) {
			addWarning("title", "identity", "Title should start with a capitalized brand")
		}
	}

	if strings.TrimSpace(r.SKU) == "" {
		addError("sku", "identity", "SKU is empty")
	} else if !skuPattern.MatchString(r.SKU) {
		addWarning("sku", "identity", "SKU should be lowercase words joined by hyphens")
	}

	if strings.TrimSpace(r.Category) == "" {
		addError("category", "identity", "Category is empty")
	}

	// Images
	switch n := len(r.Images); {
	case n == 0:
		addWarning("images", "media", "No images attached")
	case n < 3:
		addWarning("images", "media", fmt.Sprintf("Only %d image(s); at least 3 recommended", n))
	}

	// Pricing
	tiers := []struct {
		field string
		value *float64
	}{
		{"costPrice", r.Pricing.CostPrice},
		{"supplyPrice", r.Pricing.SupplyPrice},
		{"wholesalePrice", r.Pricing.WholesalePrice},
		{"retailPrice", r.Pricing.RetailPrice},
	}
	missingTiers := 0
	for _, tier := range tiers {
		if !priceKnown(tier.value) {
			missingTiers++
		}
	}
	if missingTiers == len(tiers) {
		addError("pricing", "pricing", "No price tier is set")
	} else {
		for _, tier := range tiers {
			if !priceKnown(tier.value) {
				addWarning("pricing."+tier.field, "pricing", fmt.Sprintf("%s is not set", tier.field))
			}
		}
		checkTierOrder(&result, "costPrice", r.Pricing.CostPrice, "supplyPrice", r.Pricing.SupplyPrice)
		checkTierOrder(&result, "supplyPrice", r.Pricing.SupplyPrice, "wholesalePrice", r.Pricing.WholesalePrice)
		checkTierOrder(&result, "wholesalePrice", r.Pricing.WholesalePrice, "retailPrice", r.Pricing.RetailPrice)
	}

	// MOQs
	moqs := []struct {
		field string
		value *int
	}{
		{"moq", r.SupplierTrade.MOQ},
		{"moqExclusiveImporter", r.SupplierTrade.MOQExclusiveImporter},
		{"moqDistributor", r.SupplierTrade.MOQDistributor},
		{"moqRetailer", r.SupplierTrade.MOQRetailer},
	}
	for _, moq := range moqs {
		if !moqKnown(moq.value) {
			addWarning("supplierTrade."+moq.field, "trade", fmt.Sprintf("%s is not set", moq.field))
		}
	}

	// Free-text profile fields: one warning per empty field
	freeText := []struct{ field, category, value string }{
		{"supplierTrade.supplierName", "trade", r.SupplierTrade.SupplierName},
		{"supplierTrade.hsCode", "trade", r.SupplierTrade.HSCode},
		{"companyInfo.name", "company", r.CompanyInfo.Name},
		{"companyInfo.country", "company", r.CompanyInfo.Country},
		{"companyInfo.yearEstablished", "company", r.CompanyInfo.YearEstablished},
		{"certificationsStandards.qualityCertifications", "compliance", r.CertificationsStandards.QualityCertifications},
		{"certificationsStandards.complianceStandards", "compliance", r.CertificationsStandards.ComplianceStandards},
		{"clientsMarkets.exportMarkets", "markets", r.ClientsMarkets.ExportMarkets},
		{"clientsMarkets.marketPosition", "markets", r.ClientsMarkets.MarketPosition},
		{"contactLogistics.email", "contact", r.ContactLogistics.Email},
		{"contactLogistics.phone", "contact", r.ContactLogistics.Phone},
		{"logistics.manufacturingTime", "logistics", r.Logistics.ManufacturingTime},
		{"logistics.transitTime", "logistics", r.Logistics.TransitTime},
		{"logistics.paymentMethod", "logistics", r.Logistics.PaymentMethod},
	}
	for _, f := range freeText {
		if strings.TrimSpace(f.value) == "" {
			addWarning(f.field, f.category, fmt.Sprintf("%s is empty", f.field))
		}
	}

	// Sales content
	if len(r.SalesContent.KeySpecifications) == 0 {
		addError("salesContent.keySpecifications", "content", "Key specifications are empty")
	}
	if len(r.SalesContent.Applications) == 0 {
		addWarning("salesContent.applications", "content", "Applications list is empty")
	}
	if len(r.ReviewNotes) == 0 {
		addWarning("reviewNotes", "provenance", "Record carries no review notes")
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

// checkTierOrder warns when a lower tier is priced at or above the next
// tier up. Only checked when both tiers are present.
func checkTierOrder(result *domain.ValidationResult, lowField string, low *float64, highField string, high *float64) {
	if priceKnown(low) && priceKnown(high) && *low >= *high {
		result.Warnings = append(result.Warnings, domain.ValidationIssue{
			Field:    "pricing." + lowField,
			Category: "pricing",
			Message:  fmt.Sprintf("%s (%.2f) should be below %s (%.2f)", lowField, *low, highField, *high),
		})
	}
}
