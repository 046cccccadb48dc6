package catalog

import (
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/listify/backend/internal/domain"
)

// Metadata keys used when flattening structured record sections into the
// catalog's opaque key/value pairs. List-valued fields are newline
// joined; the certifications table is JSON encoded. Both transforms are
// lossy for structure and documented as such.
const (
	MetaCompanyName           = "company_name"
	MetaCompanyCountry        = "company_country"
	MetaYearEstablished       = "company_year_established"
	MetaOwnership             = "company_ownership"
	MetaProductionVolumes     = "company_production_volumes"
	MetaQualityCertifications = "quality_certifications"
	MetaComplianceStandards   = "compliance_standards"
	MetaTestingReports        = "testing_reports"
	MetaMajorClients          = "major_clients"
	MetaExportMarkets         = "export_markets"
	MetaMarketPosition        = "market_position"
	MetaContactPerson         = "contact_person"
	MetaContactEmail          = "contact_email"
	MetaContactPhone          = "contact_phone"
	MetaContactAddress        = "contact_address"
	MetaCostPrice             = "cost_price"
	MetaSupplyPrice           = "supply_price"
	MetaWholesalePrice        = "wholesale_price"
	MetaSupplierName          = "supplier_name"
	MetaHSCode                = "hs_code"
	MetaMOQ                   = "moq"
	MetaMOQExclusiveImporter  = "moq_exclusive_importer"
	MetaMOQDistributor        = "moq_distributor"
	MetaMOQRetailer           = "moq_retailer"
	MetaCertificationRequired = "certification_required"
	MetaCertificationDetails  = "certification_details"
	MetaManufacturingTime     = "manufacturing_time"
	MetaTransitTime           = "transit_time"
	MetaPackaging             = "packaging"
	MetaPaymentMethod         = "payment_method"
	MetaKeySpecifications     = "key_specifications"
	MetaPackageOptions        = "package_options"
	MetaApplications          = "applications"
	MetaCertifications        = "certifications"
	MetaIdentityLine          = "identity_line"
	MetaTrustStatement        = "trust_statement"
	MetaReviewNotes           = "review_notes"
	MetaResearchedModel       = "researched_model"
	MetaSources               = "sources"
	MetaSpecHash              = "spec_hash"
)

// BuildProductPayload transforms a record into the catalog API's product
// shape. The listing is always created as a draft; publishing is a
// manual act in the catalog admin.
func BuildProductPayload(r *domain.ProductRecord) *domain.CatalogProductPayload {
	payload := &domain.CatalogProductPayload{
		Name:             r.Title,
		Type:             r.Type,
		SKU:              r.SKU,
		Status:           "draft",
		Description:      buildDescription(r),
		ShortDescription: buildShortDescription(r),
	}
	if payload.Type == "" {
		payload.Type = "simple"
	}

	if r.Pricing.RetailPrice != nil && *r.Pricing.RetailPrice > 0 {
		payload.RegularPrice = formatPrice(*r.Pricing.RetailPrice)
	}

	if segment := lastCategorySegment(r.Category); segment != "" {
		payload.Categories = []domain.CatalogCategory{{Name: segment}}
	}

	for _, src := range r.Images {
		payload.Images = append(payload.Images, domain.CatalogImage{Src: src})
	}

	payload.MetaData = buildMetaData(r)
	return payload
}

// buildMetaData flattens the structured sections into key/value pairs
func buildMetaData(r *domain.ProductRecord) []domain.CatalogMeta {
	certifications, _ := json.Marshal(r.SalesContent.Certifications)
	reviewNotes, _ := json.Marshal(r.ReviewNotes)

	pairs := []domain.CatalogMeta{
		{Key: MetaCompanyName, Value: r.CompanyInfo.Name},
		{Key: MetaCompanyCountry, Value: r.CompanyInfo.Country},
		{Key: MetaYearEstablished, Value: r.CompanyInfo.YearEstablished},
		{Key: MetaOwnership, Value: r.CompanyInfo.Ownership},
		{Key: MetaProductionVolumes, Value: r.CompanyInfo.ProductionVolumes},
		{Key: MetaQualityCertifications, Value: r.CertificationsStandards.QualityCertifications},
		{Key: MetaComplianceStandards, Value: r.CertificationsStandards.ComplianceStandards},
		{Key: MetaTestingReports, Value: r.CertificationsStandards.TestingReports},
		{Key: MetaMajorClients, Value: r.ClientsMarkets.MajorClients},
		{Key: MetaExportMarkets, Value: r.ClientsMarkets.ExportMarkets},
		{Key: MetaMarketPosition, Value: r.ClientsMarkets.MarketPosition},
		{Key: MetaContactPerson, Value: r.ContactLogistics.ContactPerson},
		{Key: MetaContactEmail, Value: r.ContactLogistics.Email},
		{Key: MetaContactPhone, Value: r.ContactLogistics.Phone},
		{Key: MetaContactAddress, Value: r.ContactLogistics.Address},
		{Key: MetaCostPrice, Value: priceMeta(r.Pricing.CostPrice)},
		{Key: MetaSupplyPrice, Value: priceMeta(r.Pricing.SupplyPrice)},
		{Key: MetaWholesalePrice, Value: priceMeta(r.Pricing.WholesalePrice)},
		{Key: MetaSupplierName, Value: r.SupplierTrade.SupplierName},
		{Key: MetaHSCode, Value: r.SupplierTrade.HSCode},
		{Key: MetaMOQ, Value: moqMeta(r.SupplierTrade.MOQ)},
		{Key: MetaMOQExclusiveImporter, Value: moqMeta(r.SupplierTrade.MOQExclusiveImporter)},
		{Key: MetaMOQDistributor, Value: moqMeta(r.SupplierTrade.MOQDistributor)},
		{Key: MetaMOQRetailer, Value: moqMeta(r.SupplierTrade.MOQRetailer)},
		{Key: MetaCertificationRequired, Value: strconv.FormatBool(r.Logistics.CertificationRequired)},
		{Key: MetaCertificationDetails, Value: r.Logistics.CertificationDetails},
		{Key: MetaManufacturingTime, Value: r.Logistics.ManufacturingTime},
		{Key: MetaTransitTime, Value: r.Logistics.TransitTime},
		{Key: MetaPackaging, Value: r.Logistics.Packaging},
		{Key: MetaPaymentMethod, Value: r.Logistics.PaymentMethod},
		{Key: MetaKeySpecifications, Value: strings.Join(r.SalesContent.KeySpecifications, "\n")},
		{Key: MetaPackageOptions, Value: strings.Join(r.SalesContent.PackageOptions, "\n")},
		{Key: MetaApplications, Value: strings.Join(r.SalesContent.Applications, "\n")},
		{Key: MetaCertifications, Value: string(certifications)},
		{Key: MetaIdentityLine, Value: r.Descriptions.IdentityLine},
		{Key: MetaTrustStatement, Value: r.Descriptions.TrustStatement},
		{Key: MetaReviewNotes, Value: string(reviewNotes)},
		{Key: MetaResearchedModel, Value: r.Metadata.ResearchedModel},
		{Key: MetaSources, Value: strings.Join(r.Metadata.Sources, "\n")},
		{Key: MetaSpecHash, Value: r.Metadata.SpecHash},
	}
	return pairs
}

// MetaValues indexes a payload's metadata pairs by key, for callers that
// need to read a flattened record back
func MetaValues(payload *domain.CatalogProductPayload) map[string]string {
	values := make(map[string]string, len(payload.MetaData))
	for _, pair := range payload.MetaData {
		values[pair.Key] = pair.Value
	}
	return values
}

// buildDescription renders the long HTML description from the overview,
// highlights and review notes
func buildDescription(r *domain.ProductRecord) string {
	var b strings.Builder

	if r.Descriptions.Overview != "" {
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(r.Descriptions.Overview))
	}

	if len(r.Descriptions.Highlights) > 0 {
		b.WriteString("<h3>Highlights</h3>\n<ul>\n")
		for _, highlight := range r.Descriptions.Highlights {
			fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(highlight))
		}
		b.WriteString("</ul>\n")
	}

	if len(r.ReviewNotes) > 0 {
		b.WriteString("<h3>Review Notes</h3>\n<ul>\n")
		for _, note := range r.ReviewNotes {
			label := string(note.Kind)
			if note.Field != "" {
				label += " " + note.Field
			}
			fmt.Fprintf(&b, "<li><strong>%s</strong>: %s</li>\n", html.EscapeString(label), html.EscapeString(note.Message))
		}
		b.WriteString("</ul>\n")
	}

	return b.String()
}

// buildShortDescription renders the short description from the key
// specifications, falling back to a truncated overview
func buildShortDescription(r *domain.ProductRecord) string {
	if len(r.SalesContent.KeySpecifications) > 0 {
		var b strings.Builder
		b.WriteString("<ul>\n")
		for _, spec := range r.SalesContent.KeySpecifications {
			fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(spec))
		}
		b.WriteString("</ul>\n")
		return b.String()
	}

	overview := r.Descriptions.Overview
	if len(overview) > 160 {
		overview = overview[:160] + "..."
	}
	return html.EscapeString(overview)
}

// lastCategorySegment maps an "A > B" hierarchical path to its leaf
func lastCategorySegment(category string) string {
	parts := strings.Split(category, ">")
	return strings.TrimSpace(parts[len(parts)-1])
}

func formatPrice(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func priceMeta(v *float64) string {
	if v == nil || *v <= 0 {
		return ""
	}
	return formatPrice(*v)
}

func moqMeta(v *int) string {
	if v == nil || *v <= 0 {
		return ""
	}
	return strconv.Itoa(*v)
}
