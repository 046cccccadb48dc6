package catalog

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listify/backend/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func researchedRecord() *domain.ProductRecord {
	rec := &domain.ProductRecord{
		Title:    "Jimmy H8 Flex Cordless Vacuum Cleaner",
		SKU:      "jimmy-h8-flex",
		Type:     "simple",
		Category: "Home & Garden > Cleaning Equipment",
		Images:   []string{"https://cdn.vendor.example/h8-1.jpg", "https://cdn.vendor.example/h8-2.jpg"},
	}
	rec.CompanyInfo = domain.CompanyInfo{Name: "Jimmy Technology Co.", Country: "China", YearEstablished: "2015"}
	rec.ContactLogistics = domain.ContactLogistics{Email: "sales@jimmy.example", Phone: "+86 123 4567"}
	rec.Pricing = domain.Pricing{
		CostPrice:      floatPtr(110.22),
		SupplyPrice:    floatPtr(123.45),
		WholesalePrice: floatPtr(148.14),
		RetailPrice:    floatPtr(199.99),
	}
	rec.SupplierTrade = domain.SupplierTrade{
		SupplierName: "Jimmy Technology Co.",
		HSCode:       "8508.11",
		MOQ:          intPtr(100),
		MOQRetailer:  intPtr(50),
	}
	rec.Logistics = domain.Logistics{CertificationRequired: true, ManufacturingTime: "30 days", PaymentMethod: "T/T"}
	rec.SalesContent = domain.SalesContent{
		KeySpecifications: []string{"Motor: 450 W", "Runtime: 40 min"},
		Applications:      []string{"Home cleaning", "Car interiors"},
		Certifications:    []domain.Certification{{Name: "CE", Details: "EU conformity"}},
	}
	rec.Descriptions = domain.Descriptions{
		Overview:   "A cordless handheld vacuum with <strong> suction.",
		Highlights: []string{"450 W motor", "40 min runtime"},
	}
	rec.ReviewNotes = []domain.ReviewNote{
		{Kind: domain.NoteSource, Message: "Sources: https://vendor.example/h8"},
		{Kind: domain.NoteEstimate, Field: "pricing.costPrice", Message: "Derived from category price multipliers"},
	}
	rec.Metadata = domain.Metadata{
		ResearchedModel: "gpt-4o-mini",
		Sources:         []string{"https://vendor.example/h8"},
		SpecHash:        "1f9pz3k",
	}
	return rec
}

func TestBuildProductPayload(t *testing.T) {
	payload := BuildProductPayload(researchedRecord())

	t.Run("always submits as a draft", func(t *testing.T) {
		assert.Equal(t, "draft", payload.Status)
	})

	t.Run("maps identity and price", func(t *testing.T) {
		assert.Equal(t, "Jimmy H8 Flex Cordless Vacuum Cleaner", payload.Name)
		assert.Equal(t, "jimmy-h8-flex", payload.SKU)
		assert.Equal(t, "simple", payload.Type)
		assert.Equal(t, "199.99", payload.RegularPrice)
	})

	t.Run("uses the leaf category segment", func(t *testing.T) {
		require.Len(t, payload.Categories, 1)
		assert.Equal(t, "Cleaning Equipment", payload.Categories[0].Name)
	})

	t.Run("carries image sources", func(t *testing.T) {
		require.Len(t, payload.Images, 2)
		assert.Equal(t, "https://cdn.vendor.example/h8-1.jpg", payload.Images[0].Src)
	})

	t.Run("escapes HTML in descriptions", func(t *testing.T) {
		assert.Contains(t, payload.Description, "&lt;strong&gt;")
		assert.Contains(t, payload.Description, "<h3>Highlights</h3>")
		assert.Contains(t, payload.Description, "<h3>Review Notes</h3>")
		assert.Contains(t, payload.ShortDescription, "<li>Motor: 450 W</li>")
	})
}

func TestBuildProductPayload_MetaRoundTrip(t *testing.T) {
	rec := researchedRecord()
	payload := BuildProductPayload(rec)
	values := MetaValues(payload)

	t.Run("scalar fields survive", func(t *testing.T) {
		assert.Equal(t, "Jimmy Technology Co.", values[MetaCompanyName])
		assert.Equal(t, "China", values[MetaCompanyCountry])
		assert.Equal(t, "sales@jimmy.example", values[MetaContactEmail])
		assert.Equal(t, "8508.11", values[MetaHSCode])
		assert.Equal(t, "true", values[MetaCertificationRequired])
		assert.Equal(t, "gpt-4o-mini", values[MetaResearchedModel])
		assert.Equal(t, "1f9pz3k", values[MetaSpecHash])
	})

	t.Run("numeric fields format deterministically", func(t *testing.T) {
		assert.Equal(t, "110.22", values[MetaCostPrice])
		assert.Equal(t, "123.45", values[MetaSupplyPrice])
		assert.Equal(t, "148.14", values[MetaWholesalePrice])
		assert.Equal(t, "100", values[MetaMOQ])
		assert.Equal(t, "50", values[MetaMOQRetailer])
	})

	t.Run("unset numeric fields flatten to empty", func(t *testing.T) {
		assert.Empty(t, values[MetaMOQExclusiveImporter])
		assert.Empty(t, values[MetaMOQDistributor])
	})

	t.Run("lists flatten to newline joins", func(t *testing.T) {
		specs := strings.Split(values[MetaKeySpecifications], "\n")
		assert.Equal(t, rec.SalesContent.KeySpecifications, specs)
		assert.Equal(t, "Home cleaning\nCar interiors", values[MetaApplications])
	})

	t.Run("structured tables survive as JSON", func(t *testing.T) {
		var certs []domain.Certification
		require.NoError(t, json.Unmarshal([]byte(values[MetaCertifications]), &certs))
		assert.Equal(t, rec.SalesContent.Certifications, certs)

		var notes []domain.ReviewNote
		require.NoError(t, json.Unmarshal([]byte(values[MetaReviewNotes]), &notes))
		assert.Equal(t, rec.ReviewNotes, notes)
	})
}

func TestBuildProductPayload_SparseRecord(t *testing.T) {
	rec := &domain.ProductRecord{Title: "Acme Blender Pro", SKU: "acme-blender-pro"}
	rec.Descriptions.Overview = strings.Repeat("Long overview text. ", 20)
	payload := BuildProductPayload(rec)

	assert.Equal(t, "simple", payload.Type, "empty type defaults")
	assert.Empty(t, payload.RegularPrice)
	assert.Empty(t, payload.Categories)
	assert.Empty(t, payload.Images)

	// no key specs, so the short description truncates the overview
	assert.True(t, strings.HasSuffix(payload.ShortDescription, "..."))
	assert.LessOrEqual(t, len(payload.ShortDescription), 163)
}

func TestLastCategorySegment(t *testing.T) {
	assert.Equal(t, "Cleaning Equipment", lastCategorySegment("Home & Garden > Cleaning Equipment"))
	assert.Equal(t, "Vacuums", lastCategorySegment("Vacuums"))
	assert.Equal(t, "", lastCategorySegment(""))
}
