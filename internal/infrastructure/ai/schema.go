package ai

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/listify/backend/internal/domain"
)

// ResearchPayload is the coerced shape of the AI researcher reply. All
// fields are optional; the orchestrator substitutes defaults for
// anything missing.
type ResearchPayload struct {
	Title    string
	Category string
	Images   []string

	CompanyName       string
	CompanyCountry    string
	YearEstablished   string
	Ownership         string
	ProductionVolumes string

	QualityCertifications string
	ComplianceStandards   string
	TestingReports        string

	MajorClients   string
	ExportMarkets  string
	MarketPosition string

	ContactPerson string
	Email         string
	Phone         string
	Address       string

	CostPrice      *float64
	SupplyPrice    *float64
	WholesalePrice *float64
	RetailPrice    *float64

	SupplierName         string
	HSCode               string
	MOQ                  *int
	MOQExclusiveImporter *int
	MOQDistributor       *int
	MOQRetailer          *int

	CertificationRequired bool
	CertificationDetails  string
	ManufacturingTime     string
	TransitTime           string
	Packaging             string
	PaymentMethod         string

	KeySpecifications []string
	PackageOptions    []string
	Applications      []string
	Certifications    []CertificationPair

	Overview       string
	IdentityLine   string
	Highlights     []string
	TrustStatement string

	Sources                 []string
	ConfidenceSpecification string
	ConfidencePricing       string
	ConfidenceSupplierInfo  string
	EstimatedFields         []string
	AssumedFields           []string
	MissingFields           []string
}

// CertificationPair mirrors the certifications table rows
type CertificationPair struct {
	Name    string `json:"name"`
	Details string `json:"details"`
}

// loosePayload is the wire shape with coercing field types. The AI is
// prompted for this schema but is not trusted to honor the types.
type loosePayload struct {
	Title    flexString  `json:"title"`
	Category flexString  `json:"category"`
	Images   flexStrings `json:"images"`

	CompanyInfo struct {
		Name              flexString `json:"name"`
		Country           flexString `json:"country"`
		YearEstablished   flexString `json:"yearEstablished"`
		Ownership         flexString `json:"ownership"`
		ProductionVolumes flexString `json:"productionVolumes"`
	} `json:"companyInfo"`

	CertificationsStandards struct {
		QualityCertifications flexString `json:"qualityCertifications"`
		ComplianceStandards   flexString `json:"complianceStandards"`
		TestingReports        flexString `json:"testingReports"`
	} `json:"certificationsStandards"`

	ClientsMarkets struct {
		MajorClients   flexString `json:"majorClients"`
		ExportMarkets  flexString `json:"exportMarkets"`
		MarketPosition flexString `json:"marketPosition"`
	} `json:"clientsMarkets"`

	ContactLogistics struct {
		ContactPerson flexString `json:"contactPerson"`
		Email         flexString `json:"email"`
		Phone         flexString `json:"phone"`
		Address       flexString `json:"address"`
	} `json:"contactLogistics"`

	Pricing struct {
		CostPrice      flexFloat `json:"costPrice"`
		SupplyPrice    flexFloat `json:"supplyPrice"`
		WholesalePrice flexFloat `json:"wholesalePrice"`
		RetailPrice    flexFloat `json:"retailPrice"`
	} `json:"pricing"`

	SupplierTrade struct {
		SupplierName         flexString `json:"supplierName"`
		HSCode               flexString `json:"hsCode"`
		MOQ                  flexInt    `json:"moq"`
		MOQExclusiveImporter flexInt    `json:"moqExclusiveImporter"`
		MOQDistributor       flexInt    `json:"moqDistributor"`
		MOQRetailer          flexInt    `json:"moqRetailer"`
	} `json:"supplierTrade"`

	Logistics struct {
		CertificationRequired flexBool   `json:"certificationRequired"`
		CertificationDetails  flexString `json:"certificationDetails"`
		ManufacturingTime     flexString `json:"manufacturingTime"`
		TransitTime           flexString `json:"transitTime"`
		Packaging             flexString `json:"packaging"`
		PaymentMethod         flexString `json:"paymentMethod"`
	} `json:"logistics"`

	SalesContent struct {
		KeySpecifications flexStrings         `json:"keySpecifications"`
		PackageOptions    flexStrings         `json:"packageOptions"`
		Applications      flexStrings         `json:"applications"`
		Certifications    []CertificationPair `json:"certifications"`
	} `json:"salesContent"`

	Descriptions struct {
		Overview       flexString  `json:"overview"`
		IdentityLine   flexString  `json:"identityLine"`
		Highlights     flexStrings `json:"highlights"`
		TrustStatement flexString  `json:"trustStatement"`
	} `json:"descriptions"`

	Sources    flexStrings `json:"sources"`
	Confidence struct {
		Specifications flexString `json:"specifications"`
		Pricing        flexString `json:"pricing"`
		SupplierInfo   flexString `json:"supplierInfo"`
	} `json:"confidence"`
	EstimatedFields flexStrings `json:"estimatedFields"`
	AssumedFields   flexStrings `json:"assumedFields"`
	MissingFields   flexStrings `json:"missingFields"`
}

// StripCodeFences removes a surrounding markdown code fence (``` or
// ```json) from an AI reply
func StripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	} else {
		trimmed = strings.TrimPrefix(trimmed, "```")
	}
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

// ParseResearchPayload strips markdown fences and coerces the AI reply
// into a ResearchPayload. Malformed JSON fails fast with ErrUpstreamParse
// carrying a truncated raw body; an empty reply fails with
// ErrUpstreamEmpty. This runs before the business validator so upstream
// shape problems never propagate into the pipeline.
func ParseResearchPayload(raw string) (*ResearchPayload, error) {
	cleaned := StripCodeFences(raw)
	if cleaned == "" {
		return nil, domain.ErrUpstreamEmpty
	}

	var loose loosePayload
	if err := json.Unmarshal([]byte(cleaned), &loose); err != nil {
		return nil, fmt.Errorf("%w: %v: %s", domain.ErrUpstreamParse, err, Truncate(cleaned, 300))
	}

	return &ResearchPayload{
		Title:    loose.Title.String(),
		Category: loose.Category.String(),
		Images:   []string(loose.Images),

		CompanyName:       loose.CompanyInfo.Name.String(),
		CompanyCountry:    loose.CompanyInfo.Country.String(),
		YearEstablished:   loose.CompanyInfo.YearEstablished.String(),
		Ownership:         loose.CompanyInfo.Ownership.String(),
		ProductionVolumes: loose.CompanyInfo.ProductionVolumes.String(),

		QualityCertifications: loose.CertificationsStandards.QualityCertifications.String(),
		ComplianceStandards:   loose.CertificationsStandards.ComplianceStandards.String(),
		TestingReports:        loose.CertificationsStandards.TestingReports.String(),

		MajorClients:   loose.ClientsMarkets.MajorClients.String(),
		ExportMarkets:  loose.ClientsMarkets.ExportMarkets.String(),
		MarketPosition: loose.ClientsMarkets.MarketPosition.String(),

		ContactPerson: loose.ContactLogistics.ContactPerson.String(),
		Email:         loose.ContactLogistics.Email.String(),
		Phone:         loose.ContactLogistics.Phone.String(),
		Address:       loose.ContactLogistics.Address.String(),

		CostPrice:      loose.Pricing.CostPrice.Value(),
		SupplyPrice:    loose.Pricing.SupplyPrice.Value(),
		WholesalePrice: loose.Pricing.WholesalePrice.Value(),
		RetailPrice:    loose.Pricing.RetailPrice.Value(),

		SupplierName:         loose.SupplierTrade.SupplierName.String(),
		HSCode:               loose.SupplierTrade.HSCode.String(),
		MOQ:                  loose.SupplierTrade.MOQ.Value(),
		MOQExclusiveImporter: loose.SupplierTrade.MOQExclusiveImporter.Value(),
		MOQDistributor:       loose.SupplierTrade.MOQDistributor.Value(),
		MOQRetailer:          loose.SupplierTrade.MOQRetailer.Value(),

		CertificationRequired: bool(loose.Logistics.CertificationRequired),
		CertificationDetails:  loose.Logistics.CertificationDetails.String(),
		ManufacturingTime:     loose.Logistics.ManufacturingTime.String(),
		TransitTime:           loose.Logistics.TransitTime.String(),
		Packaging:             loose.Logistics.Packaging.String(),
		PaymentMethod:         loose.Logistics.PaymentMethod.String(),

		KeySpecifications: []string(loose.SalesContent.KeySpecifications),
		PackageOptions:    []string(loose.SalesContent.PackageOptions),
		Applications:      []string(loose.SalesContent.Applications),
		Certifications:    loose.SalesContent.Certifications,

		Overview:       loose.Descriptions.Overview.String(),
		IdentityLine:   loose.Descriptions.IdentityLine.String(),
		Highlights:     []string(loose.Descriptions.Highlights),
		TrustStatement: loose.Descriptions.TrustStatement.String(),

		Sources:                 []string(loose.Sources),
		ConfidenceSpecification: loose.Confidence.Specifications.String(),
		ConfidencePricing:       loose.Confidence.Pricing.String(),
		ConfidenceSupplierInfo:  loose.Confidence.SupplierInfo.String(),
		EstimatedFields:         []string(loose.EstimatedFields),
		AssumedFields:           []string(loose.AssumedFields),
		MissingFields:           []string(loose.MissingFields),
	}, nil
}

// flexString accepts a JSON string, number, bool or null
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	*f = flexString(strings.Trim(trimmed, `"`))
	return nil
}

func (f flexString) String() string { return string(f) }

// flexFloat accepts a JSON number, a numeric string, or null
type flexFloat struct {
	value *float64
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		f.value = &n
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			f.value = &parsed
		}
	}
	return nil
}

func (f flexFloat) Value() *float64 { return f.value }

// flexInt accepts a JSON integer, a float (truncated), a numeric string,
// or null
type flexInt struct {
	value *int
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		v := int(n)
		f.value = &v
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if parsed, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			f.value = &parsed
		}
	}
	return nil
}

func (f flexInt) Value() *int { return f.value }

// flexBool accepts a JSON bool, the strings "true"/"yes", or null
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flexBool(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		lowered := strings.ToLower(strings.TrimSpace(s))
		*f = flexBool(lowered == "true" || lowered == "yes")
	}
	return nil
}

// flexStrings accepts a JSON array of mixed scalars or a single string
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err == nil {
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			var fs flexString
			if err := fs.UnmarshalJSON(item); err == nil && fs != "" {
				out = append(out, fs.String())
			}
		}
		*f = out
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil && strings.TrimSpace(s) != "" {
		*f = []string{strings.TrimSpace(s)}
	}
	return nil
}
