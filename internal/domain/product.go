package domain

import "time"

// ProductRecord is the canonical listing draft assembled by the research
// pipeline. It is mutated in place by the prefill stages and treated as
// immutable once handed to the validator.
type ProductRecord struct {
	Title    string   `json:"title"`
	SKU      string   `json:"sku"`
	Type     string   `json:"type"` // always "simple"
	Category string   `json:"category"`
	Images   []string `json:"images"`

	CompanyInfo             CompanyInfo             `json:"companyInfo"`
	CertificationsStandards CertificationsStandards `json:"certificationsStandards"`
	ClientsMarkets          ClientsMarkets          `json:"clientsMarkets"`
	ContactLogistics        ContactLogistics        `json:"contactLogistics"`
	Pricing                 Pricing                 `json:"pricing"`
	SupplierTrade           SupplierTrade           `json:"supplierTrade"`
	Logistics               Logistics               `json:"logistics"`
	SalesContent            SalesContent            `json:"salesContent"`
	Descriptions            Descriptions            `json:"descriptions"`

	ReviewNotes []ReviewNote `json:"reviewNotes"`
	Metadata    Metadata     `json:"metadata"`
}

// CompanyInfo holds free-text supplier profile fields
type CompanyInfo struct {
	Name              string `json:"name"`
	Country           string `json:"country"`
	YearEstablished   string `json:"yearEstablished"`
	Ownership         string `json:"ownership"`
	ProductionVolumes string `json:"productionVolumes"`
}

// CertificationsStandards holds free-text compliance fields
type CertificationsStandards struct {
	QualityCertifications string `json:"qualityCertifications"`
	ComplianceStandards   string `json:"complianceStandards"`
	TestingReports        string `json:"testingReports"`
}

// ClientsMarkets holds free-text market position fields
type ClientsMarkets struct {
	MajorClients   string `json:"majorClients"`
	ExportMarkets  string `json:"exportMarkets"`
	MarketPosition string `json:"marketPosition"`
}

// ContactLogistics holds free-text contact fields
type ContactLogistics struct {
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

// Pricing holds the four price tiers. Nil means unknown; the prefiller
// fills missing tiers from category multipliers. The soft invariant
// cost <= supply <= wholesale <= retail is warned, not enforced.
type Pricing struct {
	CostPrice      *float64 `json:"costPrice"`
	SupplyPrice    *float64 `json:"supplyPrice"`
	WholesalePrice *float64 `json:"wholesalePrice"`
	RetailPrice    *float64 `json:"retailPrice"`
}

// SupplierTrade holds supplier identity and minimum-order-quantity tiers
type SupplierTrade struct {
	SupplierName         string `json:"supplierName"`
	HSCode               string `json:"hsCode"`
	MOQ                  *int   `json:"moq"`
	MOQExclusiveImporter *int   `json:"moqExclusiveImporter"`
	MOQDistributor       *int   `json:"moqDistributor"`
	MOQRetailer          *int   `json:"moqRetailer"`
}

// Logistics holds shipping and compliance logistics fields
type Logistics struct {
	CertificationRequired bool   `json:"certificationRequired"`
	CertificationDetails  string `json:"certificationDetails"`
	ManufacturingTime     string `json:"manufacturingTime"`
	TransitTime           string `json:"transitTime"`
	Packaging             string `json:"packaging"`
	PaymentMethod         string `json:"paymentMethod"`
}

// Certification is a name/details pair in the sales content
type Certification struct {
	Name    string `json:"name"`
	Details string `json:"details"`
}

// SalesContent holds the listing's structured sales sections
type SalesContent struct {
	KeySpecifications []string        `json:"keySpecifications"`
	PackageOptions    []string        `json:"packageOptions"`
	Applications      []string        `json:"applications"`
	Certifications    []Certification `json:"certifications"`
}

// Descriptions holds the listing's narrative sections
type Descriptions struct {
	Overview       string   `json:"overview"`
	IdentityLine   string   `json:"identityLine"`
	Highlights     []string `json:"highlights"`
	TrustStatement string   `json:"trustStatement"`
}

// Metadata records how and when the record was produced
type Metadata struct {
	ResearchedModel string    `json:"researchedModel"`
	ExtractedAt     time.Time `json:"extractedAt"`
	Sources         []string  `json:"sources"`
	SpecHash        string    `json:"specHash"`
}

// ReviewNoteKind classifies a provenance note
type ReviewNoteKind string

const (
	NoteSource     ReviewNoteKind = "source"
	NoteEstimate   ReviewNoteKind = "estimate"
	NoteAssumption ReviewNoteKind = "assumption"
	NoteMissing    ReviewNoteKind = "missing"
)

// ReviewNote is one append-only audit entry explaining how an uncertain
// field was sourced, estimated, assumed, or left missing.
type ReviewNote struct {
	Kind    ReviewNoteKind `json:"kind"`
	Field   string         `json:"field,omitempty"`
	Message string         `json:"message"`
}
