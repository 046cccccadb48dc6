package usecase

import (
	"fmt"
	"strings"

	"github.com/listify/backend/internal/domain"
)

// ConfidenceReport carries the AI's self-reported confidence per section
type ConfidenceReport struct {
	Specifications string `json:"specifications"`
	Pricing        string `json:"pricing"`
	SupplierInfo   string `json:"supplierInfo"`
}

// ReviewNoteInput gathers every signal the note builder turns into the
// record's audit trail
type ReviewNoteInput struct {
	Sources           []string
	SpecSheetProvided bool
	Confidence        ConfidenceReport
	EstimatedFields   []string
	AssumedFields     []string
	MissingFields     []string
	PrefilledPricing  []string
	PrefilledMOQs     []string
	ImageNotes        []string
	GeneratedSKU      string
}

// BuildReviewNotes converts AI confidence/estimation/omission signals
// and prefill actions into the record's ordered audit trail. Ordering is
// append-order: source notes, confidence estimates, AI field lists,
// prefill notes, the SKU assumption, then targeted missing-field checks.
func BuildReviewNotes(record *domain.ProductRecord, in ReviewNoteInput) []domain.ReviewNote {
	var notes []domain.ReviewNote

	add := func(kind domain.ReviewNoteKind, field, message string) {
		notes = append(notes, domain.ReviewNote{Kind: kind, Field: field, Message: message})
	}

	// Source notes come first: one from AI sources (or synthesized), one
	// more if a spec sheet was supplied.
	if len(in.Sources) > 0 {
		add(domain.NoteSource, "", "Sources: "+strings.Join(in.Sources, "; "))
	} else {
		add(domain.NoteSource, "", "Researched via AI analysis; no external sources reported")
	}
	if in.SpecSheetProvided {
		add(domain.NoteSource, "", "Supplemented with operator-supplied specification sheet text")
	}

	// One estimate note per section not rated "high"
	for _, section := range []struct{ name, level string }{
		{"specifications", in.Confidence.Specifications},
		{"pricing", in.Confidence.Pricing},
		{"supplierInfo", in.Confidence.SupplierInfo},
	} {
		if section.level != "" && !strings.EqualFold(section.level, "high") {
			add(domain.NoteEstimate, section.name,
				fmt.Sprintf("AI reported %s confidence for %s", strings.ToLower(section.level), section.name))
		}
	}

	// One note per AI-reported field name in each list
	for _, field := range in.EstimatedFields {
		add(domain.NoteEstimate, field, "Value estimated by AI from comparable products")
	}
	for _, field := range in.AssumedFields {
		add(domain.NoteAssumption, field, "Value assumed by AI without direct evidence")
	}
	for _, field := range in.MissingFields {
		add(domain.NoteMissing, field, "AI could not find a value")
	}

	// Prefill actions
	for _, field := range in.PrefilledPricing {
		add(domain.NoteEstimate, "pricing."+field, "Derived from category price multipliers")
	}
	for _, field := range in.PrefilledMOQs {
		add(domain.NoteAssumption, "supplierTrade."+field, "Filled with standard MOQ default")
	}
	for _, note := range in.ImageNotes {
		add(domain.NoteMissing, "images", note)
	}

	// The generated SKU is always documented
	if in.GeneratedSKU != "" {
		add(domain.NoteAssumption, "sku", fmt.Sprintf("SKU %q generated from the formatted title", in.GeneratedSKU))
	}

	// Targeted checks for required sub-fields the generic loops may not
	// have covered
	covered := make(map[string]bool, len(in.MissingFields))
	for _, field := range in.MissingFields {
		covered[field] = true
	}
	targeted := []struct{ field, value string }{
		{"companyInfo.name", record.CompanyInfo.Name},
		{"companyInfo.country", record.CompanyInfo.Country},
		{"contactLogistics.email", record.ContactLogistics.Email},
		{"contactLogistics.phone", record.ContactLogistics.Phone},
		{"logistics.manufacturingTime", record.Logistics.ManufacturingTime},
		{"logistics.paymentMethod", record.Logistics.PaymentMethod},
	}
	for _, t := range targeted {
		if strings.TrimSpace(t.value) == "" && !covered[t.field] {
			add(domain.NoteMissing, t.field, "Required field absent after research")
		}
	}

	return notes
}
