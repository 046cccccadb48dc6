package usecase

import (
	"math"
	"strings"

	"github.com/listify/backend/internal/domain"
)

// CategoryMultipliers are the tier-to-tier markup ratios for a product
// category: supply = cost * CostToSupply, wholesale = supply *
// SupplyToWholesale, retail = wholesale * WholesaleToRetail.
type CategoryMultipliers struct {
	CostToSupply      float64
	SupplyToWholesale float64
	WholesaleToRetail float64
}

// categoryMultiplierTable maps category substrings to markup ratios.
// Scanned in order; unmatched categories use defaultMultipliers.
var categoryMultiplierTable = []struct {
	match       string
	multipliers CategoryMultipliers
}{
	{"electronics", CategoryMultipliers{CostToSupply: 1.10, SupplyToWholesale: 1.18, WholesaleToRetail: 1.30}},
	{"appliances", CategoryMultipliers{CostToSupply: 1.12, SupplyToWholesale: 1.22, WholesaleToRetail: 1.38}},
	{"cleaning", CategoryMultipliers{CostToSupply: 1.12, SupplyToWholesale: 1.20, WholesaleToRetail: 1.35}},
}

var defaultMultipliers = CategoryMultipliers{CostToSupply: 1.15, SupplyToWholesale: 1.25, WholesaleToRetail: 1.40}

// defaultRetailPrice seeds the ladder when no price tier is known at all
const defaultRetailPrice = 199.99

// defaultMOQs are the fixed minimum-order-quantity defaults per tier
var defaultMOQs = struct {
	Base              int
	ExclusiveImporter int
	Distributor       int
	Retailer          int
}{Base: 100, ExclusiveImporter: 500, Distributor: 200, Retailer: 50}

// MultipliersFor resolves the markup ratios for a category by
// case-insensitive substring match
func MultipliersFor(category string) CategoryMultipliers {
	lowered := strings.ToLower(category)
	for _, entry := range categoryMultiplierTable {
		if strings.Contains(lowered, entry.match) {
			return entry.multipliers
		}
	}
	return defaultMultipliers
}

// PrefillPricing fills missing price tiers from whichever anchor is
// present. Retail anchors downward derivation, cost anchors upward;
// with no anchor at all, retail is seeded at the fixed default and the
// rest derived from it. Each derived value rounds to 2 decimals and the
// next derivation chains off the rounded value. Returns the field names
// that were filled, for review-note generation.
func PrefillPricing(p *domain.Pricing, category string) []string {
	m := MultipliersFor(category)
	var filled []string

	fill := func(target **float64, field string, value float64) {
		if priceKnown(*target) {
			return
		}
		rounded := round2(value)
		*target = &rounded
		filled = append(filled, field)
	}

	switch {
	case priceKnown(p.RetailPrice):
		fill(&p.WholesalePrice, "wholesalePrice", *p.RetailPrice/m.WholesaleToRetail)
		fill(&p.SupplyPrice, "supplyPrice", *p.WholesalePrice/m.SupplyToWholesale)
		fill(&p.CostPrice, "costPrice", *p.SupplyPrice/m.CostToSupply)
	case priceKnown(p.CostPrice):
		fill(&p.SupplyPrice, "supplyPrice", *p.CostPrice*m.CostToSupply)
		fill(&p.WholesalePrice, "wholesalePrice", *p.SupplyPrice*m.SupplyToWholesale)
		fill(&p.RetailPrice, "retailPrice", *p.WholesalePrice*m.WholesaleToRetail)
	default:
		fill(&p.RetailPrice, "retailPrice", defaultRetailPrice)
		fill(&p.WholesalePrice, "wholesalePrice", *p.RetailPrice/m.WholesaleToRetail)
		fill(&p.SupplyPrice, "supplyPrice", *p.WholesalePrice/m.SupplyToWholesale)
		fill(&p.CostPrice, "costPrice", *p.SupplyPrice/m.CostToSupply)
	}

	return filled
}

// PrefillMOQs replaces missing or non-positive MOQ tiers with fixed
// defaults. No inference between tiers. Returns the field names that
// were filled.
func PrefillMOQs(st *domain.SupplierTrade) []string {
	var filled []string

	fill := func(target **int, field string, value int) {
		if moqKnown(*target) {
			return
		}
		v := value
		*target = &v
		filled = append(filled, field)
	}

	fill(&st.MOQ, "moq", defaultMOQs.Base)
	fill(&st.MOQExclusiveImporter, "moqExclusiveImporter", defaultMOQs.ExclusiveImporter)
	fill(&st.MOQDistributor, "moqDistributor", defaultMOQs.Distributor)
	fill(&st.MOQRetailer, "moqRetailer", defaultMOQs.Retailer)

	return filled
}

func priceKnown(v *float64) bool { return v != nil && *v > 0 }

func moqKnown(v *int) bool { return v != nil && *v > 0 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
