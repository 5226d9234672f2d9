package recommend

import (
	"github.com/ledgerline/investprofile/backend/internal/profile"
)

// Tier sizes per classification. A size of -1 keeps the full catalog.
type tierRule struct {
	fixed    int
	variable int
}

const fullCatalog = -1

// Select applies the tiering rule for the classification over the
// supplied catalogs. Pure; slicing never fails. Catalogs shorter than
// the requested prefix are returned as-is.
//
//	Conservative:  3 fixed, 2 variable
//	Moderate:      3 fixed, 4 variable
//	Sophisticated: 2 fixed, all variable
//	anything else: full catalogs
func Select(classification profile.Classification, fixedCatalog []FixedIncomeInstrument, variableCatalog []VariableIncomeInstrument) RecommendationSet {
	rule := ruleFor(classification)

	return RecommendationSet{
		FixedIncomeItems:    prefixFixed(fixedCatalog, rule.fixed),
		VariableIncomeItems: prefixVariable(variableCatalog, rule.variable),
	}
}

func ruleFor(classification profile.Classification) tierRule {
	switch classification {
	case profile.Conservative:
		return tierRule{fixed: 3, variable: 2}
	case profile.Moderate:
		return tierRule{fixed: 3, variable: 4}
	case profile.Sophisticated:
		return tierRule{fixed: 2, variable: fullCatalog}
	default:
		return tierRule{fixed: fullCatalog, variable: fullCatalog}
	}
}

func prefixFixed(catalog []FixedIncomeInstrument, n int) []FixedIncomeInstrument {
	if n == fullCatalog || n >= len(catalog) {
		n = len(catalog)
	}
	out := make([]FixedIncomeInstrument, n)
	copy(out, catalog[:n])
	return out
}

func prefixVariable(catalog []VariableIncomeInstrument, n int) []VariableIncomeInstrument {
	if n == fullCatalog || n >= len(catalog) {
		n = len(catalog)
	}
	out := make([]VariableIncomeInstrument, n)
	copy(out, catalog[:n])
	return out
}
