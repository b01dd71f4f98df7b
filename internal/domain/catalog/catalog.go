// Package catalog provides the static emission factor catalog.
// Factor sets are versioned reference data, loaded once at process start
// and never mutated. A country without a factor set means spend-based
// entry is unavailable for that country, not an error.
package catalog

import (
	"github.com/shopspring/decimal"
)

// FactorSet is a country-specific bundle of emission-intensity factors
// plus its sourcing metadata. Factors are expressed in tCO2e per unit of
// the set's currency.
type FactorSet struct {
	Model      string
	Geography  string
	Year       int
	Currency   string
	Source     string
	Categories []Category
}

// Category is a spend category within a factor set. The same category ID
// recurs across sets with different factor values; a factor is only
// meaningful within its owning set's currency.
type Category struct {
	ID        string
	Label     string
	SectorRef string
	Factor    decimal.Decimal
}

// FactorSetFor returns the factor set for a country code, or false when
// the country is not covered by the catalog.
func FactorSetFor(countryCode string) (*FactorSet, bool) {
	fs, ok := factorSets[countryCode]
	return fs, ok
}

// CategoryFor returns the category with the given ID within the set, or
// false when the ID does not resolve in this set.
func (fs *FactorSet) CategoryFor(categoryID string) (*Category, bool) {
	for i := range fs.Categories {
		if fs.Categories[i].ID == categoryID {
			return &fs.Categories[i], true
		}
	}
	return nil, false
}

// Countries returns the country codes covered by the catalog.
func Countries() []string {
	codes := make([]string, 0, len(factorSets))
	for code := range factorSets {
		codes = append(codes, code)
	}
	return codes
}

func f(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
