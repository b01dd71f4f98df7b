// Package entry contains entry-related use cases.
package entry

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/scope3-tracker/backend/internal/domain/catalog"
	"github.com/scope3-tracker/backend/internal/domain/entity"
	domainerror "github.com/scope3-tracker/backend/internal/domain/error"
)

const (
	// MaxVendorNameLength is the maximum allowed length for vendor names.
	MaxVendorNameLength = 255
	// MaxNotesLength is the maximum allowed length for entry notes.
	MaxNotesLength = 1000
)

// Candidate is an unvalidated entry submission.
type Candidate struct {
	Year            int
	Month           *int
	SpendCountry    string
	SpendRegion     string
	Method          entity.CalculationMethod
	CategoryID      string
	SpendAmount     *decimal.Decimal
	Currency        string
	Emissions       *decimal.Decimal
	EmissionsSource string
	VendorName      string
	Notes           string
}

// Computed holds the derived fields of a validated candidate: the emissions
// result and, for spend-based entries, the factor snapshot captured at
// computation time.
type Computed struct {
	CategoryLabel string
	Emissions     decimal.Decimal
	Factor        *entity.FactorSnapshot
}

// ValidateAndCompute validates a candidate and computes its emissions value.
// Checks run in a fixed order and the first failure wins, each with a
// distinct error code. The function is pure: persistence is the caller's
// responsibility, and the clock is passed in rather than read ambiently.
func ValidateAndCompute(c Candidate, now time.Time) (*Computed, error) {
	// 1. Required fields
	if c.Year == 0 || c.Month == nil || c.CategoryID == "" || c.SpendCountry == "" || c.SpendRegion == "" {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeMissingRequiredFields,
			"year, month, category, spend country and spend region are required",
			domainerror.ErrMissingRequiredFields,
		)
	}
	if *c.Month < 1 || *c.Month > 12 {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeInvalidMonth,
			"month must be between 1 and 12",
			domainerror.ErrInvalidMonth,
		)
	}
	if !isValidMethod(c.Method) {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeInvalidMethod,
			"calculation method must be 'spend_based' or 'actual'",
			domainerror.ErrInvalidCalculationMethod,
		)
	}
	if len(c.VendorName) > MaxVendorNameLength {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeVendorNameTooLong,
			fmt.Sprintf("vendor name must not exceed %d characters", MaxVendorNameLength),
			domainerror.ErrVendorNameTooLong,
		)
	}
	if len(c.Notes) > MaxNotesLength {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			domainerror.ErrNotesTooLong,
		)
	}

	// 2. Temporal bound: the reporting period must not lie in the future.
	if c.Year > now.Year() || (c.Year == now.Year() && *c.Month > int(now.Month())) {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeFuturePeriod,
			"reporting period must not be in the future",
			domainerror.ErrFuturePeriod,
		)
	}

	// 3. Category resolution within the spend country's factor set. A country
	// without a factor set disables spend-based entry but still allows
	// vendor-reported actuals; the category label then passes through as-is.
	var category *catalog.Category
	factorSet, hasFactorSet := catalog.FactorSetFor(c.SpendCountry)
	if hasFactorSet {
		var ok bool
		category, ok = factorSet.CategoryFor(c.CategoryID)
		if !ok {
			return nil, domainerror.NewEntryError(
				domainerror.ErrCodeUnknownCategory,
				fmt.Sprintf("category %q not found in factor set for %s", c.CategoryID, c.SpendCountry),
				domainerror.ErrUnknownCategory,
			)
		}
	} else if c.Method == entity.MethodSpendBased {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeCountryNotSupported,
			fmt.Sprintf("spend-based entry is unavailable for %s: no emission factor set", c.SpendCountry),
			domainerror.ErrCountryNotSupported,
		)
	}

	// 4. Method-specific checks and 5. computation
	switch c.Method {
	case entity.MethodSpendBased:
		if c.SpendAmount == nil || c.SpendAmount.IsNegative() {
			return nil, domainerror.NewEntryError(
				domainerror.ErrCodeInvalidSpendAmount,
				"spend amount must be a non-negative number",
				domainerror.ErrInvalidSpendAmount,
			)
		}
		if c.Currency != factorSet.Currency {
			return nil, domainerror.NewEntryError(
				domainerror.ErrCodeCurrencyMismatch,
				fmt.Sprintf("currency must be %s for %s entries; amounts are not converted", factorSet.Currency, c.SpendCountry),
				domainerror.ErrCurrencyMismatch,
			)
		}

		return &Computed{
			CategoryLabel: category.Label,
			Emissions:     c.SpendAmount.Mul(category.Factor),
			Factor: &entity.FactorSnapshot{
				Value:     category.Factor,
				Year:      factorSet.Year,
				Source:    factorSet.Source,
				Model:     factorSet.Model,
				Geography: factorSet.Geography,
				Currency:  factorSet.Currency,
			},
		}, nil

	case entity.MethodActual:
		if c.Emissions == nil || c.Emissions.IsNegative() {
			return nil, domainerror.NewEntryError(
				domainerror.ErrCodeInvalidEmissions,
				"emissions must be a non-negative number",
				domainerror.ErrInvalidEmissions,
			)
		}

		label := c.CategoryID
		if category != nil {
			label = category.Label
		}

		return &Computed{
			CategoryLabel: label,
			Emissions:     *c.Emissions,
		}, nil
	}

	// Unreachable: method validated above.
	return nil, domainerror.NewEntryError(
		domainerror.ErrCodeInvalidMethod,
		"calculation method must be 'spend_based' or 'actual'",
		domainerror.ErrInvalidCalculationMethod,
	)
}

// isValidMethod validates the calculation method.
func isValidMethod(method entity.CalculationMethod) bool {
	return method == entity.MethodSpendBased || method == entity.MethodActual
}

// apply copies a validated candidate and its computed fields onto an entry.
// The factor snapshot written here is a historical statement: later catalog
// updates never alter it.
func apply(e *entity.Entry, c Candidate, computed *Computed) {
	e.Year = c.Year
	e.Month = c.Month
	e.SpendCountry = c.SpendCountry
	e.SpendRegion = c.SpendRegion
	e.Method = c.Method
	e.CategoryID = c.CategoryID
	e.CategoryLabel = computed.CategoryLabel
	e.VendorName = c.VendorName
	e.Notes = c.Notes
	e.Emissions = computed.Emissions

	if c.Method == entity.MethodSpendBased {
		e.SpendAmount = c.SpendAmount
		e.Currency = c.Currency
		e.Factor = computed.Factor
		e.EmissionsSource = ""
	} else {
		e.SpendAmount = nil
		e.Currency = ""
		e.Factor = nil
		e.EmissionsSource = c.EmissionsSource
	}
}
