// Package report contains the in-memory filter engine shared by the
// read-side pipeline: listing, coverage analysis, summary and export all
// operate on the same filtered view of a company's entries.
package report

import (
	"github.com/scope3-tracker/backend/internal/domain/entity"
)

// Criteria narrows an entry collection. Every field is independently
// optional; an absent field matches everything. Matching is exact and
// conjunctive across all supplied fields.
type Criteria struct {
	Year          *int
	CategoryLabel *string
	Method        *entity.CalculationMethod
	Country       *string
	Region        *string
}

// IsZero reports whether no criteria fields are set.
func (c Criteria) IsZero() bool {
	return c.Year == nil && c.CategoryLabel == nil && c.Method == nil && c.Country == nil && c.Region == nil
}

// Filter returns the entries matching the criteria, preserving input
// order. The input slice is never mutated; the result is always a fresh
// slice.
func Filter(entries []*entity.Entry, criteria Criteria) []*entity.Entry {
	matched := make([]*entity.Entry, 0, len(entries))
	for _, e := range entries {
		if matches(e, criteria) {
			matched = append(matched, e)
		}
	}
	return matched
}

func matches(e *entity.Entry, c Criteria) bool {
	if c.Year != nil && e.Year != *c.Year {
		return false
	}
	if c.CategoryLabel != nil && e.CategoryLabel != *c.CategoryLabel {
		return false
	}
	if c.Method != nil && e.Method != *c.Method {
		return false
	}
	if c.Country != nil && e.SpendCountry != *c.Country {
		return false
	}
	if c.Region != nil && e.SpendRegion != *c.Region {
		return false
	}
	return true
}
