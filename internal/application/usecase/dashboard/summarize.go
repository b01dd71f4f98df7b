// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/scope3-tracker/backend/internal/domain/entity"
)

// ConcentrationThresholdPercent is the category share above which a
// concentration alert fires. The comparison is strict.
const ConcentrationThresholdPercent = 30

// ConcentrationAlert warns that a single category accounts for a
// disproportionate share of total emissions.
type ConcentrationAlert struct {
	Category     string
	SharePercent int64
	Message      string
}

// Summary aggregates a filtered entry collection.
type Summary struct {
	Total          decimal.Decimal
	ActualSubtotal decimal.Decimal
	SpendSubtotal  decimal.Decimal
	// AveragePerMonth is the total divided by the count of distinct
	// year-month pairs carrying at least one dated entry. When no entry is
	// dated it equals the raw total.
	AveragePerMonth decimal.Decimal
	// CoveredPeriods counts distinct dated year-month pairs plus one unit
	// per entry missing a month, counted individually.
	CoveredPeriods   int
	TopCategory      string
	TopCategoryValue decimal.Decimal
	Alerts           []ConcentrationAlert
}

// Summarize computes totals, per-month averages and concentration alerts
// over an in-memory entry collection. Pure; the input is never mutated.
func Summarize(entries []*entity.Entry) Summary {
	s := Summary{
		Total:          decimal.Zero,
		ActualSubtotal: decimal.Zero,
		SpendSubtotal:  decimal.Zero,
	}

	datedPeriods := make(map[[2]int]bool)
	undated := 0
	byCategory := make(map[string]decimal.Decimal)

	for _, e := range entries {
		s.Total = s.Total.Add(e.Emissions)
		if e.Method == entity.MethodActual {
			s.ActualSubtotal = s.ActualSubtotal.Add(e.Emissions)
		} else {
			s.SpendSubtotal = s.SpendSubtotal.Add(e.Emissions)
		}

		if e.Month != nil {
			datedPeriods[[2]int{e.Year, *e.Month}] = true
		} else {
			undated++
		}

		byCategory[e.CategoryLabel] = byCategory[e.CategoryLabel].Add(e.Emissions)
	}

	s.CoveredPeriods = len(datedPeriods) + undated

	if len(datedPeriods) > 0 {
		s.AveragePerMonth = s.Total.Div(decimal.NewFromInt(int64(len(datedPeriods))))
	} else {
		s.AveragePerMonth = s.Total
	}

	s.TopCategory, s.TopCategoryValue = topCategory(byCategory)
	s.Alerts = concentrationAlerts(byCategory, s.Total)

	return s
}

// topCategory picks the category with the largest emissions total. Ties
// resolve alphabetically for deterministic output.
func topCategory(byCategory map[string]decimal.Decimal) (string, decimal.Decimal) {
	var name string
	value := decimal.Zero
	for _, label := range sortedCategories(byCategory) {
		total := byCategory[label]
		if name == "" || total.GreaterThan(value) {
			name = label
			value = total
		}
	}
	return name, value
}

// concentrationAlerts flags categories whose share of the total strictly
// exceeds the threshold. With a single category the share is necessarily
// 100% and not informative, so no alert fires; likewise for a zero total.
func concentrationAlerts(byCategory map[string]decimal.Decimal, total decimal.Decimal) []ConcentrationAlert {
	if len(byCategory) <= 1 || total.IsZero() {
		return nil
	}

	threshold := decimal.NewFromInt(ConcentrationThresholdPercent)

	var alerts []ConcentrationAlert
	for _, label := range sortedCategories(byCategory) {
		share := byCategory[label].Div(total).Mul(decimal.NewFromInt(100))
		if !share.GreaterThan(threshold) {
			continue
		}
		rounded := share.Round(0).IntPart()
		alerts = append(alerts, ConcentrationAlert{
			Category:     label,
			SharePercent: rounded,
			Message:      fmt.Sprintf("%s accounts for %d%% of total emissions", label, rounded),
		})
	}
	return alerts
}

func sortedCategories(byCategory map[string]decimal.Decimal) []string {
	labels := make([]string, 0, len(byCategory))
	for label := range byCategory {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
