package dashboard

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/scope3-tracker/backend/internal/domain/entity"
)

func monthPtr(m int) *int {
	return &m
}

func emissionsEntry(year int, month *int, method entity.CalculationMethod, category, emissions string) *entity.Entry {
	return &entity.Entry{
		Year:          year,
		Month:         month,
		Method:        method,
		CategoryLabel: category,
		Emissions:     decimal.RequireFromString(emissions),
	}
}

func TestSummarize(t *testing.T) {
	t.Run("empty collection yields a zero summary", func(t *testing.T) {
		s := Summarize(nil)
		if !s.Total.IsZero() {
			t.Errorf("expected zero total, got %s", s.Total)
		}
		if s.CoveredPeriods != 0 {
			t.Errorf("expected 0 covered periods, got %d", s.CoveredPeriods)
		}
		if s.TopCategory != "" {
			t.Errorf("expected no top category, got %s", s.TopCategory)
		}
		if s.Alerts != nil {
			t.Errorf("expected no alerts, got %+v", s.Alerts)
		}
	})

	t.Run("splits totals by method", func(t *testing.T) {
		entries := []*entity.Entry{
			emissionsEntry(2025, monthPtr(1), entity.MethodSpendBased, "Professional services", "10"),
			emissionsEntry(2025, monthPtr(2), entity.MethodActual, "Freight & logistics", "4"),
			emissionsEntry(2025, monthPtr(3), entity.MethodSpendBased, "Professional services", "6"),
		}

		s := Summarize(entries)
		if !s.Total.Equal(decimal.RequireFromString("20")) {
			t.Errorf("expected total 20, got %s", s.Total)
		}
		if !s.SpendSubtotal.Equal(decimal.RequireFromString("16")) {
			t.Errorf("expected spend subtotal 16, got %s", s.SpendSubtotal)
		}
		if !s.ActualSubtotal.Equal(decimal.RequireFromString("4")) {
			t.Errorf("expected actual subtotal 4, got %s", s.ActualSubtotal)
		}
	})

	t.Run("averages over distinct dated periods", func(t *testing.T) {
		entries := []*entity.Entry{
			emissionsEntry(2025, monthPtr(1), entity.MethodSpendBased, "A", "10"),
			emissionsEntry(2025, monthPtr(1), entity.MethodSpendBased, "B", "10"),
			emissionsEntry(2025, monthPtr(2), entity.MethodSpendBased, "A", "10"),
		}

		s := Summarize(entries)
		// Two distinct periods (2025-01, 2025-02) over a total of 30.
		if !s.AveragePerMonth.Equal(decimal.RequireFromString("15")) {
			t.Errorf("expected average 15, got %s", s.AveragePerMonth)
		}
		if s.CoveredPeriods != 2 {
			t.Errorf("expected 2 covered periods, got %d", s.CoveredPeriods)
		}
	})

	t.Run("undated entries count individually toward coverage", func(t *testing.T) {
		entries := []*entity.Entry{
			emissionsEntry(2025, monthPtr(1), entity.MethodSpendBased, "A", "10"),
			emissionsEntry(2025, nil, entity.MethodActual, "B", "5"),
			emissionsEntry(2024, nil, entity.MethodActual, "B", "5"),
		}

		s := Summarize(entries)
		if s.CoveredPeriods != 3 {
			t.Errorf("expected 3 covered periods, got %d", s.CoveredPeriods)
		}
		// The average divides by dated periods only.
		if !s.AveragePerMonth.Equal(decimal.RequireFromString("20")) {
			t.Errorf("expected average 20, got %s", s.AveragePerMonth)
		}
	})

	t.Run("all-undated collection keeps the raw total as average", func(t *testing.T) {
		entries := []*entity.Entry{
			emissionsEntry(2025, nil, entity.MethodActual, "A", "8"),
		}

		s := Summarize(entries)
		if !s.AveragePerMonth.Equal(decimal.RequireFromString("8")) {
			t.Errorf("expected average 8, got %s", s.AveragePerMonth)
		}
	})

	t.Run("identifies the top category", func(t *testing.T) {
		entries := []*entity.Entry{
			emissionsEntry(2025, monthPtr(1), entity.MethodSpendBased, "Professional services", "12"),
			emissionsEntry(2025, monthPtr(1), entity.MethodSpendBased, "Freight & logistics", "7"),
		}

		s := Summarize(entries)
		if s.TopCategory != "Professional services" {
			t.Errorf("expected Professional services, got %s", s.TopCategory)
		}
		if !s.TopCategoryValue.Equal(decimal.RequireFromString("12")) {
			t.Errorf("expected value 12, got %s", s.TopCategoryValue)
		}
	})

	t.Run("ties resolve alphabetically", func(t *testing.T) {
		entries := []*entity.Entry{
			emissionsEntry(2025, monthPtr(1), entity.MethodSpendBased, "Zebra goods", "5"),
			emissionsEntry(2025, monthPtr(1), entity.MethodSpendBased, "Apple goods", "5"),
		}

		s := Summarize(entries)
		if s.TopCategory != "Apple goods" {
			t.Errorf("expected alphabetical winner, got %s", s.TopCategory)
		}
	})
}

func TestConcentrationAlerts(t *testing.T) {
	t.Run("fires for a category above the threshold", func(t *testing.T) {
		entries := []*entity.Entry{
			emissionsEntry(2025, monthPtr(1), entity.MethodSpendBased, "Professional services", "80"),
			emissionsEntry(2025, monthPtr(1), entity.MethodSpendBased, "Freight & logistics", "20"),
		}

		s := Summarize(entries)
		if len(s.Alerts) != 1 {
			t.Fatalf("expected 1 alert, got %d: %+v", len(s.Alerts), s.Alerts)
		}
		alert := s.Alerts[0]
		if alert.Category != "Professional services" {
			t.Errorf("unexpected alert category %s", alert.Category)
		}
		if alert.SharePercent != 80 {
			t.Errorf("expected share 80, got %d", alert.SharePercent)
		}
		if alert.Message != "Professional services accounts for 80% of total emissions" {
			t.Errorf("unexpected message %q", alert.Message)
		}
	})

	t.Run("exactly the threshold does not fire", func(t *testing.T) {
		entries := []*entity.Entry{
			emissionsEntry(2025, monthPtr(1), entity.MethodSpendBased, "A", "30"),
			emissionsEntry(2025, monthPtr(1), entity.MethodSpendBased, "B", "35"),
			emissionsEntry(2025, monthPtr(1), entity.MethodSpendBased, "C", "35"),
		}

		s := Summarize(entries)
		for _, alert := range s.Alerts {
			if alert.Category == "A" {
				t.Errorf("alert fired at exactly the threshold: %+v", alert)
			}
		}
	})

	t.Run("a single category never alerts", func(t *testing.T) {
		entries := []*entity.Entry{
			emissionsEntry(2025, monthPtr(1), entity.MethodSpendBased, "Professional services", "100"),
		}

		if s := Summarize(entries); len(s.Alerts) != 0 {
			t.Fatalf("expected no alerts, got %+v", s.Alerts)
		}
	})

	t.Run("zero-emission collection never alerts", func(t *testing.T) {
		entries := []*entity.Entry{
			emissionsEntry(2025, monthPtr(1), entity.MethodSpendBased, "A", "0"),
			emissionsEntry(2025, monthPtr(1), entity.MethodSpendBased, "B", "0"),
		}

		if s := Summarize(entries); len(s.Alerts) != 0 {
			t.Fatalf("expected no alerts, got %+v", s.Alerts)
		}
	})

	t.Run("multiple categories can alert at once", func(t *testing.T) {
		entries := []*entity.Entry{
			emissionsEntry(2025, monthPtr(1), entity.MethodSpendBased, "A", "40"),
			emissionsEntry(2025, monthPtr(1), entity.MethodSpendBased, "B", "40"),
			emissionsEntry(2025, monthPtr(1), entity.MethodSpendBased, "C", "20"),
		}

		s := Summarize(entries)
		if len(s.Alerts) != 2 {
			t.Fatalf("expected 2 alerts, got %d: %+v", len(s.Alerts), s.Alerts)
		}
	})
}
