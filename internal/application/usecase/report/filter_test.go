package report

import (
	"testing"

	"github.com/scope3-tracker/backend/internal/domain/entity"
)

func yearPtr(y int) *int {
	return &y
}

func strPtr(s string) *string {
	return &s
}

func methodPtr(m entity.CalculationMethod) *entity.CalculationMethod {
	return &m
}

func testEntries() []*entity.Entry {
	return []*entity.Entry{
		{Year: 2024, SpendCountry: "US", SpendRegion: "CA", Method: entity.MethodSpendBased, CategoryLabel: "Professional services"},
		{Year: 2024, SpendCountry: "US", SpendRegion: "NY", Method: entity.MethodActual, CategoryLabel: "Freight & logistics"},
		{Year: 2025, SpendCountry: "GB", SpendRegion: "London", Method: entity.MethodSpendBased, CategoryLabel: "Professional services"},
		{Year: 2025, SpendCountry: "DE", SpendRegion: "Bavaria", Method: entity.MethodActual, CategoryLabel: "IT & software services"},
	}
}

func TestFilter(t *testing.T) {
	t.Run("empty criteria returns all entries", func(t *testing.T) {
		entries := testEntries()
		got := Filter(entries, Criteria{})
		if len(got) != len(entries) {
			t.Fatalf("expected %d entries, got %d", len(entries), len(got))
		}
	})

	t.Run("returns a fresh slice, not the input", func(t *testing.T) {
		entries := testEntries()
		got := Filter(entries, Criteria{})
		got[0] = nil
		if entries[0] == nil {
			t.Error("filter result aliases the input slice")
		}
	})

	t.Run("filters by year", func(t *testing.T) {
		got := Filter(testEntries(), Criteria{Year: yearPtr(2024)})
		if len(got) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(got))
		}
		for _, e := range got {
			if e.Year != 2024 {
				t.Errorf("unexpected year %d", e.Year)
			}
		}
	})

	t.Run("filters by category label", func(t *testing.T) {
		got := Filter(testEntries(), Criteria{CategoryLabel: strPtr("Professional services")})
		if len(got) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(got))
		}
	})

	t.Run("filters by method", func(t *testing.T) {
		got := Filter(testEntries(), Criteria{Method: methodPtr(entity.MethodActual)})
		if len(got) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(got))
		}
	})

	t.Run("combines criteria conjunctively", func(t *testing.T) {
		got := Filter(testEntries(), Criteria{
			Year:    yearPtr(2025),
			Country: strPtr("GB"),
		})
		if len(got) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(got))
		}
		if got[0].SpendRegion != "London" {
			t.Errorf("unexpected entry region %s", got[0].SpendRegion)
		}
	})

	t.Run("no match yields an empty slice", func(t *testing.T) {
		got := Filter(testEntries(), Criteria{Country: strPtr("JP")})
		if len(got) != 0 {
			t.Fatalf("expected no entries, got %d", len(got))
		}
	})

	t.Run("preserves input order", func(t *testing.T) {
		got := Filter(testEntries(), Criteria{Method: methodPtr(entity.MethodSpendBased)})
		if len(got) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(got))
		}
		if got[0].SpendCountry != "US" || got[1].SpendCountry != "GB" {
			t.Error("expected input order to be preserved")
		}
	})
}

func TestCriteriaIsZero(t *testing.T) {
	if !(Criteria{}).IsZero() {
		t.Error("expected empty criteria to be zero")
	}
	if (Criteria{Year: yearPtr(2024)}).IsZero() {
		t.Error("expected criteria with a year to be non-zero")
	}
}
