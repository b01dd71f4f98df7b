package catalog

import (
	"testing"
)

func TestFactorSetFor(t *testing.T) {
	t.Run("returns the factor set for a covered country", func(t *testing.T) {
		fs, ok := FactorSetFor("US")
		if !ok {
			t.Fatal("expected factor set for US")
		}
		if fs.Currency != "USD" {
			t.Errorf("expected currency USD, got %s", fs.Currency)
		}
		if fs.Model != "USEEIO v2.0" {
			t.Errorf("expected model USEEIO v2.0, got %s", fs.Model)
		}
	})

	t.Run("reports false for an uncovered country", func(t *testing.T) {
		if _, ok := FactorSetFor("FR"); ok {
			t.Error("expected no factor set for FR")
		}
	})

	t.Run("lookup is case sensitive", func(t *testing.T) {
		if _, ok := FactorSetFor("us"); ok {
			t.Error("expected lookup to be case sensitive")
		}
	})
}

func TestCategoryFor(t *testing.T) {
	fs, ok := FactorSetFor("GB")
	if !ok {
		t.Fatal("expected factor set for GB")
	}

	t.Run("resolves a known category", func(t *testing.T) {
		category, ok := fs.CategoryFor("logistics")
		if !ok {
			t.Fatal("expected logistics category in GB factor set")
		}
		if category.Label != "Freight & logistics" {
			t.Errorf("expected label 'Freight & logistics', got %s", category.Label)
		}
		if category.Factor.IsZero() {
			t.Error("expected non-zero factor")
		}
	})

	t.Run("reports false for an unknown category", func(t *testing.T) {
		if _, ok := fs.CategoryFor("travel"); ok {
			t.Error("expected no travel category")
		}
	})
}

func TestCountries(t *testing.T) {
	countries := Countries()
	if len(countries) != 3 {
		t.Fatalf("expected 3 covered countries, got %d", len(countries))
	}

	for _, code := range countries {
		fs, ok := FactorSetFor(code)
		if !ok {
			t.Fatalf("Countries listed %s but FactorSetFor rejects it", code)
		}
		if len(fs.Categories) == 0 {
			t.Errorf("factor set for %s has no categories", code)
		}
		for _, category := range fs.Categories {
			if category.Factor.IsNegative() || category.Factor.IsZero() {
				t.Errorf("category %s in %s has non-positive factor", category.ID, code)
			}
		}
	}
}
