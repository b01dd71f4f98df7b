package entry

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scope3-tracker/backend/internal/domain/entity"
	domainerror "github.com/scope3-tracker/backend/internal/domain/error"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func monthPtr(m int) *int {
	return &m
}

func decimalPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func validSpendCandidate() Candidate {
	return Candidate{
		Year:         2025,
		Month:        monthPtr(3),
		SpendCountry: "US",
		SpendRegion:  "CA",
		Method:       entity.MethodSpendBased,
		CategoryID:   "professional_services",
		SpendAmount:  decimalPtr("120000"),
		Currency:     "USD",
	}
}

func validActualCandidate() Candidate {
	return Candidate{
		Year:            2025,
		Month:           monthPtr(3),
		SpendCountry:    "US",
		SpendRegion:     "CA",
		Method:          entity.MethodActual,
		CategoryID:      "logistics",
		Emissions:       decimalPtr("14.2"),
		EmissionsSource: "Carrier sustainability report",
	}
}

func assertEntryErrorCode(t *testing.T, err error, want domainerror.EntryErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var entryErr *domainerror.EntryError
	if !errors.As(err, &entryErr) {
		t.Fatalf("expected EntryError, got %T: %v", err, err)
	}
	if entryErr.Code != want {
		t.Fatalf("expected code %s, got %s", want, entryErr.Code)
	}
}

func TestValidateAndCompute_SpendBased(t *testing.T) {
	t.Run("computes emissions as amount times factor", func(t *testing.T) {
		computed, err := ValidateAndCompute(validSpendCandidate(), testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// 120000 * 0.000092 tCO2e
		want := decimal.RequireFromString("11.04")
		if !computed.Emissions.Equal(want) {
			t.Errorf("expected emissions %s, got %s", want, computed.Emissions)
		}
		if computed.CategoryLabel != "Professional services" {
			t.Errorf("expected resolved label, got %s", computed.CategoryLabel)
		}
	})

	t.Run("captures the factor snapshot", func(t *testing.T) {
		computed, err := ValidateAndCompute(validSpendCandidate(), testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if computed.Factor == nil {
			t.Fatal("expected a factor snapshot")
		}
		if !computed.Factor.Value.Equal(decimal.RequireFromString("0.000092")) {
			t.Errorf("unexpected factor value %s", computed.Factor.Value)
		}
		if computed.Factor.Year != 2022 {
			t.Errorf("expected factor year 2022, got %d", computed.Factor.Year)
		}
		if computed.Factor.Model != "USEEIO v2.0" {
			t.Errorf("unexpected factor model %s", computed.Factor.Model)
		}
		if computed.Factor.Currency != "USD" {
			t.Errorf("unexpected factor currency %s", computed.Factor.Currency)
		}
	})

	t.Run("rejects a missing spend amount", func(t *testing.T) {
		candidate := validSpendCandidate()
		candidate.SpendAmount = nil

		_, err := ValidateAndCompute(candidate, testNow)
		assertEntryErrorCode(t, err, domainerror.ErrCodeInvalidSpendAmount)
	})

	t.Run("rejects a negative spend amount", func(t *testing.T) {
		candidate := validSpendCandidate()
		candidate.SpendAmount = decimalPtr("-50")

		_, err := ValidateAndCompute(candidate, testNow)
		assertEntryErrorCode(t, err, domainerror.ErrCodeInvalidSpendAmount)
	})

	t.Run("accepts a zero spend amount", func(t *testing.T) {
		candidate := validSpendCandidate()
		candidate.SpendAmount = decimalPtr("0")

		computed, err := ValidateAndCompute(candidate, testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !computed.Emissions.IsZero() {
			t.Errorf("expected zero emissions, got %s", computed.Emissions)
		}
	})

	t.Run("rejects a currency differing from the factor set", func(t *testing.T) {
		candidate := validSpendCandidate()
		candidate.Currency = "EUR"

		_, err := ValidateAndCompute(candidate, testNow)
		assertEntryErrorCode(t, err, domainerror.ErrCodeCurrencyMismatch)
	})

	t.Run("rejects a country without a factor set", func(t *testing.T) {
		candidate := validSpendCandidate()
		candidate.SpendCountry = "FR"

		_, err := ValidateAndCompute(candidate, testNow)
		assertEntryErrorCode(t, err, domainerror.ErrCodeCountryNotSupported)
	})

	t.Run("rejects a category absent from the factor set", func(t *testing.T) {
		candidate := validSpendCandidate()
		candidate.CategoryID = "travel"

		_, err := ValidateAndCompute(candidate, testNow)
		assertEntryErrorCode(t, err, domainerror.ErrCodeUnknownCategory)
	})
}

func TestValidateAndCompute_Actual(t *testing.T) {
	t.Run("passes vendor-reported emissions through unchanged", func(t *testing.T) {
		computed, err := ValidateAndCompute(validActualCandidate(), testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !computed.Emissions.Equal(decimal.RequireFromString("14.2")) {
			t.Errorf("expected emissions 14.2, got %s", computed.Emissions)
		}
		if computed.Factor != nil {
			t.Error("expected no factor snapshot for actual entries")
		}
	})

	t.Run("rejects missing emissions", func(t *testing.T) {
		candidate := validActualCandidate()
		candidate.Emissions = nil

		_, err := ValidateAndCompute(candidate, testNow)
		assertEntryErrorCode(t, err, domainerror.ErrCodeInvalidEmissions)
	})

	t.Run("rejects negative emissions", func(t *testing.T) {
		candidate := validActualCandidate()
		candidate.Emissions = decimalPtr("-1")

		_, err := ValidateAndCompute(candidate, testNow)
		assertEntryErrorCode(t, err, domainerror.ErrCodeInvalidEmissions)
	})

	t.Run("allows a country without a factor set", func(t *testing.T) {
		candidate := validActualCandidate()
		candidate.SpendCountry = "FR"
		candidate.CategoryID = "specialist_chemicals"

		computed, err := ValidateAndCompute(candidate, testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// No factor set to resolve against; the label passes through.
		if computed.CategoryLabel != "specialist_chemicals" {
			t.Errorf("expected passthrough label, got %s", computed.CategoryLabel)
		}
	})

	t.Run("still validates the category in covered countries", func(t *testing.T) {
		candidate := validActualCandidate()
		candidate.CategoryID = "travel"

		_, err := ValidateAndCompute(candidate, testNow)
		assertEntryErrorCode(t, err, domainerror.ErrCodeUnknownCategory)
	})
}

func TestValidateAndCompute_CommonChecks(t *testing.T) {
	t.Run("rejects missing required fields", func(t *testing.T) {
		cases := map[string]func(*Candidate){
			"year":          func(c *Candidate) { c.Year = 0 },
			"month":         func(c *Candidate) { c.Month = nil },
			"category":      func(c *Candidate) { c.CategoryID = "" },
			"spend country": func(c *Candidate) { c.SpendCountry = "" },
			"spend region":  func(c *Candidate) { c.SpendRegion = "" },
		}

		for name, mutate := range cases {
			candidate := validSpendCandidate()
			mutate(&candidate)
			_, err := ValidateAndCompute(candidate, testNow)
			if err == nil {
				t.Errorf("expected error when %s is missing", name)
				continue
			}
			assertEntryErrorCode(t, err, domainerror.ErrCodeMissingRequiredFields)
		}
	})

	t.Run("rejects a month outside 1..12", func(t *testing.T) {
		candidate := validSpendCandidate()
		candidate.Month = monthPtr(13)

		_, err := ValidateAndCompute(candidate, testNow)
		assertEntryErrorCode(t, err, domainerror.ErrCodeInvalidMonth)
	})

	t.Run("rejects an unknown calculation method", func(t *testing.T) {
		candidate := validSpendCandidate()
		candidate.Method = "estimated"

		_, err := ValidateAndCompute(candidate, testNow)
		assertEntryErrorCode(t, err, domainerror.ErrCodeInvalidMethod)
	})

	t.Run("rejects a future month of the current year", func(t *testing.T) {
		candidate := validSpendCandidate()
		candidate.Month = monthPtr(7) // testNow is June 2025

		_, err := ValidateAndCompute(candidate, testNow)
		assertEntryErrorCode(t, err, domainerror.ErrCodeFuturePeriod)
	})

	t.Run("rejects a future year", func(t *testing.T) {
		candidate := validSpendCandidate()
		candidate.Year = 2026
		candidate.Month = monthPtr(1)

		_, err := ValidateAndCompute(candidate, testNow)
		assertEntryErrorCode(t, err, domainerror.ErrCodeFuturePeriod)
	})

	t.Run("accepts the current month", func(t *testing.T) {
		candidate := validSpendCandidate()
		candidate.Month = monthPtr(6)

		if _, err := ValidateAndCompute(candidate, testNow); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects an overlong vendor name", func(t *testing.T) {
		candidate := validSpendCandidate()
		candidate.VendorName = string(make([]byte, MaxVendorNameLength+1))

		_, err := ValidateAndCompute(candidate, testNow)
		assertEntryErrorCode(t, err, domainerror.ErrCodeVendorNameTooLong)
	})

	t.Run("rejects overlong notes", func(t *testing.T) {
		candidate := validSpendCandidate()
		candidate.Notes = string(make([]byte, MaxNotesLength+1))

		_, err := ValidateAndCompute(candidate, testNow)
		assertEntryErrorCode(t, err, domainerror.ErrCodeNotesTooLong)
	})
}

func TestApply(t *testing.T) {
	t.Run("clears actual fields on a spend-based entry", func(t *testing.T) {
		e := entity.NewEntry(uuid.New(), uuid.New())
		e.EmissionsSource = "stale source"

		candidate := validSpendCandidate()
		computed, err := ValidateAndCompute(candidate, testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		apply(e, candidate, computed)

		if e.EmissionsSource != "" {
			t.Error("expected emissions source to be cleared")
		}
		if e.Factor == nil {
			t.Error("expected a factor snapshot")
		}
		if e.SpendAmount == nil {
			t.Error("expected spend amount to be set")
		}
	})

	t.Run("clears spend fields on an actual entry", func(t *testing.T) {
		e := entity.NewEntry(uuid.New(), uuid.New())

		spend := validSpendCandidate()
		spendComputed, err := ValidateAndCompute(spend, testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		apply(e, spend, spendComputed)

		actual := validActualCandidate()
		actualComputed, err := ValidateAndCompute(actual, testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		apply(e, actual, actualComputed)

		if e.SpendAmount != nil {
			t.Error("expected spend amount to be cleared")
		}
		if e.Currency != "" {
			t.Error("expected currency to be cleared")
		}
		if e.Factor != nil {
			t.Error("expected factor snapshot to be cleared")
		}
		if e.EmissionsSource != "Carrier sustainability report" {
			t.Errorf("unexpected emissions source %s", e.EmissionsSource)
		}
	})
}
