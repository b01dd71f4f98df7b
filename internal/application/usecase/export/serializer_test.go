package export

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/scope3-tracker/backend/internal/application/usecase/report"
	"github.com/scope3-tracker/backend/internal/domain/entity"
)

func monthPtr(m int) *int {
	return &m
}

func decimalPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func spendEntry() *entity.Entry {
	return &entity.Entry{
		Year:          2025,
		Month:         monthPtr(3),
		SpendCountry:  "US",
		SpendRegion:   "CA",
		Method:        entity.MethodSpendBased,
		CategoryID:    "professional_services",
		CategoryLabel: "Professional services",
		SpendAmount:   decimalPtr("120000"),
		Currency:      "USD",
		Factor: &entity.FactorSnapshot{
			Value:     decimal.RequireFromString("0.000092"),
			Year:      2022,
			Source:    "US EPA, Supply Chain Greenhouse Gas Emission Factors v1.2 (USEEIO)",
			Model:     "USEEIO v2.0",
			Geography: "United States",
			Currency:  "USD",
		},
		Emissions: decimal.RequireFromString("11.04"),
	}
}

func actualEntry() *entity.Entry {
	return &entity.Entry{
		Year:            2024,
		SpendCountry:    "FR",
		SpendRegion:     "Ile-de-France",
		Method:          entity.MethodActual,
		CategoryID:      "specialist_chemicals",
		CategoryLabel:   "specialist_chemicals",
		EmissionsSource: "Supplier PCF statement",
		Emissions:       decimal.RequireFromString("7.5"),
	}
}

func TestToDelimitedText(t *testing.T) {
	t.Run("joins rows with CRLF", func(t *testing.T) {
		out := ToDelimitedText([]*entity.Entry{spendEntry()}, DisclosureText)

		if strings.Contains(strings.ReplaceAll(out, "\r\n", ""), "\n") {
			t.Error("found a bare LF line ending")
		}
		lines := strings.Split(out, "\r\n")
		if len(lines) != 2 {
			t.Fatalf("expected header plus 1 row, got %d lines", len(lines))
		}
	})

	t.Run("header carries the fixed column order", func(t *testing.T) {
		out := ToDelimitedText(nil, DisclosureText)

		if !strings.HasPrefix(out, `"Scope","Method","Period",`) {
			t.Errorf("unexpected header start: %s", out[:60])
		}
		if !strings.HasSuffix(out, `"Emissions (tCO2e)","Disclosure text"`) {
			t.Errorf("unexpected header end: %s", out)
		}
	})

	t.Run("every field is quote-wrapped", func(t *testing.T) {
		out := ToDelimitedText([]*entity.Entry{spendEntry()}, DisclosureText)

		for _, line := range strings.Split(out, "\r\n") {
			if !strings.HasPrefix(line, `"`) || !strings.HasSuffix(line, `"`) {
				t.Errorf("line not quote-wrapped: %s", line)
			}
		}
	})

	t.Run("doubles embedded quotes", func(t *testing.T) {
		e := spendEntry()
		e.CategoryLabel = `Consulting "special" projects`

		out := ToDelimitedText([]*entity.Entry{e}, DisclosureText)
		if !strings.Contains(out, `"Consulting ""special"" projects"`) {
			t.Error("embedded quotes were not doubled")
		}
	})

	t.Run("repeats the disclosure text on every row", func(t *testing.T) {
		out := ToDelimitedText([]*entity.Entry{spendEntry(), actualEntry()}, DisclosureText)

		escaped := strings.ReplaceAll(DisclosureText, `"`, `""`)
		if got := strings.Count(out, escaped); got != 2 {
			t.Errorf("expected disclosure on 2 rows, found %d occurrences", got)
		}
	})

	t.Run("renders a spend-based row", func(t *testing.T) {
		out := ToDelimitedText([]*entity.Entry{spendEntry()}, DisclosureText)
		row := strings.Split(out, "\r\n")[1]

		for _, want := range []string{
			`"Scope 3: Purchased goods & services"`,
			`"Spend-based"`,
			`"2025-03"`,
			`"120000"`,
			`"USD"`,
			`"BEA 5412OO"`,
			`"0.000092"`,
			`"2022"`,
			`"11.04"`,
		} {
			if !strings.Contains(row, want) {
				t.Errorf("row missing %s: %s", want, row)
			}
		}
	})

	t.Run("renders an actual row with empty spend fields", func(t *testing.T) {
		out := ToDelimitedText([]*entity.Entry{actualEntry()}, DisclosureText)
		row := strings.Split(out, "\r\n")[1]

		if !strings.Contains(row, `"Actuals"`) {
			t.Errorf("expected Actuals method: %s", row)
		}
		// Year-only period: no month metadata on this entry.
		if !strings.Contains(row, `"2024"`) {
			t.Errorf("expected year-only period: %s", row)
		}
		if !strings.Contains(row, `"Supplier PCF statement"`) {
			t.Errorf("expected emissions source: %s", row)
		}

		// Spend amount, currency, sector ref and factor columns are empty.
		fields := strings.Split(strings.Trim(row, `"`), `","`)
		if len(fields) != 13 {
			t.Fatalf("expected 13 fields, got %d", len(fields))
		}
		for _, idx := range []int{4, 5, 6, 7, 8, 9} {
			if fields[idx] != "" {
				t.Errorf("expected field %d to be empty, got %q", idx, fields[idx])
			}
		}
	})

	t.Run("column count is stable across methods", func(t *testing.T) {
		out := ToDelimitedText([]*entity.Entry{spendEntry(), actualEntry()}, DisclosureText)

		var counts []int
		for _, line := range strings.Split(out, "\r\n") {
			counts = append(counts, strings.Count(line, `","`)+1)
		}
		for i := 1; i < len(counts); i++ {
			if counts[i] != counts[0] {
				t.Fatalf("row %d has %d columns, header has %d", i, counts[i], counts[0])
			}
		}
	})
}

func criteriaWithYear(year int) report.Criteria {
	if year == 0 {
		return report.Criteria{}
	}
	return report.Criteria{Year: &year}
}

func TestFilename(t *testing.T) {
	year := 2025
	category := "Professional services"

	t.Run("year-only filter names the year", func(t *testing.T) {
		got := filename(criteriaWithYear(year))
		if got != "scope3-purchased-goods-2025.csv" {
			t.Errorf("unexpected filename %s", got)
		}
	})

	t.Run("no filter names all years", func(t *testing.T) {
		got := filename(criteriaWithYear(0))
		if got != "scope3-purchased-goods-all-years.csv" {
			t.Errorf("unexpected filename %s", got)
		}
	})

	t.Run("narrowing filters name a generic filtered export", func(t *testing.T) {
		criteria := criteriaWithYear(year)
		criteria.CategoryLabel = &category
		got := filename(criteria)
		if got != "scope3-purchased-goods-filtered.csv" {
			t.Errorf("unexpected filename %s", got)
		}
	})
}
