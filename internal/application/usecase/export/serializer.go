// Package export contains report export use cases.
package export

import (
	"fmt"
	"strings"

	"github.com/scope3-tracker/backend/internal/domain/catalog"
	"github.com/scope3-tracker/backend/internal/domain/entity"
)

// ScopeLabel is the ledger's scope literal, emitted on every row.
const ScopeLabel = "Scope 3: Purchased goods & services"

// DisclosureText is the methodology caveat attached to every exported row.
// It is a compliance requirement of the surrounding product and must never
// be paraphrased or omitted. It is repeated on each row rather than
// appended once so every extracted line stays self-describing.
const DisclosureText = "Spend-based figures are screening estimates derived from " +
	"environmentally-extended input-output (EEIO) emission factors applied to " +
	"purchase amounts; they are not supplier-specific measurements. Rows marked " +
	"\"Actuals\" carry vendor-reported values and are not independently verified."

// columns is the fixed export column order. External consumers parse by
// position; do not reorder.
var columns = []string{
	"Scope",
	"Method",
	"Period",
	"Category",
	"Spend amount",
	"Currency",
	"EIO sector reference",
	"Emission factor value",
	"Factor year",
	"Factor source",
	"Emissions source",
	"Emissions (tCO2e)",
	"Disclosure text",
}

// ToDelimitedText renders an entry collection into the delimited export
// format: every field quote-wrapped with internal quotes doubled, rows
// joined with CRLF line endings (an external-compatibility requirement),
// and the disclosure text repeated verbatim on every row.
func ToDelimitedText(entries []*entity.Entry, disclosure string) string {
	rows := make([]string, 0, len(entries)+1)
	rows = append(rows, formatRow(columns))

	for _, e := range entries {
		rows = append(rows, formatRow(fieldsFor(e, disclosure)))
	}

	return strings.Join(rows, "\r\n")
}

// fieldsFor renders one entry into column order. Absent values render as
// empty fields, never as a placeholder word.
func fieldsFor(e *entity.Entry, disclosure string) []string {
	method := "Spend-based"
	if e.Method == entity.MethodActual {
		method = "Actuals"
	}

	period := fmt.Sprintf("%d", e.Year)
	if e.Month != nil {
		period = fmt.Sprintf("%d-%02d", e.Year, *e.Month)
	}

	spendAmount := ""
	if e.SpendAmount != nil {
		spendAmount = e.SpendAmount.String()
	}

	factorValue := ""
	factorYear := ""
	factorSource := ""
	if e.Factor != nil {
		factorValue = e.Factor.Value.String()
		factorYear = fmt.Sprintf("%d", e.Factor.Year)
		factorSource = e.Factor.Source
	}

	return []string{
		ScopeLabel,
		method,
		period,
		e.CategoryLabel,
		spendAmount,
		e.Currency,
		sectorRefFor(e),
		factorValue,
		factorYear,
		factorSource,
		e.EmissionsSource,
		e.Emissions.String(),
		disclosure,
	}
}

// sectorRefFor looks up the entry's EIO sector reference in the catalog.
// The sector reference is presentation metadata, not part of the factor
// snapshot, so a live lookup is correct here.
func sectorRefFor(e *entity.Entry) string {
	fs, ok := catalog.FactorSetFor(e.SpendCountry)
	if !ok {
		return ""
	}
	category, ok := fs.CategoryFor(e.CategoryID)
	if !ok {
		return ""
	}
	return category.SectorRef
}

// formatRow quote-wraps every field, doubling embedded quotes.
func formatRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, field := range fields {
		quoted[i] = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
