package entry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scope3-tracker/backend/internal/domain/entity"
)

// FactorSnapshotOutput represents the captured factor metadata of an entry.
type FactorSnapshotOutput struct {
	Value     decimal.Decimal
	Year      int
	Source    string
	Model     string
	Geography string
	Currency  string
}

// EntryOutput represents an entry in use case outputs.
type EntryOutput struct {
	ID              uuid.UUID
	CompanyID       uuid.UUID
	UserID          uuid.UUID
	Year            int
	Month           *int
	SpendCountry    string
	SpendRegion     string
	Method          entity.CalculationMethod
	CategoryID      string
	CategoryLabel   string
	SpendAmount     *decimal.Decimal
	Currency        string
	Factor          *FactorSnapshotOutput
	Emissions       decimal.Decimal
	EmissionsSource string
	VendorName      string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ToEntryOutput converts an entry entity to an EntryOutput.
func ToEntryOutput(e *entity.Entry) *EntryOutput {
	out := &EntryOutput{
		ID:              e.ID,
		CompanyID:       e.CompanyID,
		UserID:          e.UserID,
		Year:            e.Year,
		Month:           e.Month,
		SpendCountry:    e.SpendCountry,
		SpendRegion:     e.SpendRegion,
		Method:          e.Method,
		CategoryID:      e.CategoryID,
		CategoryLabel:   e.CategoryLabel,
		SpendAmount:     e.SpendAmount,
		Currency:        e.Currency,
		Emissions:       e.Emissions,
		EmissionsSource: e.EmissionsSource,
		VendorName:      e.VendorName,
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}

	if e.Factor != nil {
		out.Factor = &FactorSnapshotOutput{
			Value:     e.Factor.Value,
			Year:      e.Factor.Year,
			Source:    e.Factor.Source,
			Model:     e.Factor.Model,
			Geography: e.Factor.Geography,
			Currency:  e.Factor.Currency,
		}
	}

	return out
}
