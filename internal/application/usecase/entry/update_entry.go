// Package entry contains entry-related use cases.
package entry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scope3-tracker/backend/internal/application/adapter"
	"github.com/scope3-tracker/backend/internal/domain/entity"
	domainerror "github.com/scope3-tracker/backend/internal/domain/error"
)

// UpdateEntryInput represents the input for entry update. Nil fields are
// left unchanged; the merged candidate is re-validated and its emissions
// recomputed as a whole.
type UpdateEntryInput struct {
	EntryID   uuid.UUID
	CompanyID uuid.UUID

	Year            *int
	Month           *int
	SpendCountry    *string
	SpendRegion     *string
	Method          *entity.CalculationMethod
	CategoryID      *string
	SpendAmount     *decimal.Decimal
	Currency        *string
	Emissions       *decimal.Decimal
	EmissionsSource *string
	VendorName      *string
	Notes           *string
}

// UpdateEntryOutput represents the output of entry update.
type UpdateEntryOutput struct {
	Entry *EntryOutput
}

// UpdateEntryUseCase handles entry update logic. Edits pass through the
// same validator/calculator as creation, so a stored entry is always a
// fully validated statement.
type UpdateEntryUseCase struct {
	entryRepo   adapter.EntryRepository
	entitlement adapter.EntitlementService
	clock       adapter.Clock
}

// NewUpdateEntryUseCase creates a new UpdateEntryUseCase instance.
func NewUpdateEntryUseCase(
	entryRepo adapter.EntryRepository,
	entitlement adapter.EntitlementService,
	clock adapter.Clock,
) *UpdateEntryUseCase {
	return &UpdateEntryUseCase{
		entryRepo:   entryRepo,
		entitlement: entitlement,
		clock:       clock,
	}
}

// Execute performs the entry update.
func (uc *UpdateEntryUseCase) Execute(ctx context.Context, input UpdateEntryInput) (*UpdateEntryOutput, error) {
	if err := requireUnlocked(ctx, uc.entitlement, input.CompanyID); err != nil {
		return nil, err
	}

	existing, err := uc.entryRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeEntryNotFound,
			"entry not found",
			err,
		)
	}

	if existing.CompanyID != input.CompanyID {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeNotAuthorizedEntry,
			"entry does not belong to company",
			domainerror.ErrNotAuthorizedToModifyEntry,
		)
	}

	candidate := mergeCandidate(existing, input)

	computed, err := ValidateAndCompute(candidate, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	apply(existing, candidate, computed)
	existing.UpdatedAt = time.Now().UTC()

	if err := uc.entryRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	return &UpdateEntryOutput{Entry: ToEntryOutput(existing)}, nil
}

// mergeCandidate overlays the changed fields of an update onto the stored
// entry, producing the full candidate to re-validate.
func mergeCandidate(existing *entity.Entry, input UpdateEntryInput) Candidate {
	candidate := Candidate{
		Year:            existing.Year,
		Month:           existing.Month,
		SpendCountry:    existing.SpendCountry,
		SpendRegion:     existing.SpendRegion,
		Method:          existing.Method,
		CategoryID:      existing.CategoryID,
		SpendAmount:     existing.SpendAmount,
		Currency:        existing.Currency,
		EmissionsSource: existing.EmissionsSource,
		VendorName:      existing.VendorName,
		Notes:           existing.Notes,
	}
	if existing.Method == entity.MethodActual {
		emissions := existing.Emissions
		candidate.Emissions = &emissions
	}

	if input.Year != nil {
		candidate.Year = *input.Year
	}
	if input.Month != nil {
		candidate.Month = input.Month
	}
	if input.SpendCountry != nil {
		candidate.SpendCountry = *input.SpendCountry
	}
	if input.SpendRegion != nil {
		candidate.SpendRegion = *input.SpendRegion
	}
	if input.Method != nil {
		candidate.Method = *input.Method
	}
	if input.CategoryID != nil {
		candidate.CategoryID = *input.CategoryID
	}
	if input.SpendAmount != nil {
		candidate.SpendAmount = input.SpendAmount
	}
	if input.Currency != nil {
		candidate.Currency = *input.Currency
	}
	if input.Emissions != nil {
		candidate.Emissions = input.Emissions
	}
	if input.EmissionsSource != nil {
		candidate.EmissionsSource = *input.EmissionsSource
	}
	if input.VendorName != nil {
		candidate.VendorName = *input.VendorName
	}
	if input.Notes != nil {
		candidate.Notes = *input.Notes
	}

	return candidate
}
