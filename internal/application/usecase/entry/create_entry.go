// Package entry contains entry-related use cases.
package entry

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/scope3-tracker/backend/internal/application/adapter"
	"github.com/scope3-tracker/backend/internal/domain/entity"
	domainerror "github.com/scope3-tracker/backend/internal/domain/error"
)

// CreateEntryInput represents the input for entry creation.
type CreateEntryInput struct {
	CompanyID uuid.UUID
	UserID    uuid.UUID
	Candidate Candidate
}

// CreateEntryOutput represents the output of entry creation.
type CreateEntryOutput struct {
	Entry *EntryOutput
}

// CreateEntryUseCase handles entry creation logic.
type CreateEntryUseCase struct {
	entryRepo   adapter.EntryRepository
	entitlement adapter.EntitlementService
	clock       adapter.Clock
}

// NewCreateEntryUseCase creates a new CreateEntryUseCase instance.
func NewCreateEntryUseCase(
	entryRepo adapter.EntryRepository,
	entitlement adapter.EntitlementService,
	clock adapter.Clock,
) *CreateEntryUseCase {
	return &CreateEntryUseCase{
		entryRepo:   entryRepo,
		entitlement: entitlement,
		clock:       clock,
	}
}

// Execute performs the entry creation.
func (uc *CreateEntryUseCase) Execute(ctx context.Context, input CreateEntryInput) (*CreateEntryOutput, error) {
	if err := requireUnlocked(ctx, uc.entitlement, input.CompanyID); err != nil {
		return nil, err
	}

	computed, err := ValidateAndCompute(input.Candidate, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	e := entity.NewEntry(input.CompanyID, input.UserID)
	apply(e, input.Candidate, computed)

	if err := uc.entryRepo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	return &CreateEntryOutput{Entry: ToEntryOutput(e)}, nil
}

// requireUnlocked gates a mutating operation on the billing entitlement.
// An unreachable billing service fails closed.
func requireUnlocked(ctx context.Context, entitlement adapter.EntitlementService, companyID uuid.UUID) error {
	unlocked, err := entitlement.IsFeatureUnlocked(ctx, companyID)
	if err != nil {
		return domainerror.NewBillingError(
			domainerror.ErrCodeEntitlementCheckFailed,
			"could not verify subscription, please try again",
			err,
		)
	}
	if !unlocked {
		return domainerror.NewBillingError(
			domainerror.ErrCodeFeatureLocked,
			"upgrade your plan to record and export Scope 3 entries",
			domainerror.ErrFeatureLocked,
		)
	}
	return nil
}
