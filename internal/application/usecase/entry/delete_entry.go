// Package entry contains entry-related use cases.
package entry

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/scope3-tracker/backend/internal/application/adapter"
	domainerror "github.com/scope3-tracker/backend/internal/domain/error"
)

// DeleteEntryInput represents the input for entry deletion.
type DeleteEntryInput struct {
	EntryID   uuid.UUID
	CompanyID uuid.UUID
}

// DeleteEntryUseCase handles entry deletion logic.
type DeleteEntryUseCase struct {
	entryRepo   adapter.EntryRepository
	entitlement adapter.EntitlementService
}

// NewDeleteEntryUseCase creates a new DeleteEntryUseCase instance.
func NewDeleteEntryUseCase(
	entryRepo adapter.EntryRepository,
	entitlement adapter.EntitlementService,
) *DeleteEntryUseCase {
	return &DeleteEntryUseCase{
		entryRepo:   entryRepo,
		entitlement: entitlement,
	}
}

// Execute performs the entry deletion.
func (uc *DeleteEntryUseCase) Execute(ctx context.Context, input DeleteEntryInput) error {
	if err := requireUnlocked(ctx, uc.entitlement, input.CompanyID); err != nil {
		return err
	}

	existing, err := uc.entryRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		return domainerror.NewEntryError(
			domainerror.ErrCodeEntryNotFound,
			"entry not found",
			err,
		)
	}

	if existing.CompanyID != input.CompanyID {
		return domainerror.NewEntryError(
			domainerror.ErrCodeNotAuthorizedEntry,
			"entry does not belong to company",
			domainerror.ErrNotAuthorizedToModifyEntry,
		)
	}

	if err := uc.entryRepo.Delete(ctx, input.EntryID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	return nil
}
