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

// BulkCreateEntriesInput represents the input for bulk entry creation.
type BulkCreateEntriesInput struct {
	CompanyID  uuid.UUID
	UserID     uuid.UUID
	Candidates []Candidate
}

// BulkCreateEntriesOutput represents the output of bulk entry creation.
type BulkCreateEntriesOutput struct {
	Entries []*EntryOutput
}

// BulkCreateEntriesUseCase handles batch entry submission with
// all-or-nothing semantics: every row is validated before any persistence
// call, and the first invalid row aborts the whole batch.
type BulkCreateEntriesUseCase struct {
	entryRepo   adapter.EntryRepository
	entitlement adapter.EntitlementService
	clock       adapter.Clock
}

// NewBulkCreateEntriesUseCase creates a new BulkCreateEntriesUseCase instance.
func NewBulkCreateEntriesUseCase(
	entryRepo adapter.EntryRepository,
	entitlement adapter.EntitlementService,
	clock adapter.Clock,
) *BulkCreateEntriesUseCase {
	return &BulkCreateEntriesUseCase{
		entryRepo:   entryRepo,
		entitlement: entitlement,
		clock:       clock,
	}
}

// Execute performs the bulk entry creation.
func (uc *BulkCreateEntriesUseCase) Execute(ctx context.Context, input BulkCreateEntriesInput) (*BulkCreateEntriesOutput, error) {
	if err := requireUnlocked(ctx, uc.entitlement, input.CompanyID); err != nil {
		return nil, err
	}

	if len(input.Candidates) == 0 {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeEmptyBatch,
			"batch cannot be empty",
			domainerror.ErrEmptyBatch,
		)
	}

	now := uc.clock.Now()

	entries := make([]*entity.Entry, 0, len(input.Candidates))
	for i, candidate := range input.Candidates {
		computed, err := ValidateAndCompute(candidate, now)
		if err != nil {
			return nil, domainerror.NewEntryError(
				domainerror.ErrCodeInvalidBatchRow,
				fmt.Sprintf("row %d is invalid", i+1),
				err,
			)
		}

		e := entity.NewEntry(input.CompanyID, input.UserID)
		apply(e, candidate, computed)
		entries = append(entries, e)
	}

	if err := uc.entryRepo.CreateBatch(ctx, entries); err != nil {
		return nil, fmt.Errorf("failed to create entries: %w", err)
	}

	outputs := make([]*EntryOutput, len(entries))
	for i, e := range entries {
		outputs[i] = ToEntryOutput(e)
	}

	return &BulkCreateEntriesOutput{Entries: outputs}, nil
}
