// Package entry contains entry-related use cases.
package entry

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/scope3-tracker/backend/internal/application/adapter"
	"github.com/scope3-tracker/backend/internal/application/usecase/report"
)

// ListEntriesInput represents the input for listing entries.
type ListEntriesInput struct {
	CompanyID uuid.UUID
	Criteria  report.Criteria
}

// ListEntriesOutput represents the output of listing entries.
type ListEntriesOutput struct {
	Entries []*EntryOutput
	Total   int
}

// ListEntriesUseCase handles entry listing. The repository returns the
// full company collection and the filter engine narrows it in memory.
type ListEntriesUseCase struct {
	entryRepo adapter.EntryRepository
}

// NewListEntriesUseCase creates a new ListEntriesUseCase instance.
func NewListEntriesUseCase(entryRepo adapter.EntryRepository) *ListEntriesUseCase {
	return &ListEntriesUseCase{
		entryRepo: entryRepo,
	}
}

// Execute performs the entry listing.
func (uc *ListEntriesUseCase) Execute(ctx context.Context, input ListEntriesInput) (*ListEntriesOutput, error) {
	entries, err := uc.entryRepo.FindByCompany(ctx, input.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	filtered := report.Filter(entries, input.Criteria)

	outputs := make([]*EntryOutput, len(filtered))
	for i, e := range filtered {
		outputs[i] = ToEntryOutput(e)
	}

	return &ListEntriesOutput{
		Entries: outputs,
		Total:   len(outputs),
	}, nil
}
