// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/scope3-tracker/backend/internal/application/adapter"
	"github.com/scope3-tracker/backend/internal/application/usecase/report"
)

// GetSummaryInput represents the input for summary retrieval.
type GetSummaryInput struct {
	CompanyID uuid.UUID
	Criteria  report.Criteria
}

// GetSummaryOutput represents the output of summary retrieval.
type GetSummaryOutput struct {
	Summary    Summary
	EntryCount int
}

// GetSummaryUseCase derives the emissions summary for a company's
// filtered view. Read-side analytics: runs regardless of entitlement.
type GetSummaryUseCase struct {
	entryRepo adapter.EntryRepository
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(entryRepo adapter.EntryRepository) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		entryRepo: entryRepo,
	}
}

// Execute performs the summary retrieval.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	entries, err := uc.entryRepo.FindByCompany(ctx, input.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	filtered := report.Filter(entries, input.Criteria)

	return &GetSummaryOutput{
		Summary:    Summarize(filtered),
		EntryCount: len(filtered),
	}, nil
}
