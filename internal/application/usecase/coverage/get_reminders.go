// Package coverage contains reporting-coverage use cases.
package coverage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/scope3-tracker/backend/internal/application/adapter"
	"github.com/scope3-tracker/backend/internal/application/usecase/report"
)

// GetRemindersInput represents the input for coverage reminder retrieval.
type GetRemindersInput struct {
	CompanyID uuid.UUID
	Criteria  report.Criteria
}

// GetRemindersOutput represents the output of coverage reminder retrieval.
type GetRemindersOutput struct {
	TargetYear int
	Enabled    bool
	Reminders  []Reminder
}

// GetRemindersUseCase derives coverage gap reminders for a company.
// This is read-side analytics: it runs regardless of entitlement state.
type GetRemindersUseCase struct {
	entryRepo     adapter.EntryRepository
	clock         adapter.Clock
	defaultTarget string
}

// NewGetRemindersUseCase creates a new GetRemindersUseCase instance.
func NewGetRemindersUseCase(
	entryRepo adapter.EntryRepository,
	clock adapter.Clock,
	defaultTarget string,
) *GetRemindersUseCase {
	return &GetRemindersUseCase{
		entryRepo:     entryRepo,
		clock:         clock,
		defaultTarget: defaultTarget,
	}
}

// Execute performs the coverage reminder retrieval.
func (uc *GetRemindersUseCase) Execute(ctx context.Context, input GetRemindersInput) (*GetRemindersOutput, error) {
	now := uc.clock.Now()

	targetYear, enabled := ResolveTargetYear(input.Criteria.Year, uc.defaultTarget, now)
	if !enabled {
		return &GetRemindersOutput{Enabled: false}, nil
	}

	records, err := uc.entryRepo.FindByCompany(ctx, input.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	reminders := DetectGaps(records, input.Criteria, targetYear, now)

	return &GetRemindersOutput{
		TargetYear: targetYear,
		Enabled:    true,
		Reminders:  reminders,
	}, nil
}
