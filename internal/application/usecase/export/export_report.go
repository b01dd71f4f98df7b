// Package export contains report export use cases.
package export

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/scope3-tracker/backend/internal/application/adapter"
	"github.com/scope3-tracker/backend/internal/application/usecase/report"
	domainerror "github.com/scope3-tracker/backend/internal/domain/error"
)

// exportFilenamePrefix is shared by all export filenames.
const exportFilenamePrefix = "scope3-purchased-goods"

// ExportReportInput represents the input for report export.
type ExportReportInput struct {
	CompanyID uuid.UUID
	Criteria  report.Criteria
}

// ExportReportOutput represents the output of report export.
type ExportReportOutput struct {
	Filename string
	Content  string
}

// ExportReportUseCase renders a company's filtered entries into the
// delimited export format. Export is a gated feature: it refuses when the
// company has not unlocked the ledger.
type ExportReportUseCase struct {
	entryRepo   adapter.EntryRepository
	entitlement adapter.EntitlementService
}

// NewExportReportUseCase creates a new ExportReportUseCase instance.
func NewExportReportUseCase(
	entryRepo adapter.EntryRepository,
	entitlement adapter.EntitlementService,
) *ExportReportUseCase {
	return &ExportReportUseCase{
		entryRepo:   entryRepo,
		entitlement: entitlement,
	}
}

// Execute performs the report export.
func (uc *ExportReportUseCase) Execute(ctx context.Context, input ExportReportInput) (*ExportReportOutput, error) {
	unlocked, err := uc.entitlement.IsFeatureUnlocked(ctx, input.CompanyID)
	if err != nil {
		return nil, domainerror.NewBillingError(
			domainerror.ErrCodeEntitlementCheckFailed,
			"could not verify subscription, please try again",
			err,
		)
	}
	if !unlocked {
		return nil, domainerror.NewBillingError(
			domainerror.ErrCodeFeatureLocked,
			"upgrade your plan to export Scope 3 reports",
			domainerror.ErrFeatureLocked,
		)
	}

	entries, err := uc.entryRepo.FindByCompany(ctx, input.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	filtered := report.Filter(entries, input.Criteria)
	if len(filtered) == 0 {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeNothingToExport,
			"no entries match the current filters",
			domainerror.ErrNothingToExport,
		)
	}

	return &ExportReportOutput{
		Filename: filename(input.Criteria),
		Content:  ToDelimitedText(filtered, DisclosureText),
	}, nil
}

// filename derives the download name from the active filters: the
// reporting year when only a year filter is set, "all-years" for an
// unfiltered export, and "filtered" whenever other criteria narrow the set.
func filename(criteria report.Criteria) string {
	narrowed := criteria.CategoryLabel != nil || criteria.Method != nil ||
		criteria.Country != nil || criteria.Region != nil

	switch {
	case narrowed:
		return fmt.Sprintf("%s-filtered.csv", exportFilenamePrefix)
	case criteria.Year != nil:
		return fmt.Sprintf("%s-%d.csv", exportFilenamePrefix, *criteria.Year)
	default:
		return fmt.Sprintf("%s-all-years.csv", exportFilenamePrefix)
	}
}
