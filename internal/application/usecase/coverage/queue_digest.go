// Package coverage contains reporting-coverage use cases.
package coverage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/scope3-tracker/backend/internal/application/adapter"
	"github.com/scope3-tracker/backend/internal/application/usecase/report"
	domainerror "github.com/scope3-tracker/backend/internal/domain/error"
)

// QueueDigestInput represents the input for queueing a reminder digest.
type QueueDigestInput struct {
	CompanyID      uuid.UUID
	RecipientEmail string
	RecipientName  string
}

// QueueDigestOutput represents the output of queueing a reminder digest.
type QueueDigestOutput struct {
	TargetYear    int
	ReminderCount int
	Queued        bool
}

// QueueDigestUseCase queues a coverage reminder digest email for async
// delivery by the email worker. Delivery is best effort; the digest is a
// convenience on top of the reminders endpoint, not a system of record.
type QueueDigestUseCase struct {
	entryRepo     adapter.EntryRepository
	emailService  adapter.EmailService
	entitlement   adapter.EntitlementService
	clock         adapter.Clock
	defaultTarget string
	dashboardURL  string
}

// NewQueueDigestUseCase creates a new QueueDigestUseCase instance.
func NewQueueDigestUseCase(
	entryRepo adapter.EntryRepository,
	emailService adapter.EmailService,
	entitlement adapter.EntitlementService,
	clock adapter.Clock,
	defaultTarget string,
	dashboardURL string,
) *QueueDigestUseCase {
	return &QueueDigestUseCase{
		entryRepo:     entryRepo,
		emailService:  emailService,
		entitlement:   entitlement,
		clock:         clock,
		defaultTarget: defaultTarget,
		dashboardURL:  dashboardURL,
	}
}

// Execute queues the reminder digest.
func (uc *QueueDigestUseCase) Execute(ctx context.Context, input QueueDigestInput) (*QueueDigestOutput, error) {
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
			"upgrade your plan to receive coverage reminder digests",
			domainerror.ErrFeatureLocked,
		)
	}

	now := uc.clock.Now()
	targetYear, enabled := ResolveTargetYear(nil, uc.defaultTarget, now)
	if !enabled {
		return &QueueDigestOutput{Queued: false}, nil
	}

	records, err := uc.entryRepo.FindByCompany(ctx, input.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	reminders := DetectGaps(records, report.Criteria{}, targetYear, now)
	if len(reminders) == 0 {
		return &QueueDigestOutput{TargetYear: targetYear, Queued: false}, nil
	}

	messages := make([]string, len(reminders))
	for i, r := range reminders {
		messages[i] = r.Message
	}

	if err := uc.emailService.QueueCoverageDigestEmail(ctx, adapter.QueueCoverageDigestInput{
		RecipientEmail: input.RecipientEmail,
		RecipientName:  input.RecipientName,
		TargetYear:     targetYear,
		Reminders:      messages,
		DashboardURL:   uc.dashboardURL,
	}); err != nil {
		return nil, fmt.Errorf("failed to queue digest: %w", err)
	}

	return &QueueDigestOutput{
		TargetYear:    targetYear,
		ReminderCount: len(reminders),
		Queued:        true,
	}, nil
}
