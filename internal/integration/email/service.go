// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/scope3-tracker/backend/internal/application/adapter"
	"github.com/scope3-tracker/backend/internal/domain/entity"
	domainerror "github.com/scope3-tracker/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
	}
}

// QueueCoverageDigestEmail queues a coverage gap reminder digest.
func (s *Service) QueueCoverageDigestEmail(ctx context.Context, input adapter.QueueCoverageDigestInput) error {
	subject := fmt.Sprintf("Reporting coverage gaps for %d - Scope 3 Tracker", input.TargetYear)

	dashboardURL := input.DashboardURL
	if dashboardURL == "" {
		dashboardURL = s.appBaseURL + "/dashboard"
	}

	templateData := map[string]interface{}{
		"recipient_name": input.RecipientName,
		"target_year":    input.TargetYear,
		"reminders":      input.Reminders,
		"dashboard_url":  dashboardURL,
	}

	job := entity.NewEmailJob(
		entity.TemplateCoverageDigest,
		input.RecipientEmail,
		input.RecipientName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue coverage digest email",
			err,
		)
	}

	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
