// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// QueueCoverageDigestInput represents the input for queueing a coverage
// reminder digest email.
type QueueCoverageDigestInput struct {
	RecipientEmail string
	RecipientName  string
	TargetYear     int
	Reminders      []string
	DashboardURL   string
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueueCoverageDigestEmail queues a coverage gap reminder digest.
	QueueCoverageDigestEmail(ctx context.Context, input QueueCoverageDigestInput) error
}
