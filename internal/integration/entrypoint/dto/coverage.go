// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/scope3-tracker/backend/internal/application/usecase/coverage"
)

// ReminderResponse represents a single coverage gap reminder.
type ReminderResponse struct {
	Type       string `json:"type"`
	RegionKey  string `json:"region_key,omitempty"`
	Year       int    `json:"year,omitempty"`
	FirstMonth int    `json:"first_month,omitempty"`
	LastMonth  int    `json:"last_month,omitempty"`
	Count      int    `json:"count,omitempty"`
	Message    string `json:"message"`
}

// CoverageRemindersResponse represents the response for reminder retrieval.
type CoverageRemindersResponse struct {
	TargetYear int                `json:"target_year,omitempty"`
	Enabled    bool               `json:"enabled"`
	Reminders  []ReminderResponse `json:"reminders"`
}

// QueueDigestRequest represents the request body for queueing a reminder
// digest email.
type QueueDigestRequest struct {
	RecipientEmail string `json:"recipient_email" binding:"required,email"`
	RecipientName  string `json:"recipient_name,omitempty"`
}

// QueueDigestResponse represents the response for queueing a digest.
type QueueDigestResponse struct {
	TargetYear    int  `json:"target_year,omitempty"`
	ReminderCount int  `json:"reminder_count"`
	Queued        bool `json:"queued"`
}

// ToCoverageRemindersResponse converts a reminders output to an API response.
func ToCoverageRemindersResponse(out *coverage.GetRemindersOutput) CoverageRemindersResponse {
	reminders := make([]ReminderResponse, len(out.Reminders))
	for i, r := range out.Reminders {
		reminders[i] = ReminderResponse{
			Type:       string(r.Type),
			RegionKey:  r.RegionKey,
			Year:       r.Year,
			FirstMonth: r.FirstMonth,
			LastMonth:  r.LastMonth,
			Count:      r.Count,
			Message:    r.Message,
		}
	}
	return CoverageRemindersResponse{
		TargetYear: out.TargetYear,
		Enabled:    out.Enabled,
		Reminders:  reminders,
	}
}
