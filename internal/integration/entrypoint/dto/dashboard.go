// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/scope3-tracker/backend/internal/application/usecase/dashboard"
)

// ConcentrationAlertResponse represents a category concentration alert.
type ConcentrationAlertResponse struct {
	Category     string `json:"category"`
	SharePercent int64  `json:"share_percent"`
	Message      string `json:"message"`
}

// SummaryResponse represents the dashboard summary response.
type SummaryResponse struct {
	Total            string                       `json:"total"`
	ActualSubtotal   string                       `json:"actual_subtotal"`
	SpendSubtotal    string                       `json:"spend_subtotal"`
	AveragePerMonth  string                       `json:"average_per_month"`
	CoveredPeriods   int                          `json:"covered_periods"`
	TopCategory      string                       `json:"top_category,omitempty"`
	TopCategoryValue string                       `json:"top_category_value,omitempty"`
	Alerts           []ConcentrationAlertResponse `json:"alerts"`
	EntryCount       int                          `json:"entry_count"`
}

// ToSummaryResponse converts a summary output to an API response.
func ToSummaryResponse(out *dashboard.GetSummaryOutput) SummaryResponse {
	resp := SummaryResponse{
		Total:           out.Summary.Total.String(),
		ActualSubtotal:  out.Summary.ActualSubtotal.String(),
		SpendSubtotal:   out.Summary.SpendSubtotal.String(),
		AveragePerMonth: out.Summary.AveragePerMonth.String(),
		CoveredPeriods:  out.Summary.CoveredPeriods,
		TopCategory:     out.Summary.TopCategory,
		Alerts:          make([]ConcentrationAlertResponse, len(out.Summary.Alerts)),
		EntryCount:      out.EntryCount,
	}

	if out.Summary.TopCategory != "" {
		resp.TopCategoryValue = out.Summary.TopCategoryValue.String()
	}

	for i, a := range out.Summary.Alerts {
		resp.Alerts[i] = ConcentrationAlertResponse{
			Category:     a.Category,
			SharePercent: a.SharePercent,
			Message:      a.Message,
		}
	}

	return resp
}
