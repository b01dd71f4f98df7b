// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/scope3-tracker/backend/internal/application/usecase/entry"
)

// CreateEntryRequest represents the request body for entry creation.
type CreateEntryRequest struct {
	Year            int      `json:"year" binding:"required"`
	Month           *int     `json:"month" binding:"required"`
	SpendCountry    string   `json:"spend_country" binding:"required"`
	SpendRegion     string   `json:"spend_region" binding:"required"`
	Method          string   `json:"method" binding:"required,oneof=spend_based actual"`
	CategoryID      string   `json:"category_id" binding:"required"`
	SpendAmount     *float64 `json:"spend_amount,omitempty"`
	Currency        string   `json:"currency,omitempty"`
	Emissions       *float64 `json:"emissions,omitempty"`
	EmissionsSource string   `json:"emissions_source,omitempty"`
	VendorName      string   `json:"vendor_name,omitempty" binding:"omitempty,max=255"`
	Notes           string   `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// BulkCreateEntriesRequest represents the request body for batch entry creation.
type BulkCreateEntriesRequest struct {
	Entries []CreateEntryRequest `json:"entries" binding:"required"`
}

// UpdateEntryRequest represents the request body for entry update.
type UpdateEntryRequest struct {
	Year            *int     `json:"year,omitempty"`
	Month           *int     `json:"month,omitempty"`
	SpendCountry    *string  `json:"spend_country,omitempty"`
	SpendRegion     *string  `json:"spend_region,omitempty"`
	Method          *string  `json:"method,omitempty" binding:"omitempty,oneof=spend_based actual"`
	CategoryID      *string  `json:"category_id,omitempty"`
	SpendAmount     *float64 `json:"spend_amount,omitempty"`
	Currency        *string  `json:"currency,omitempty"`
	Emissions       *float64 `json:"emissions,omitempty"`
	EmissionsSource *string  `json:"emissions_source,omitempty"`
	VendorName      *string  `json:"vendor_name,omitempty" binding:"omitempty,max=255"`
	Notes           *string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// FactorSnapshotResponse represents the factor metadata captured when an
// entry was computed.
type FactorSnapshotResponse struct {
	Value     string `json:"value"`
	Year      int    `json:"year"`
	Source    string `json:"source"`
	Model     string `json:"model"`
	Geography string `json:"geography"`
	Currency  string `json:"currency"`
}

// EntryResponse represents a single entry in API responses.
type EntryResponse struct {
	ID              string                  `json:"id"`
	Year            int                     `json:"year"`
	Month           *int                    `json:"month,omitempty"`
	SpendCountry    string                  `json:"spend_country"`
	SpendRegion     string                  `json:"spend_region"`
	Method          string                  `json:"method"`
	CategoryID      string                  `json:"category_id"`
	CategoryLabel   string                  `json:"category_label"`
	SpendAmount     *string                 `json:"spend_amount,omitempty"`
	Currency        string                  `json:"currency,omitempty"`
	Factor          *FactorSnapshotResponse `json:"factor,omitempty"`
	Emissions       string                  `json:"emissions"`
	EmissionsSource string                  `json:"emissions_source,omitempty"`
	VendorName      string                  `json:"vendor_name,omitempty"`
	Notes           string                  `json:"notes,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// EntryListResponse represents the response for entry listing.
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
	Total   int             `json:"total"`
}

// ToEntryResponse converts an entry output to an API response.
func ToEntryResponse(out *entry.EntryOutput) EntryResponse {
	resp := EntryResponse{
		ID:              out.ID.String(),
		Year:            out.Year,
		Month:           out.Month,
		SpendCountry:    out.SpendCountry,
		SpendRegion:     out.SpendRegion,
		Method:          string(out.Method),
		CategoryID:      out.CategoryID,
		CategoryLabel:   out.CategoryLabel,
		Currency:        out.Currency,
		Emissions:       out.Emissions.String(),
		EmissionsSource: out.EmissionsSource,
		VendorName:      out.VendorName,
		Notes:           out.Notes,
		CreatedAt:       out.CreatedAt,
		UpdatedAt:       out.UpdatedAt,
	}

	if out.SpendAmount != nil {
		amount := out.SpendAmount.String()
		resp.SpendAmount = &amount
	}

	if out.Factor != nil {
		resp.Factor = &FactorSnapshotResponse{
			Value:     out.Factor.Value.String(),
			Year:      out.Factor.Year,
			Source:    out.Factor.Source,
			Model:     out.Factor.Model,
			Geography: out.Factor.Geography,
			Currency:  out.Factor.Currency,
		}
	}

	return resp
}

// ToEntryListResponse converts a list output to an API response.
func ToEntryListResponse(out *entry.ListEntriesOutput) EntryListResponse {
	entries := make([]EntryResponse, len(out.Entries))
	for i, e := range out.Entries {
		entries[i] = ToEntryResponse(e)
	}
	return EntryListResponse{
		Entries: entries,
		Total:   out.Total,
	}
}
