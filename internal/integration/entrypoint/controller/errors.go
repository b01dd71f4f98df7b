// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/scope3-tracker/backend/internal/domain/error"
	"github.com/scope3-tracker/backend/internal/integration/entrypoint/dto"
)

// handleDomainError maps domain errors to HTTP responses. Entitlement
// failures and billing locks cross-cut every gated endpoint, so the mapping
// lives in one place.
func handleDomainError(ctx *gin.Context, err error) {
	var entryErr *domainerror.EntryError
	if errors.As(err, &entryErr) {
		ctx.JSON(statusForEntryError(entryErr.Code), dto.ErrorResponse{
			Error: entryErr.Message,
			Code:  string(entryErr.Code),
		})
		return
	}

	var billingErr *domainerror.BillingError
	if errors.As(err, &billingErr) {
		status := http.StatusPaymentRequired
		if billingErr.Code == domainerror.ErrCodeEntitlementCheckFailed {
			status = http.StatusServiceUnavailable
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: billingErr.Message,
			Code:  string(billingErr.Code),
		})
		return
	}

	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		status := http.StatusBadRequest
		if reportErr.Code == domainerror.ErrCodeNothingToExport {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: reportErr.Message,
			Code:  string(reportErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusForEntryError maps entry error codes to HTTP status codes.
func statusForEntryError(code domainerror.EntryErrorCode) int {
	switch code {
	case domainerror.ErrCodeEntryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedEntry:
		return http.StatusForbidden
	case domainerror.ErrCodeMissingRequiredFields,
		domainerror.ErrCodeFuturePeriod,
		domainerror.ErrCodeInvalidMonth,
		domainerror.ErrCodeInvalidMethod,
		domainerror.ErrCodeUnknownCategory,
		domainerror.ErrCodeCountryNotSupported,
		domainerror.ErrCodeInvalidSpendAmount,
		domainerror.ErrCodeCurrencyMismatch,
		domainerror.ErrCodeInvalidEmissions,
		domainerror.ErrCodeVendorNameTooLong,
		domainerror.ErrCodeNotesTooLong,
		domainerror.ErrCodeEmptyBatch,
		domainerror.ErrCodeInvalidBatchRow:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
