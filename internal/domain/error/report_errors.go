// Package error defines domain-specific errors for the Scope 3 Tracker application.
package error

import "errors"

// Report/export domain errors.
var (
	// ErrNothingToExport is returned when an export is requested over an empty
	// record set.
	ErrNothingToExport = errors.New("no entries to export")

	// ErrInvalidTargetYear is returned when a coverage target year cannot be resolved.
	ErrInvalidTargetYear = errors.New("invalid target year")
)

// ReportErrorCode defines error codes for report errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	ErrCodeNothingToExport   ReportErrorCode = "RPT-010001"
	ErrCodeInvalidTargetYear ReportErrorCode = "RPT-010002"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
