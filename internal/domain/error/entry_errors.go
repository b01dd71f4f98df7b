// Package error defines domain-specific errors for the Scope 3 Tracker application.
package error

import "errors"

// Entry domain errors.
var (
	// ErrEntryNotFound is returned when an entry is not found in the system.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrNotAuthorizedToModifyEntry is returned when a user is not authorized to modify an entry.
	ErrNotAuthorizedToModifyEntry = errors.New("not authorized to modify entry")

	// ErrMissingRequiredFields is returned when a candidate entry omits year, month,
	// category, spend country, or spend region.
	ErrMissingRequiredFields = errors.New("missing required fields")

	// ErrFuturePeriod is returned when the reporting period lies in the future.
	ErrFuturePeriod = errors.New("reporting period is in the future")

	// ErrInvalidMonth is returned when the month is outside 1-12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")

	// ErrInvalidCalculationMethod is returned when the calculation method is invalid.
	ErrInvalidCalculationMethod = errors.New("invalid calculation method")

	// ErrUnknownCategory is returned when the category does not resolve within the
	// factor set for the spend country.
	ErrUnknownCategory = errors.New("category not found in factor set")

	// ErrCountryNotSupported is returned when no factor set exists for the spend
	// country. Spend-based entry is unavailable for such countries; actual-method
	// entry remains possible.
	ErrCountryNotSupported = errors.New("no emission factor set for country")

	// ErrInvalidSpendAmount is returned when the spend amount is missing or negative.
	ErrInvalidSpendAmount = errors.New("spend amount must be a non-negative number")

	// ErrCurrencyMismatch is returned when the entry currency differs from the
	// factor set currency. Mismatches are hard errors; amounts are never converted.
	ErrCurrencyMismatch = errors.New("currency does not match factor set currency")

	// ErrInvalidEmissions is returned when a reported emissions value is missing or negative.
	ErrInvalidEmissions = errors.New("emissions must be a non-negative number")

	// ErrVendorNameTooLong is returned when the vendor name exceeds the maximum length.
	ErrVendorNameTooLong = errors.New("vendor name too long")

	// ErrNotesTooLong is returned when the entry notes exceed the maximum length.
	ErrNotesTooLong = errors.New("notes too long")

	// ErrEmptyBatch is returned when a bulk submission contains no rows.
	ErrEmptyBatch = errors.New("batch cannot be empty")
)

// EntryErrorCode defines error codes for entry errors.
// Format: ENT-XXYYYY where XX is category and YYYY is specific error.
type EntryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingRequiredFields EntryErrorCode = "ENT-010001"
	ErrCodeFuturePeriod          EntryErrorCode = "ENT-010002"
	ErrCodeInvalidMonth          EntryErrorCode = "ENT-010003"
	ErrCodeInvalidMethod         EntryErrorCode = "ENT-010004"
	ErrCodeUnknownCategory       EntryErrorCode = "ENT-010005"
	ErrCodeCountryNotSupported   EntryErrorCode = "ENT-010006"
	ErrCodeInvalidSpendAmount    EntryErrorCode = "ENT-010007"
	ErrCodeCurrencyMismatch      EntryErrorCode = "ENT-010008"
	ErrCodeInvalidEmissions      EntryErrorCode = "ENT-010009"
	ErrCodeVendorNameTooLong     EntryErrorCode = "ENT-010010"
	ErrCodeNotesTooLong          EntryErrorCode = "ENT-010011"
	ErrCodeEmptyBatch            EntryErrorCode = "ENT-010012"
	ErrCodeInvalidBatchRow       EntryErrorCode = "ENT-010013"

	// Access errors (02XXXX)
	ErrCodeEntryNotFound      EntryErrorCode = "ENT-020001"
	ErrCodeNotAuthorizedEntry EntryErrorCode = "ENT-020002"
)

// EntryError represents an entry error with code and message.
type EntryError struct {
	Code    EntryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EntryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EntryError) Unwrap() error {
	return e.Err
}

// NewEntryError creates a new EntryError with the given code and message.
func NewEntryError(code EntryErrorCode, message string, err error) *EntryError {
	return &EntryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
