// Package error defines domain-specific errors for the Scope 3 Tracker application.
package error

import "errors"

// Billing/entitlement domain errors.
var (
	// ErrFeatureLocked is returned when the company has not unlocked the
	// emissions ledger feature. Mutations and exports refuse with an upgrade
	// message; read-side analytics remain available.
	ErrFeatureLocked = errors.New("feature not unlocked for company")

	// ErrEntitlementCheckFailed is returned when the billing service cannot be
	// reached. The gate fails closed: mutations are refused, not silently allowed.
	ErrEntitlementCheckFailed = errors.New("entitlement check failed")
)

// BillingErrorCode defines error codes for billing errors.
// Format: BIL-XXYYYY where XX is category and YYYY is specific error.
type BillingErrorCode string

const (
	ErrCodeFeatureLocked          BillingErrorCode = "BIL-010001"
	ErrCodeEntitlementCheckFailed BillingErrorCode = "BIL-020001"
)

// BillingError represents a billing error with code and message.
type BillingError struct {
	Code    BillingErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BillingError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BillingError) Unwrap() error {
	return e.Err
}

// NewBillingError creates a new BillingError with the given code and message.
func NewBillingError(code BillingErrorCode, message string, err error) *BillingError {
	return &BillingError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
