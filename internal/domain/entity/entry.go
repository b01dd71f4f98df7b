// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CalculationMethod represents how an entry's emissions were determined.
type CalculationMethod string

const (
	// MethodSpendBased estimates emissions from a spend amount and a
	// category-average emission intensity factor.
	MethodSpendBased CalculationMethod = "spend_based"
	// MethodActual uses an emissions value reported directly by a vendor.
	MethodActual CalculationMethod = "actual"
)

// FactorSnapshot captures the emission factor metadata used when an entry
// was computed. It is a historical statement, never recomputed against the
// catalog after creation.
type FactorSnapshot struct {
	Value     decimal.Decimal
	Year      int
	Source    string
	Model     string
	Geography string
	Currency  string
}

// Entry represents one Scope 3 purchased goods & services reporting line.
type Entry struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	UserID    uuid.UUID

	Year  int
	Month *int // 1-12; nil when the reporting line carries no month

	SpendCountry string
	SpendRegion  string

	Method CalculationMethod

	// Spend-based fields (authoritative when Method == MethodSpendBased)
	SpendAmount   *decimal.Decimal
	Currency      string
	CategoryID    string
	CategoryLabel string
	Factor        *FactorSnapshot

	// Actual-method fields (authoritative when Method == MethodActual)
	EmissionsSource string

	// Emissions is the computed or vendor-reported result in tCO2e,
	// always present regardless of method.
	Emissions decimal.Decimal

	VendorName string
	Notes      string

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewEntry creates a new Entry entity with fresh identity and timestamps.
// Validation and emissions computation belong to the application layer;
// this constructor only establishes identity.
func NewEntry(companyID, userID uuid.UUID) *Entry {
	now := time.Now().UTC()

	return &Entry{
		ID:        uuid.New(),
		CompanyID: companyID,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsDated reports whether the entry carries month-level period metadata.
func (e *Entry) IsDated() bool {
	return e.Month != nil
}
