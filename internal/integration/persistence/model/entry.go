// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/scope3-tracker/backend/internal/domain/entity"
)

// EntryModel represents the entries table in the database. Factor snapshot
// columns are denormalized on purpose: they are historical statements
// captured at computation time, not foreign keys into the catalog.
type EntryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`

	Year  int  `gorm:"not null;index"`
	Month *int `gorm:"type:integer"`

	SpendCountry string `gorm:"type:varchar(2);index"`
	SpendRegion  string `gorm:"type:varchar(100)"`

	Method string `gorm:"type:varchar(20);not null;index"`

	SpendAmount   *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Currency      string           `gorm:"type:varchar(3)"`
	CategoryID    string           `gorm:"type:varchar(100)"`
	CategoryLabel string           `gorm:"type:varchar(255)"`

	FactorValue     *decimal.Decimal `gorm:"type:decimal(20,10)"`
	FactorYear      *int             `gorm:"type:integer"`
	FactorSource    string           `gorm:"type:text"`
	FactorModel     string           `gorm:"type:varchar(100)"`
	FactorGeography string           `gorm:"type:varchar(100)"`
	FactorCurrency  string           `gorm:"type:varchar(3)"`

	Emissions       decimal.Decimal `gorm:"type:decimal(20,10);not null"`
	EmissionsSource string          `gorm:"type:varchar(500)"`

	VendorName string `gorm:"type:varchar(255)"`
	Notes      string `gorm:"type:text"`

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the EntryModel.
func (EntryModel) TableName() string {
	return "entries"
}

// ToEntity converts an EntryModel to a domain Entry entity.
func (m *EntryModel) ToEntity() *entity.Entry {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	e := &entity.Entry{
		ID:              m.ID,
		CompanyID:       m.CompanyID,
		UserID:          m.UserID,
		Year:            m.Year,
		Month:           m.Month,
		SpendCountry:    m.SpendCountry,
		SpendRegion:     m.SpendRegion,
		Method:          entity.CalculationMethod(m.Method),
		SpendAmount:     m.SpendAmount,
		Currency:        m.Currency,
		CategoryID:      m.CategoryID,
		CategoryLabel:   m.CategoryLabel,
		Emissions:       m.Emissions,
		EmissionsSource: m.EmissionsSource,
		VendorName:      m.VendorName,
		Notes:           m.Notes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		DeletedAt:       deletedAt,
	}

	if m.FactorValue != nil {
		factorYear := 0
		if m.FactorYear != nil {
			factorYear = *m.FactorYear
		}
		e.Factor = &entity.FactorSnapshot{
			Value:     *m.FactorValue,
			Year:      factorYear,
			Source:    m.FactorSource,
			Model:     m.FactorModel,
			Geography: m.FactorGeography,
			Currency:  m.FactorCurrency,
		}
	}

	return e
}

// EntryFromEntity creates an EntryModel from a domain Entry entity.
func EntryFromEntity(e *entity.Entry) *EntryModel {
	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	}

	m := &EntryModel{
		ID:              e.ID,
		CompanyID:       e.CompanyID,
		UserID:          e.UserID,
		Year:            e.Year,
		Month:           e.Month,
		SpendCountry:    e.SpendCountry,
		SpendRegion:     e.SpendRegion,
		Method:          string(e.Method),
		SpendAmount:     e.SpendAmount,
		Currency:        e.Currency,
		CategoryID:      e.CategoryID,
		CategoryLabel:   e.CategoryLabel,
		Emissions:       e.Emissions,
		EmissionsSource: e.EmissionsSource,
		VendorName:      e.VendorName,
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
		DeletedAt:       deletedAt,
	}

	if e.Factor != nil {
		value := e.Factor.Value
		year := e.Factor.Year
		m.FactorValue = &value
		m.FactorYear = &year
		m.FactorSource = e.Factor.Source
		m.FactorModel = e.Factor.Model
		m.FactorGeography = e.Factor.Geography
		m.FactorCurrency = e.Factor.Currency
	}

	return m
}
