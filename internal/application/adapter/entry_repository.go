// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/scope3-tracker/backend/internal/domain/entity"
)

// EntryRepository defines the interface for entry persistence operations.
// The core treats the store as eventually consistent: after a successful
// mutation callers reload the full company list rather than patching
// in-memory state, so derived views stay trivially correct.
type EntryRepository interface {
	// Create creates a new entry in the database.
	Create(ctx context.Context, entry *entity.Entry) error

	// CreateBatch creates multiple entries in a single transaction.
	// All rows are persisted or none are.
	CreateBatch(ctx context.Context, entries []*entity.Entry) error

	// FindByID retrieves an entry by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Entry, error)

	// FindByCompany retrieves all entries for a company, newest period first.
	FindByCompany(ctx context.Context, companyID uuid.UUID) ([]*entity.Entry, error)

	// Update updates an existing entry in the database.
	Update(ctx context.Context, entry *entity.Entry) error

	// Delete soft-deletes an entry from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
