// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// EntitlementService defines the billing collaborator contract. The core
// treats the answer as a precondition gate for mutations and exports, not
// as a business rule it owns.
type EntitlementService interface {
	// IsFeatureUnlocked reports whether the company has unlocked the
	// emissions ledger feature.
	IsFeatureUnlocked(ctx context.Context, companyID uuid.UUID) (bool, error)
}
