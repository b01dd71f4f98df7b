package adapters

import (
	"time"

	"github.com/scope3-tracker/backend/internal/application/adapter"
)

// systemClock implements adapter.Clock using the wall clock in UTC.
type systemClock struct{}

// NewSystemClock creates a new system clock instance.
func NewSystemClock() adapter.Clock {
	return &systemClock{}
}

// Now returns the current time in UTC.
func (c *systemClock) Now() time.Time {
	return time.Now().UTC()
}
