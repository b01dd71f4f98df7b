// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock supplies the current time to period validation and coverage
// analysis. Passing it explicitly keeps "not in the future" checks and
// current-month bounds testable instead of reading the process clock
// ambiently.
type Clock interface {
	Now() time.Time
}
