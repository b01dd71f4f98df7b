// Package coverage contains reporting-coverage use cases: finding months
// without entries per country/region group and turning them into reminders.
package coverage

import (
	"fmt"
	"sort"
	"time"

	"github.com/scope3-tracker/backend/internal/application/usecase/report"
	"github.com/scope3-tracker/backend/internal/domain/entity"
)

// UnknownCountryLabel is the placeholder for entries without a country.
// Such entries still form a region group; they are never silently dropped.
const UnknownCountryLabel = "Unknown country"

// ReminderType distinguishes the kinds of coverage reminders.
type ReminderType string

const (
	// ReminderMissingMonths flags a contiguous run of months with no entry
	// for a region group in the target year.
	ReminderMissingMonths ReminderType = "missing_months"
	// ReminderMissingMonthMetadata flags entries that carry no month at all.
	ReminderMissingMonthMetadata ReminderType = "missing_month_metadata"
)

// Reminder is one coverage gap notice.
type Reminder struct {
	Type      ReminderType
	RegionKey string
	Year      int
	// FirstMonth and LastMonth bound the missing run (equal for a single
	// month). Zero for metadata reminders.
	FirstMonth int
	LastMonth  int
	// Count is the number of affected entries for metadata reminders.
	Count   int
	Message string
}

// TargetPreference is the configured fallback for gap detection when no
// explicit year filter is active.
const (
	TargetCurrent  = "current"
	TargetPrevious = "previous"
	TargetNone     = "none"
)

// ResolveTargetYear picks the gap-detection target year: an explicit
// filter selection wins, otherwise the configured reporting preference
// applies. The second result is false when detection is disabled.
func ResolveTargetYear(explicit *int, preference string, now time.Time) (int, bool) {
	if explicit != nil {
		return *explicit, true
	}
	switch preference {
	case TargetCurrent:
		return now.Year(), true
	case TargetPrevious:
		return now.Year() - 1, true
	default:
		return 0, false
	}
}

// DetectGaps finds reporting months with no entry, per region group, for
// the target year. Region groups are derived from all observed records,
// not only the year-matching ones, so a region with entries only in other
// years still gets a full-year reminder. That is a deliberate product
// decision (remind about every region the company has ever reported in),
// preserved as-is pending confirmation.
func DetectGaps(records []*entity.Entry, criteria report.Criteria, targetYear int, now time.Time) []Reminder {
	// The working set honors every filter except the year: month presence
	// is checked against the target year explicitly, and the month-metadata
	// sweep is defined over the unfiltered-by-year view.
	working := report.Filter(records, withoutYear(criteria))

	upperBound := 12
	if targetYear == now.Year() {
		upperBound = int(now.Month())
	}

	keys := regionKeys(records, working, criteria)

	monthsByKey := make(map[string]map[int]bool, len(keys))
	for _, e := range working {
		if e.Year != targetYear || e.Month == nil {
			continue
		}
		key := regionKey(e)
		if monthsByKey[key] == nil {
			monthsByKey[key] = make(map[int]bool)
		}
		monthsByKey[key][*e.Month] = true
	}

	var reminders []Reminder
	for _, key := range keys {
		present := monthsByKey[key]
		for _, run := range missingRuns(present, upperBound) {
			reminders = append(reminders, Reminder{
				Type:       ReminderMissingMonths,
				RegionKey:  key,
				Year:       targetYear,
				FirstMonth: run.first,
				LastMonth:  run.last,
				Message:    fmt.Sprintf("No entries for %s in %s", runLabel(run, targetYear), key),
			})
		}
	}

	undated := 0
	for _, e := range working {
		if e.Month == nil {
			undated++
		}
	}
	if undated > 0 {
		noun := "entries are"
		if undated == 1 {
			noun = "entry is"
		}
		reminders = append(reminders, Reminder{
			Type:    ReminderMissingMonthMetadata,
			Count:   undated,
			Message: fmt.Sprintf("%d %s missing month information", undated, noun),
		})
	}

	return reminders
}

// regionKeys determines the region groups to scan. With a region filter
// active the groups come from the filtered view; with only a country
// filter, every region ever observed under that country counts; with no
// location filter, every region observed anywhere counts.
func regionKeys(records, working []*entity.Entry, criteria report.Criteria) []string {
	seen := make(map[string]bool)

	switch {
	case criteria.Region != nil:
		for _, e := range working {
			seen[regionKey(e)] = true
		}
	case criteria.Country != nil:
		for _, e := range records {
			if e.SpendCountry == *criteria.Country {
				seen[regionKey(e)] = true
			}
		}
	default:
		for _, e := range records {
			seen[regionKey(e)] = true
		}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// regionKey renders the "<country> / <region>" group key for an entry.
func regionKey(e *entity.Entry) string {
	country := e.SpendCountry
	if country == "" {
		country = UnknownCountryLabel
	}
	return country + " / " + e.SpendRegion
}

type monthRun struct {
	first, last int
}

// missingRuns collapses the months 1..upperBound absent from present into
// maximal contiguous runs.
func missingRuns(present map[int]bool, upperBound int) []monthRun {
	var runs []monthRun
	start := 0
	for m := 1; m <= upperBound; m++ {
		if !present[m] {
			if start == 0 {
				start = m
			}
			continue
		}
		if start != 0 {
			runs = append(runs, monthRun{first: start, last: m - 1})
			start = 0
		}
	}
	if start != 0 {
		runs = append(runs, monthRun{first: start, last: upperBound})
	}
	return runs
}

// runLabel renders a month-name range such as "February 2025" or
// "February to April 2025".
func runLabel(run monthRun, year int) string {
	if run.first == run.last {
		return fmt.Sprintf("%s %d", time.Month(run.first), year)
	}
	return fmt.Sprintf("%s to %s %d", time.Month(run.first), time.Month(run.last), year)
}

// withoutYear strips the year from filter criteria.
func withoutYear(criteria report.Criteria) report.Criteria {
	criteria.Year = nil
	return criteria
}
