package coverage

import (
	"strings"
	"testing"
	"time"

	"github.com/scope3-tracker/backend/internal/application/usecase/report"
	"github.com/scope3-tracker/backend/internal/domain/entity"
)

// now is past the target year so every month of it is in scope.
var detectNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func monthPtr(m int) *int {
	return &m
}

func datedEntry(year, month int, country, region string) *entity.Entry {
	return &entity.Entry{
		Year:         year,
		Month:        monthPtr(month),
		SpendCountry: country,
		SpendRegion:  region,
		Method:       entity.MethodSpendBased,
	}
}

func TestResolveTargetYear(t *testing.T) {
	t.Run("explicit filter wins over the preference", func(t *testing.T) {
		year := 2019
		got, enabled := ResolveTargetYear(&year, TargetPrevious, detectNow)
		if !enabled || got != 2019 {
			t.Fatalf("expected 2019/enabled, got %d/%v", got, enabled)
		}
	})

	t.Run("previous preference targets last year", func(t *testing.T) {
		got, enabled := ResolveTargetYear(nil, TargetPrevious, detectNow)
		if !enabled || got != 2025 {
			t.Fatalf("expected 2025/enabled, got %d/%v", got, enabled)
		}
	})

	t.Run("current preference targets this year", func(t *testing.T) {
		got, enabled := ResolveTargetYear(nil, TargetCurrent, detectNow)
		if !enabled || got != 2026 {
			t.Fatalf("expected 2026/enabled, got %d/%v", got, enabled)
		}
	})

	t.Run("none disables detection", func(t *testing.T) {
		if _, enabled := ResolveTargetYear(nil, TargetNone, detectNow); enabled {
			t.Fatal("expected detection to be disabled")
		}
	})
}

func TestDetectGaps(t *testing.T) {
	t.Run("collapses a missing run into one reminder", func(t *testing.T) {
		records := []*entity.Entry{
			datedEntry(2025, 1, "US", "CA"),
			datedEntry(2025, 3, "US", "CA"),
		}

		var gaps []Reminder
		for _, r := range DetectGaps(records, report.Criteria{}, 2025, detectNow) {
			if r.Type == ReminderMissingMonths {
				gaps = append(gaps, r)
			}
		}

		if len(gaps) != 2 {
			t.Fatalf("expected 2 gap reminders, got %d: %+v", len(gaps), gaps)
		}

		february := gaps[0]
		if february.FirstMonth != 2 || february.LastMonth != 2 {
			t.Errorf("expected single-month February run, got %d..%d", february.FirstMonth, february.LastMonth)
		}
		if february.Message != "No entries for February 2025 in US / CA" {
			t.Errorf("unexpected message %q", february.Message)
		}

		rest := gaps[1]
		if rest.FirstMonth != 4 || rest.LastMonth != 12 {
			t.Errorf("expected April..December run, got %d..%d", rest.FirstMonth, rest.LastMonth)
		}
		if !strings.Contains(rest.Message, "April to December 2025") {
			t.Errorf("unexpected message %q", rest.Message)
		}
	})

	t.Run("region groups cover every region ever observed", func(t *testing.T) {
		// NY reported only in 2024; it still gets a full 2025 reminder.
		records := []*entity.Entry{
			datedEntry(2024, 11, "US", "NY"),
		}
		for m := 1; m <= 12; m++ {
			records = append(records, datedEntry(2025, m, "US", "CA"))
		}

		reminders := DetectGaps(records, report.Criteria{}, 2025, detectNow)
		if len(reminders) != 1 {
			t.Fatalf("expected 1 reminder, got %d: %+v", len(reminders), reminders)
		}
		if reminders[0].RegionKey != "US / NY" {
			t.Errorf("unexpected region key %s", reminders[0].RegionKey)
		}
		if reminders[0].FirstMonth != 1 || reminders[0].LastMonth != 12 {
			t.Errorf("expected full-year run, got %d..%d", reminders[0].FirstMonth, reminders[0].LastMonth)
		}
	})

	t.Run("current-year detection stops at the current month", func(t *testing.T) {
		records := []*entity.Entry{
			datedEntry(2026, 1, "US", "CA"),
		}

		reminders := DetectGaps(records, report.Criteria{}, 2026, detectNow)
		if len(reminders) != 1 {
			t.Fatalf("expected 1 reminder, got %d", len(reminders))
		}
		// detectNow is March 2026: only February and March can be missing.
		if reminders[0].FirstMonth != 2 || reminders[0].LastMonth != 3 {
			t.Errorf("expected February..March run, got %d..%d", reminders[0].FirstMonth, reminders[0].LastMonth)
		}
	})

	t.Run("country filter scopes the region universe", func(t *testing.T) {
		country := "US"
		records := []*entity.Entry{
			datedEntry(2024, 5, "US", "CA"),
			datedEntry(2024, 5, "GB", "London"),
		}

		reminders := DetectGaps(records, report.Criteria{Country: &country}, 2025, detectNow)
		for _, r := range reminders {
			if strings.HasPrefix(r.RegionKey, "GB") {
				t.Errorf("GB region leaked into a US-filtered scan: %+v", r)
			}
		}
	})

	t.Run("entries without a country form their own group", func(t *testing.T) {
		records := []*entity.Entry{
			{Year: 2025, Month: monthPtr(1), SpendRegion: "Unassigned", Method: entity.MethodActual},
		}

		reminders := DetectGaps(records, report.Criteria{}, 2025, detectNow)
		if len(reminders) == 0 {
			t.Fatal("expected reminders")
		}
		if reminders[0].RegionKey != UnknownCountryLabel+" / Unassigned" {
			t.Errorf("unexpected region key %s", reminders[0].RegionKey)
		}
	})

	t.Run("undated entries produce one aggregate metadata reminder", func(t *testing.T) {
		records := []*entity.Entry{
			{Year: 2025, SpendCountry: "US", SpendRegion: "CA", Method: entity.MethodActual},
			{Year: 2024, SpendCountry: "US", SpendRegion: "CA", Method: entity.MethodActual},
		}
		for m := 1; m <= 12; m++ {
			records = append(records, datedEntry(2025, m, "US", "CA"))
		}

		reminders := DetectGaps(records, report.Criteria{}, 2025, detectNow)
		if len(reminders) != 1 {
			t.Fatalf("expected 1 reminder, got %d: %+v", len(reminders), reminders)
		}
		r := reminders[0]
		if r.Type != ReminderMissingMonthMetadata {
			t.Fatalf("expected metadata reminder, got %s", r.Type)
		}
		if r.Count != 2 {
			t.Errorf("expected count 2, got %d", r.Count)
		}
		if r.Message != "2 entries are missing month information" {
			t.Errorf("unexpected message %q", r.Message)
		}
	})

	t.Run("a single undated entry uses singular wording", func(t *testing.T) {
		records := []*entity.Entry{
			{Year: 2025, SpendCountry: "US", SpendRegion: "CA", Method: entity.MethodActual},
		}
		for m := 1; m <= 12; m++ {
			records = append(records, datedEntry(2025, m, "US", "CA"))
		}

		reminders := DetectGaps(records, report.Criteria{}, 2025, detectNow)
		if len(reminders) != 1 {
			t.Fatalf("expected 1 reminder, got %d", len(reminders))
		}
		if reminders[0].Message != "1 entry is missing month information" {
			t.Errorf("unexpected message %q", reminders[0].Message)
		}
	})

	t.Run("full coverage yields no reminders", func(t *testing.T) {
		var records []*entity.Entry
		for m := 1; m <= 12; m++ {
			records = append(records, datedEntry(2025, m, "US", "CA"))
		}

		if reminders := DetectGaps(records, report.Criteria{}, 2025, detectNow); len(reminders) != 0 {
			t.Fatalf("expected no reminders, got %+v", reminders)
		}
	})

	t.Run("no records yields no reminders", func(t *testing.T) {
		if reminders := DetectGaps(nil, report.Criteria{}, 2025, detectNow); len(reminders) != 0 {
			t.Fatalf("expected no reminders, got %+v", reminders)
		}
	})
}
