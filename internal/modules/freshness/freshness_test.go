package freshness

import (
	"testing"
	"time"

	"github.com/visapath/core/internal/models"
)

func TestEvaluateVisaThresholds(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		days int
		want Status
	}{
		{"well within interval", 10, StatusFresh},
		{"over half interval", 50, StatusAging},
		{"over 80 percent", 75, StatusStale},
		{"past interval", 95, StatusOutdated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fr := Evaluate(now, now.AddDate(0, 0, -tc.days), models.CategoryVisa)
			if fr.Status != tc.want {
				t.Errorf("Evaluate(%d days, visa) status = %q, want %q", tc.days, fr.Status, tc.want)
			}
			if fr.DaysSinceUpdate != tc.days {
				t.Errorf("DaysSinceUpdate = %d, want %d", fr.DaysSinceUpdate, tc.days)
			}
			if fr.RecommendedIntervalDays != IntervalVisaDays {
				t.Errorf("RecommendedIntervalDays = %d, want %d", fr.RecommendedIntervalDays, IntervalVisaDays)
			}
		})
	}
}

func TestEvaluateBoundaries(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// Exactly 45 days on a 90-day interval is no longer fresh.
	if fr := Evaluate(now, now.AddDate(0, 0, -45), models.CategoryVisa); fr.Status != StatusAging {
		t.Errorf("45/90 days = %q, want aging", fr.Status)
	}
	// Exactly the full interval is outdated, not stale.
	if fr := Evaluate(now, now.AddDate(0, 0, -90), models.CategoryVisa); fr.Status != StatusOutdated {
		t.Errorf("90/90 days = %q, want outdated", fr.Status)
	}
}

func TestEvaluateIntervalsPerCategory(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	last := now.AddDate(0, 0, -100)

	cases := []struct {
		category models.ContentCategory
		interval int
		want     Status
	}{
		{models.CategoryVisa, 90, StatusOutdated},
		{models.CategoryTravel, 180, StatusAging},
		{models.CategoryGeneral, 365, StatusFresh},
	}
	for _, tc := range cases {
		fr := Evaluate(now, last, tc.category)
		if fr.RecommendedIntervalDays != tc.interval {
			t.Errorf("%s interval = %d, want %d", tc.category, fr.RecommendedIntervalDays, tc.interval)
		}
		if fr.Status != tc.want {
			t.Errorf("%s at 100 days = %q, want %q", tc.category, fr.Status, tc.want)
		}
		wantDue := last.AddDate(0, 0, tc.interval)
		if !fr.NextDueDate.Equal(wantDue) {
			t.Errorf("%s next due = %v, want %v", tc.category, fr.NextDueDate, wantDue)
		}
	}
}

func TestEvaluateFutureTimestampClampsToZero(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	fr := Evaluate(now, now.AddDate(0, 0, 3), models.CategoryVisa)
	if fr.DaysSinceUpdate != 0 || fr.Status != StatusFresh {
		t.Errorf("future update = (%d days, %s), want (0, fresh)", fr.DaysSinceUpdate, fr.Status)
	}
}
