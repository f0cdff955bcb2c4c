package freshness

import (
	"testing"
	"time"

	"github.com/visapath/core/internal/models"
)

func TestBuildWorklistOrdering(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// One item per tier, deliberately shuffled.
	items := []Item{
		{ID: "low", LastUpdated: now.AddDate(0, 0, -10), Category: models.CategoryVisa},
		{ID: "urgent", LastUpdated: now.AddDate(0, 0, -120), Category: models.CategoryVisa,
			Signals: Signals{PageViews: 1200, HasDateReferences: true}},
		{ID: "medium", LastUpdated: now.AddDate(0, 0, -95), Category: models.CategoryVisa},
		{ID: "high", LastUpdated: now.AddDate(0, 0, -95), Category: models.CategoryVisa,
			Signals: Signals{HasDateReferences: true}},
	}

	worklist := BuildWorklist(now, items)

	wantOrder := []string{"urgent", "high", "medium", "low"}
	if len(worklist) != len(wantOrder) {
		t.Fatalf("worklist length = %d, want %d", len(worklist), len(wantOrder))
	}
	for i, want := range wantOrder {
		if worklist[i].ContentID != want {
			t.Errorf("worklist[%d] = %q, want %q", i, worklist[i].ContentID, want)
		}
	}
}

func TestBuildWorklistTiesBrokenByAge(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	items := []Item{
		{ID: "newer", LastUpdated: now.AddDate(0, 0, -95), Category: models.CategoryVisa},
		{ID: "older", LastUpdated: now.AddDate(0, 0, -140), Category: models.CategoryVisa},
	}

	worklist := BuildWorklist(now, items)
	if worklist[0].ContentID != "older" {
		t.Errorf("worklist[0] = %q, want the more overdue item first", worklist[0].ContentID)
	}
}

func TestBuildReasonAndSuggestions(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	sched := Build(now, Item{
		ID:          "visa-guide",
		LastUpdated: now.AddDate(0, 0, -95),
		Category:    models.CategoryVisa,
		Signals:     Signals{PageViews: 1200, HasDateReferences: true, HasPriceReferences: true},
	})

	if sched.Priority != PriorityUrgent {
		t.Fatalf("priority = %q, want urgent", sched.Priority)
	}
	if sched.Reason == "" {
		t.Fatal("reason must not be empty")
	}

	want := map[string]bool{
		"update year references":       false,
		"update fee figures":           false,
		"re-verify document checklist": false,
	}
	for _, change := range sched.SuggestedChanges {
		if _, ok := want[change]; ok {
			want[change] = true
		}
	}
	for change, seen := range want {
		if !seen {
			t.Errorf("suggested changes missing %q: %v", change, sched.SuggestedChanges)
		}
	}
}

func TestSummarize(t *testing.T) {
	schedules := []UpdateSchedule{
		{Priority: PriorityUrgent},
		{Priority: PriorityHigh},
		{Priority: PriorityHigh},
		{Priority: PriorityLow},
	}
	s := Summarize(schedules)
	if s.Total != 4 || s.Urgent != 1 || s.High != 2 || s.Medium != 0 || s.Low != 1 {
		t.Errorf("summary = %+v", s)
	}
}

func TestDetectSignals(t *testing.T) {
	cases := []struct {
		text       string
		wantDates  bool
		wantPrices bool
	}{
		{"The visa fee is $185 as of 2024.", true, true},
		{"Processing usually takes three weeks.", false, false},
		{"Applications open in January each year.", true, false},
		{"Expect to pay 6000 INR at the consulate.", false, true},
	}
	for _, tc := range cases {
		gotDates, gotPrices := DetectSignals(tc.text)
		if gotDates != tc.wantDates || gotPrices != tc.wantPrices {
			t.Errorf("DetectSignals(%q) = (%v, %v), want (%v, %v)",
				tc.text, gotDates, gotPrices, tc.wantDates, tc.wantPrices)
		}
	}
}
