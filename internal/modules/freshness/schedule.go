package freshness

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/visapath/core/internal/models"
)

// Item is one catalog entry fed into the worklist builder.
type Item struct {
	ID          string
	LastUpdated time.Time
	Category    models.ContentCategory
	Signals     Signals
}

// UpdateSchedule is the derived refresh recommendation for one item. It is
// recomputed on demand and never persisted.
type UpdateSchedule struct {
	ContentID        string    `json:"content_id"`
	LastUpdated      time.Time `json:"last_updated"`
	NextDueDate      time.Time `json:"next_due_date"`
	Status           Status    `json:"status"`
	DaysSinceUpdate  int       `json:"days_since_update"`
	Priority         Priority  `json:"priority"`
	Score            int       `json:"score"`
	Reason           string    `json:"reason"`
	SuggestedChanges []string  `json:"suggested_changes"`
}

// Summary counts worklist entries per priority tier.
type Summary struct {
	Total  int `json:"total"`
	Urgent int `json:"urgent"`
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// BuildWorklist evaluates and scores every item and returns the worklist
// sorted most-urgent first, ties broken by the most overdue item. Pure over
// its inputs; safe to call concurrently.
func BuildWorklist(now time.Time, items []Item) []UpdateSchedule {
	schedules := make([]UpdateSchedule, 0, len(items))
	for _, item := range items {
		schedules = append(schedules, Build(now, item))
	}

	sort.SliceStable(schedules, func(i, j int) bool {
		a, b := schedules[i], schedules[j]
		if a.Priority != b.Priority {
			return a.Priority.rank() < b.Priority.rank()
		}
		return a.DaysSinceUpdate > b.DaysSinceUpdate
	})
	return schedules
}

// Build computes the schedule entry for a single item.
func Build(now time.Time, item Item) UpdateSchedule {
	fr := Evaluate(now, item.LastUpdated, item.Category)
	priority, score := Score(fr.Status, item.Signals)

	return UpdateSchedule{
		ContentID:        item.ID,
		LastUpdated:      item.LastUpdated,
		NextDueDate:      fr.NextDueDate,
		Status:           fr.Status,
		DaysSinceUpdate:  fr.DaysSinceUpdate,
		Priority:         priority,
		Score:            score,
		Reason:           buildReason(fr, item.Signals),
		SuggestedChanges: suggestChanges(item.Category, item.Signals),
	}
}

// Summarize tallies a worklist per priority tier.
func Summarize(schedules []UpdateSchedule) Summary {
	s := Summary{Total: len(schedules)}
	for _, sched := range schedules {
		switch sched.Priority {
		case PriorityUrgent:
			s.Urgent++
		case PriorityHigh:
			s.High++
		case PriorityMedium:
			s.Medium++
		default:
			s.Low++
		}
	}
	return s
}

func buildReason(fr Freshness, sig Signals) string {
	parts := []string{
		fmt.Sprintf("content is %d days old (%s, %d-day interval)", fr.DaysSinceUpdate, fr.Status, fr.RecommendedIntervalDays),
	}
	switch {
	case sig.PageViews > 1000:
		parts = append(parts, fmt.Sprintf("high traffic (%d views)", sig.PageViews))
	case sig.PageViews > 500:
		parts = append(parts, fmt.Sprintf("medium traffic (%d views)", sig.PageViews))
	case sig.PageViews > 100:
		parts = append(parts, fmt.Sprintf("some traffic (%d views)", sig.PageViews))
	}
	if sig.HasDateReferences {
		parts = append(parts, "contains date references")
	}
	if sig.HasPriceReferences {
		parts = append(parts, "contains price references")
	}
	return strings.Join(parts, "; ")
}

func suggestChanges(category models.ContentCategory, sig Signals) []string {
	var changes []string
	if sig.HasDateReferences {
		changes = append(changes, "update year references")
	}
	if sig.HasPriceReferences {
		changes = append(changes, "update fee figures")
	}
	if category == models.CategoryVisa {
		changes = append(changes, "re-verify document checklist")
	}
	if len(changes) == 0 {
		changes = append(changes, "review content for accuracy")
	}
	return changes
}

var (
	dateReferencePattern  = regexp.MustCompile(`\b(19|20)\d{2}\b|\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`)
	priceReferencePattern = regexp.MustCompile(`[$€£¥₹]\s?\d|\b\d+([.,]\d+)?\s?(usd|eur|gbp|inr|aud|cad)\b|\b(fee|fees|cost|price)s?\b`)
)

// DetectSignals scans article text for date and price references.
func DetectSignals(text string) (hasDates, hasPrices bool) {
	lower := strings.ToLower(text)
	return dateReferencePattern.MatchString(lower), priceReferencePattern.MatchString(lower)
}
