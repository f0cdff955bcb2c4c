package freshness

import (
	"time"

	"github.com/visapath/core/internal/models"
)

// Status is the aging tier of a piece of published content.
type Status string

const (
	StatusFresh    Status = "fresh"
	StatusAging    Status = "aging"
	StatusStale    Status = "stale"
	StatusOutdated Status = "outdated"
)

// Recommended refresh interval per category, in days. Visa rules churn
// fastest; general content is the most stable.
const (
	IntervalVisaDays    = 90
	IntervalTravelDays  = 180
	IntervalGeneralDays = 365
)

// RecommendedIntervalDays returns the refresh interval for a category.
// Unknown categories fall back to the general interval.
func RecommendedIntervalDays(category models.ContentCategory) int {
	switch category {
	case models.CategoryVisa:
		return IntervalVisaDays
	case models.CategoryTravel:
		return IntervalTravelDays
	default:
		return IntervalGeneralDays
	}
}

// Freshness is the result of evaluating one content item.
type Freshness struct {
	Status                  Status    `json:"status"`
	DaysSinceUpdate         int       `json:"days_since_update"`
	RecommendedIntervalDays int       `json:"recommended_interval_days"`
	NextDueDate             time.Time `json:"next_due_date"`
}

// Evaluate classifies content age against its category's refresh interval.
// Tier thresholds are fractions of the interval: <0.5 fresh, <0.8 aging,
// <1.0 stale, otherwise outdated.
func Evaluate(now, lastUpdated time.Time, category models.ContentCategory) Freshness {
	interval := RecommendedIntervalDays(category)
	days := int(now.Sub(lastUpdated).Hours() / 24)
	if days < 0 {
		days = 0
	}

	var status Status
	switch {
	case float64(days) < 0.5*float64(interval):
		status = StatusFresh
	case float64(days) < 0.8*float64(interval):
		status = StatusAging
	case float64(days) < float64(interval):
		status = StatusStale
	default:
		status = StatusOutdated
	}

	return Freshness{
		Status:                  status,
		DaysSinceUpdate:         days,
		RecommendedIntervalDays: interval,
		NextDueDate:             lastUpdated.AddDate(0, 0, interval),
	}
}
