package freshness

// Priority is the actionable refresh tier for a content item.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// rank orders priorities for sorting, urgent first.
func (p Priority) rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// Signals are the traffic and content-risk inputs to the scorer.
type Signals struct {
	PageViews          int  `json:"page_views"`
	HasDateReferences  bool `json:"has_date_references"`
	HasPriceReferences bool `json:"has_price_references"`
}

// Score combines the aging tier with traffic and content-risk signals into
// a priority tier plus the raw additive score for explainability. This is a
// fixed heuristic, not a learned model.
func Score(status Status, sig Signals) (Priority, int) {
	score := 0

	switch status {
	case StatusOutdated:
		score += 40
	case StatusStale:
		score += 25
	case StatusAging:
		score += 10
	}

	// Traffic is a bucket, not cumulative: only the highest match counts.
	switch {
	case sig.PageViews > 1000:
		score += 30
	case sig.PageViews > 500:
		score += 20
	case sig.PageViews > 100:
		score += 10
	}

	if sig.HasDateReferences {
		score += 15
	}
	if sig.HasPriceReferences {
		score += 15
	}

	switch {
	case score >= 70:
		return PriorityUrgent, score
	case score >= 50:
		return PriorityHigh, score
	case score >= 30:
		return PriorityMedium, score
	default:
		return PriorityLow, score
	}
}
