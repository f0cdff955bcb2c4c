package freshness

import "testing"

func TestScoreScenarios(t *testing.T) {
	cases := []struct {
		name      string
		status    Status
		sig       Signals
		wantScore int
		wantTier  Priority
	}{
		{
			name:      "outdated high traffic with both flags",
			status:    StatusOutdated,
			sig:       Signals{PageViews: 1200, HasDateReferences: true, HasPriceReferences: true},
			wantScore: 100,
			wantTier:  PriorityUrgent,
		},
		{
			name:      "fresh low traffic no flags",
			status:    StatusFresh,
			sig:       Signals{PageViews: 50},
			wantScore: 0,
			wantTier:  PriorityLow,
		},
		{
			name:      "stale medium traffic",
			status:    StatusStale,
			sig:       Signals{PageViews: 600},
			wantScore: 45,
			wantTier:  PriorityMedium,
		},
		{
			name:      "stale medium traffic with dates",
			status:    StatusStale,
			sig:       Signals{PageViews: 600, HasDateReferences: true},
			wantScore: 60,
			wantTier:  PriorityHigh,
		},
		{
			name:      "aging barely medium",
			status:    StatusAging,
			sig:       Signals{PageViews: 101, HasDateReferences: true},
			wantScore: 35,
			wantTier:  PriorityMedium,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tier, score := Score(tc.status, tc.sig)
			if score != tc.wantScore {
				t.Errorf("score = %d, want %d", score, tc.wantScore)
			}
			if tier != tc.wantTier {
				t.Errorf("tier = %q, want %q", tier, tc.wantTier)
			}
		})
	}
}

func TestScoreTrafficBucketsAreNotCumulative(t *testing.T) {
	// 1200 views matches every bucket but only the highest one counts.
	_, score := Score(StatusFresh, Signals{PageViews: 1200})
	if score != 30 {
		t.Errorf("score = %d, want 30", score)
	}
}

func TestScoreTierBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  Priority
	}{
		{70, PriorityUrgent},
		{69, PriorityHigh},
		{50, PriorityHigh},
		{49, PriorityMedium},
		{30, PriorityMedium},
		{29, PriorityLow},
		{0, PriorityLow},
	}
	for _, tc := range cases {
		if got := tierForScore(tc.score); got != tc.want {
			t.Errorf("tierForScore(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

// tierForScore mirrors the mapping in Score for boundary checks.
func tierForScore(score int) Priority {
	switch {
	case score >= 70:
		return PriorityUrgent
	case score >= 50:
		return PriorityHigh
	case score >= 30:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
