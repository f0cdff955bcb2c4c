package planner

import (
	"errors"

	"github.com/visapath/core/internal/models"
)

var (
	// ErrPlanNotFound means the plan id resolves to nothing.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrNoContent means the plan has no approved or in-review drafts.
	ErrNoContent = errors.New("no schedulable content in plan")
	// ErrBadStartDate means the start date did not parse as YYYY-MM-DD.
	ErrBadStartDate = errors.New("start date must be a YYYY-MM-DD calendar date")
	// ErrBadFrequency means the cadence is not daily or weekly.
	ErrBadFrequency = errors.New("frequency must be daily or weekly")
	// ErrScheduleInProgress means another schedule run holds the plan lock.
	ErrScheduleInProgress = errors.New("plan is already being scheduled")
)

// ScheduleEntry is one row of the schedule manifest.
type ScheduleEntry struct {
	ContentID   string `json:"content_id"`
	PublishDate string `json:"publish_date"`
	Order       int    `json:"order"`
}

// FailedEntry reports a draft whose schedule write failed. The batch
// continues past it; the operator sees it here.
type FailedEntry struct {
	ContentID string `json:"content_id"`
	Reason    string `json:"reason"`
}

// ScheduleManifest is the result of distributing a plan across the calendar.
type ScheduleManifest struct {
	PlanID         string               `json:"plan_id"`
	ScheduledCount int                  `json:"scheduled_count"`
	StartDate      string               `json:"start_date"`
	EndDate        string               `json:"end_date"`
	Frequency      models.PlanFrequency `json:"frequency"`
	Schedule       []ScheduleEntry      `json:"schedule"`
	Failed         []FailedEntry        `json:"failed,omitempty"`
}
