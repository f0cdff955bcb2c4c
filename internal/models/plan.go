package models

import "time"

// PlanFrequency is the publishing cadence of a content plan.
type PlanFrequency string

const (
	FrequencyDaily  PlanFrequency = "daily"
	FrequencyWeekly PlanFrequency = "weekly"
)

// Valid reports whether f is a known cadence.
func (f PlanFrequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

// ContentPlanModel is a batch of topics targeting one country and one
// calendar period. Created by the planning step; the scheduler owns
// cadence/start date, topic generation owns the counter.
type ContentPlanModel struct {
	Base
	CountryID        string        `json:"country_id"         gorm:"index;not null"`
	Country          *CountryModel `json:"country,omitempty"  gorm:"foreignKey:CountryID"`
	Name             string        `json:"name"`
	Period           string        `json:"period"` // e.g. "2025-03"
	StartPublishDate *time.Time    `json:"start_publish_date"`
	PublishFrequency PlanFrequency `json:"publish_frequency"  gorm:"type:varchar(16);default:daily"`
	AutoSchedule     bool          `json:"auto_schedule"      gorm:"default:false"`
	TotalTopics      int           `json:"total_topics"       gorm:"default:0"`

	Topics []TopicModel `json:"topics,omitempty" gorm:"foreignKey:PlanID"`
}

func (ContentPlanModel) TableName() string { return "content_plans" }
