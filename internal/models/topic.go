package models

// TopicStatus is the lifecycle state of a planned topic.
type TopicStatus string

const (
	TopicPending   TopicStatus = "pending"
	TopicGenerated TopicStatus = "generated"
	TopicReview    TopicStatus = "review"
	TopicApproved  TopicStatus = "approved"
	TopicPublished TopicStatus = "published"
)

// TopicModel is one planned subject inside a content plan.
type TopicModel struct {
	Base
	PlanID  string            `json:"plan_id"          gorm:"index;not null"`
	Plan    *ContentPlanModel `json:"plan,omitempty"   gorm:"foreignKey:PlanID"`
	Title   string            `json:"title"            gorm:"not null"`
	Angle   string            `json:"angle"` // editorial angle given to the generator
	Keyword string            `json:"keyword"`
	Status  TopicStatus       `json:"status"           gorm:"type:varchar(16);default:pending;index"`

	Draft *DraftContentModel `json:"draft,omitempty" gorm:"foreignKey:TopicID"`
}

func (TopicModel) TableName() string { return "topics" }
