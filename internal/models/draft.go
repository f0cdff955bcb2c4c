package models

import "time"

// DraftStatus is the lifecycle state of draft content.
type DraftStatus string

const (
	DraftPending   DraftStatus = "pending"
	DraftReview    DraftStatus = "review"
	DraftApproved  DraftStatus = "approved"
	DraftPublished DraftStatus = "published"
)

// DraftContentModel is the writable article tied 1:1 to a topic, prior to
// publication. BlogID is set exactly once, at publish time; a non-null
// BlogID means the draft has already been promoted.
type DraftContentModel struct {
	Base
	TopicID              string      `json:"topic_id"               gorm:"uniqueIndex;not null"`
	Topic                *TopicModel `json:"topic,omitempty"        gorm:"foreignKey:TopicID"`
	Title                string      `json:"title"`
	Body                 string      `json:"body"                   gorm:"type:longtext"`
	Keywords             StringSlice `json:"keywords"               gorm:"type:json;serializer:json"`
	Status               DraftStatus `json:"status"                 gorm:"type:varchar(16);default:pending;index"`
	ScheduledPublishDate *time.Time  `json:"scheduled_publish_date" gorm:"type:date;index"`
	AutoPublish          bool        `json:"auto_publish"           gorm:"default:false;index"`
	PublishOrder         int         `json:"publish_order"          gorm:"default:0"`
	BlogID               *string     `json:"blog_id"                gorm:"index"`
	PublishedAt          *time.Time  `json:"published_at"`
}

func (DraftContentModel) TableName() string { return "draft_contents" }
