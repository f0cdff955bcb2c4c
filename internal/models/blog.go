package models

// ContentCategory classifies published content for freshness tracking.
// Visa rules churn fastest, general content is the most stable.
type ContentCategory string

const (
	CategoryVisa    ContentCategory = "visa"
	CategoryTravel  ContentCategory = "travel"
	CategoryGeneral ContentCategory = "general"
)

// BlogPostModel is a published, publicly routable article. Created exactly
// once per draft by the auto-publish executor, never recreated.
type BlogPostModel struct {
	Base
	Slug      string          `json:"slug"       gorm:"uniqueIndex;not null"`
	Title     string          `json:"title"      gorm:"not null"`
	Body      string          `json:"body"       gorm:"type:longtext"`
	Summary   string          `json:"summary"`
	Category  ContentCategory `json:"category"   gorm:"type:varchar(16);default:general;index"`
	CountryID *string         `json:"country_id" gorm:"index"`
	Country   *CountryModel   `json:"country,omitempty" gorm:"foreignKey:CountryID"`
	Keywords  StringSlice     `json:"keywords"   gorm:"type:json;serializer:json"`
	ReadCount int             `json:"read"       gorm:"column:read_count;default:0"`
}

func (BlogPostModel) TableName() string { return "blog_posts" }
