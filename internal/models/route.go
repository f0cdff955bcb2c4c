package models

// RouteType identifies what kind of record a public slug resolves to.
type RouteType string

const (
	RouteBlogPost RouteType = "blog_post"
	RouteCountry  RouteType = "country"
)

// RouteModel maps a public slug onto a routable record. Created atomically
// alongside the record it points at.
type RouteModel struct {
	Base
	ModelID string    `json:"model_id" gorm:"index;not null"`
	Type    RouteType `json:"type"     gorm:"type:varchar(16);index;not null"`
	Slug    string    `json:"slug"     gorm:"uniqueIndex;not null"`
}

func (RouteModel) TableName() string { return "routes" }
