package models

// CountryModel is a destination country the site publishes content for.
// Plans and published articles hang off a country.
type CountryModel struct {
	Base
	Name      string      `json:"name"       gorm:"uniqueIndex;not null"`
	Slug      string      `json:"slug"       gorm:"uniqueIndex;not null"`
	Region    string      `json:"region"     gorm:"index"`
	Summary   string      `json:"summary"    gorm:"type:text"`
	FlagEmoji string      `json:"flag_emoji"`
	HeroImage string      `json:"hero_image"`
	VisaTypes StringSlice `json:"visa_types" gorm:"type:json;serializer:json"`
	Featured  bool        `json:"featured"   gorm:"default:false;index"`

	BlogPosts []BlogPostModel `json:"blog_posts,omitempty" gorm:"foreignKey:CountryID"`
}

func (CountryModel) TableName() string { return "countries" }
