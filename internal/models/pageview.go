package models

// PageViewModel is one recorded hit on a public page. The freshness worklist
// aggregates rows per article to derive its traffic signal; old rows are
// pruned by a cron job.
type PageViewModel struct {
	Base
	Path   string  `json:"path"    gorm:"index"`
	BlogID *string `json:"blog_id" gorm:"index"`
	IP     string  `json:"ip"`
	UA     string  `json:"ua"     gorm:"type:text"`
}

func (PageViewModel) TableName() string { return "page_views" }
