package plans

type CreatePlanDTO struct {
	CountryID string `json:"country_id" binding:"required"`
	Name      string `json:"name"       binding:"required"`
	Period    string `json:"period"     binding:"required"`
}

type CreateTopicDTO struct {
	Title   string `json:"title"   binding:"required"`
	Angle   string `json:"angle"`
	Keyword string `json:"keyword"`
}

type UpdateTopicDTO struct {
	Title   *string `json:"title"`
	Angle   *string `json:"angle"`
	Keyword *string `json:"keyword"`
	Status  *string `json:"status"`
}
