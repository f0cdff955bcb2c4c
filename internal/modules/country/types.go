package country

type CreateDTO struct {
	Name      string   `json:"name"       binding:"required"`
	Slug      string   `json:"slug"       binding:"required"`
	Region    string   `json:"region"`
	Summary   string   `json:"summary"`
	FlagEmoji string   `json:"flag_emoji"`
	HeroImage string   `json:"hero_image"`
	VisaTypes []string `json:"visa_types"`
	Featured  bool     `json:"featured"`
}

type UpdateDTO struct {
	Name      *string  `json:"name"`
	Region    *string  `json:"region"`
	Summary   *string  `json:"summary"`
	FlagEmoji *string  `json:"flag_emoji"`
	HeroImage *string  `json:"hero_image"`
	VisaTypes []string `json:"visa_types"`
	Featured  *bool    `json:"featured"`
}
