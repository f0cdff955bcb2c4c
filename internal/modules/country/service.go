package country

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/visapath/core/internal/models"
)

var ErrSlugTaken = errors.New("slug already exists")

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(featuredOnly bool) ([]models.CountryModel, error) {
	tx := s.db.Order("name ASC")
	if featuredOnly {
		tx = tx.Where("featured = ?", true)
	}
	var countries []models.CountryModel
	return countries, tx.Find(&countries).Error
}

// GetByIdentifier fetches a country by ID first, then falls back to slug.
func (s *Service) GetByIdentifier(identifier string) (*models.CountryModel, error) {
	var country models.CountryModel
	err := s.db.Where("id = ?", identifier).First(&country).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.db.Where("slug = ?", identifier).First(&country).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &country, nil
}

func (s *Service) Create(dto *CreateDTO) (*models.CountryModel, error) {
	var count int64
	s.db.Model(&models.CountryModel{}).Where("slug = ?", dto.Slug).Count(&count)
	if count > 0 {
		return nil, ErrSlugTaken
	}

	country := models.CountryModel{
		Name:      dto.Name,
		Slug:      dto.Slug,
		Region:    dto.Region,
		Summary:   dto.Summary,
		FlagEmoji: dto.FlagEmoji,
		HeroImage: dto.HeroImage,
		VisaTypes: dto.VisaTypes,
		Featured:  dto.Featured,
	}
	if err := s.db.Create(&country).Error; err != nil {
		return nil, err
	}
	route := models.RouteModel{ModelID: country.ID, Type: models.RouteCountry, Slug: country.Slug}
	if err := s.db.Create(&route).Error; err != nil {
		return nil, fmt.Errorf("create route: %w", err)
	}
	return &country, nil
}

func (s *Service) Update(id string, dto *UpdateDTO) (*models.CountryModel, error) {
	country, err := s.GetByIdentifier(id)
	if err != nil || country == nil {
		return country, err
	}

	updates := map[string]any{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Region != nil {
		updates["region"] = *dto.Region
	}
	if dto.Summary != nil {
		updates["summary"] = *dto.Summary
	}
	if dto.FlagEmoji != nil {
		updates["flag_emoji"] = *dto.FlagEmoji
	}
	if dto.HeroImage != nil {
		updates["hero_image"] = *dto.HeroImage
	}
	if dto.VisaTypes != nil {
		updates["visa_types"] = models.StringSlice(dto.VisaTypes)
	}
	if dto.Featured != nil {
		updates["featured"] = *dto.Featured
	}
	if len(updates) == 0 {
		return country, nil
	}
	if err := s.db.Model(country).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByIdentifier(country.ID)
}

func (s *Service) Delete(id string) error {
	country, err := s.GetByIdentifier(id)
	if err != nil {
		return err
	}
	if country == nil {
		return gorm.ErrRecordNotFound
	}
	if err := s.db.Where("model_id = ? AND type = ?", country.ID, models.RouteCountry).
		Delete(&models.RouteModel{}).Error; err != nil {
		return err
	}
	return s.db.Delete(country).Error
}
