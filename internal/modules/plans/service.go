package plans

import (
	"errors"

	"gorm.io/gorm"

	"github.com/visapath/core/internal/models"
	"github.com/visapath/core/internal/pkg/pagination"
	"github.com/visapath/core/internal/pkg/response"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(pq pagination.Query) ([]models.ContentPlanModel, response.Pagination, error) {
	tx := s.db.Model(&models.ContentPlanModel{}).Preload("Country").Order("created_at DESC")
	var list []models.ContentPlanModel
	page, err := pagination.Paginate(tx, pq, &list)
	return list, page, err
}

func (s *Service) Get(id string) (*models.ContentPlanModel, error) {
	var plan models.ContentPlanModel
	err := s.db.Preload("Country").Where("id = ?", id).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *Service) Create(dto *CreatePlanDTO) (*models.ContentPlanModel, error) {
	plan := models.ContentPlanModel{
		CountryID:        dto.CountryID,
		Name:             dto.Name,
		Period:           dto.Period,
		PublishFrequency: models.FrequencyDaily,
	}
	return &plan, s.db.Create(&plan).Error
}

func (s *Service) Delete(id string) error {
	res := s.db.Where("id = ?", id).Delete(&models.ContentPlanModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListTopics returns the plan's topics with their drafts, in creation order.
// The order mirrors the scheduling order.
func (s *Service) ListTopics(planID string) ([]models.TopicModel, error) {
	var topics []models.TopicModel
	err := s.db.Preload("Draft").
		Where("plan_id = ?", planID).
		Order("created_at ASC").
		Find(&topics).Error
	return topics, err
}

func (s *Service) CreateTopic(planID string, dto *CreateTopicDTO) (*models.TopicModel, error) {
	plan, err := s.Get(planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, gorm.ErrRecordNotFound
	}

	topic := models.TopicModel{
		PlanID:  planID,
		Title:   dto.Title,
		Angle:   dto.Angle,
		Keyword: dto.Keyword,
		Status:  models.TopicPending,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&topic).Error; err != nil {
			return err
		}
		return tx.Model(plan).
			UpdateColumn("total_topics", gorm.Expr("total_topics + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (s *Service) UpdateTopic(id string, dto *UpdateTopicDTO) (*models.TopicModel, error) {
	var topic models.TopicModel
	if err := s.db.Where("id = ?", id).First(&topic).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	updates := map[string]any{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Angle != nil {
		updates["angle"] = *dto.Angle
	}
	if dto.Keyword != nil {
		updates["keyword"] = *dto.Keyword
	}
	if dto.Status != nil {
		status := models.TopicStatus(*dto.Status)
		if !validTopicStatus(status) {
			return nil, ErrBadTopicStatus
		}
		updates["status"] = status
	}
	if len(updates) > 0 {
		if err := s.db.Model(&topic).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &topic, nil
}

func (s *Service) DeleteTopic(id string) error {
	var topic models.TopicModel
	if err := s.db.Where("id = ?", id).First(&topic).Error; err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("topic_id = ?", id).Delete(&models.DraftContentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&topic).Error; err != nil {
			return err
		}
		return tx.Model(&models.ContentPlanModel{}).
			Where("id = ? AND total_topics > 0", topic.PlanID).
			UpdateColumn("total_topics", gorm.Expr("total_topics - 1")).Error
	})
}

var ErrBadTopicStatus = errors.New("unknown topic status")

func validTopicStatus(s models.TopicStatus) bool {
	switch s {
	case models.TopicPending, models.TopicGenerated, models.TopicReview,
		models.TopicApproved, models.TopicPublished:
		return true
	}
	return false
}
