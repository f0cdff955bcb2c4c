package articles

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

// ListQuery narrows the public article listing.
type ListQuery struct {
	Category string
	Country  string
}

func (s *Service) List(q ListQuery, pq pagination.Query) ([]models.BlogPostModel, response.Pagination, error) {
	tx := s.db.Model(&models.BlogPostModel{}).Preload("Country").Order("created_at DESC")
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Country != "" {
		tx = tx.Joins("JOIN countries ON countries.id = blog_posts.country_id").
			Where("countries.slug = ?", q.Country)
	}

	var posts []models.BlogPostModel
	page, err := pagination.Paginate(tx, pq, &posts)
	return posts, page, err
}

func (s *Service) GetBySlug(slug string) (*models.BlogPostModel, error) {
	var post models.BlogPostModel
	err := s.db.Preload("Country").Where("slug = ?", slug).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// RecordView logs one page view and bumps the denormalized read counter.
// Best effort, callers fire it in the background.
func (s *Service) RecordView(post *models.BlogPostModel, path, ip, ua string) error {
	view := models.PageViewModel{Path: path, BlogID: &post.ID, IP: ip, UA: ua}
	if err := s.db.Create(&view).Error; err != nil {
		return err
	}
	return s.db.Model(post).UpdateColumn("read_count", gorm.Expr("read_count + 1")).Error
}

// PruneViews drops raw page view rows older than the retention window. The
// denormalized counters survive pruning.
func (s *Service) PruneViews(retentionDays int) (int64, error) {
	res := s.db.Where("created_at < DATE_SUB(NOW(), INTERVAL ? DAY)", retentionDays).
		Delete(&models.PageViewModel{})
	return res.RowsAffected, res.Error
}
