package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/visapath/core/internal/middleware"
	"github.com/visapath/core/internal/models"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore returns the production Store backed by the primary database.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (g *gormStore) ListDue(ctx context.Context, today time.Time) ([]models.DraftContentModel, error) {
	var drafts []models.DraftContentModel
	err := g.db.WithContext(ctx).
		Preload("Topic").Preload("Topic.Plan").
		Where("auto_publish = ? AND status = ? AND blog_id IS NULL", true, models.DraftApproved).
		Where("scheduled_publish_date IS NOT NULL AND scheduled_publish_date <= ?", today.Format("2006-01-02")).
		Order("scheduled_publish_date ASC, publish_order ASC").
		Find(&drafts).Error
	if err != nil {
		return nil, err
	}
	return drafts, nil
}

func (g *gormStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.BlogPostModel{}).
		Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (g *gormStore) CreateArticle(ctx context.Context, article *models.BlogPostModel) error {
	return g.db.WithContext(ctx).Create(article).Error
}

func (g *gormStore) DeleteArticle(ctx context.Context, blogID string) error {
	if err := g.db.WithContext(ctx).
		Where("model_id = ? AND type = ?", blogID, models.RouteBlogPost).
		Delete(&models.RouteModel{}).Error; err != nil {
		return err
	}
	return g.db.WithContext(ctx).
		Where("id = ?", blogID).
		Delete(&models.BlogPostModel{}).Error
}

func (g *gormStore) CreateRoute(ctx context.Context, route *models.RouteModel) error {
	return g.db.WithContext(ctx).Create(route).Error
}

func (g *gormStore) LinkCountry(ctx context.Context, blogID, countryID string) error {
	return g.db.WithContext(ctx).Model(&models.BlogPostModel{}).
		Where("id = ?", blogID).
		Update("country_id", countryID).Error
}

func (g *gormStore) MarkDraftPublished(ctx context.Context, draftID, blogID string, at time.Time) (bool, error) {
	res := g.db.WithContext(ctx).Model(&models.DraftContentModel{}).
		Where("id = ? AND blog_id IS NULL", draftID).
		Updates(map[string]any{
			"status":       models.DraftPublished,
			"blog_id":      blogID,
			"published_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (g *gormStore) MarkTopicPublished(ctx context.Context, topicID string) error {
	return g.db.WithContext(ctx).Model(&models.TopicModel{}).
		Where("id = ?", topicID).
		Update("status", models.TopicPublished).Error
}

type redisInvalidator struct {
	rdb *redis.Client
}

// NewRedisInvalidator purges the HTTP response cache entries under the
// given public paths after a publish.
func NewRedisInvalidator(rdb *redis.Client) CacheInvalidator {
	return &redisInvalidator{rdb: rdb}
}

func (r *redisInvalidator) PurgePaths(ctx context.Context, paths ...string) error {
	if _, err := middleware.PurgeHTTPCachePaths(ctx, r.rdb, paths...); err != nil {
		return fmt.Errorf("purge http cache: %w", err)
	}
	return nil
}
