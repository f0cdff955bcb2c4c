package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/visapath/core/internal/models"
	redisc "github.com/visapath/core/internal/pkg/redis"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormStore is the GORM-backed content repository.
type gormStore struct {
	db *gorm.DB
}

// NewStore returns the database-backed Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) GetPlan(ctx context.Context, planID string) (*models.ContentPlanModel, error) {
	var plan models.ContentPlanModel
	err := s.db.WithContext(ctx).First(&plan, "id = ?", planID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *gormStore) ListSchedulable(ctx context.Context, planID string) ([]models.DraftContentModel, error) {
	var drafts []models.DraftContentModel
	err := s.db.WithContext(ctx).
		Joins("JOIN topics ON topics.id = draft_contents.topic_id").
		Where("topics.plan_id = ?", planID).
		Where("draft_contents.status IN ?", []models.DraftStatus{models.DraftApproved, models.DraftReview}).
		Order("draft_contents.created_at ASC").
		Find(&drafts).Error
	return drafts, err
}

func (s *gormStore) SaveDraftSchedule(ctx context.Context, draft *models.DraftContentModel) error {
	return s.db.WithContext(ctx).Model(&models.DraftContentModel{}).
		Where("id = ?", draft.ID).
		Updates(map[string]interface{}{
			"scheduled_publish_date": draft.ScheduledPublishDate,
			"publish_order":          draft.PublishOrder,
			"auto_publish":           draft.AutoPublish,
			"status":                 draft.Status,
		}).Error
}

func (s *gormStore) SavePlanSchedule(ctx context.Context, plan *models.ContentPlanModel) error {
	return s.db.WithContext(ctx).Model(&models.ContentPlanModel{}).
		Where("id = ?", plan.ID).
		Updates(map[string]interface{}{
			"start_publish_date": plan.StartPublishDate,
			"publish_frequency":  plan.PublishFrequency,
			"auto_schedule":      plan.AutoSchedule,
		}).Error
}

// redisLocker is the Redis-backed single-flight lock keyed by plan id.
type redisLocker struct {
	rc *redisc.Client
}

// NewLocker returns the Redis-backed Locker.
func NewLocker(rc *redisc.Client) Locker {
	return &redisLocker{rc: rc}
}

func (l *redisLocker) Acquire(ctx context.Context, planID string, ttl time.Duration) (func(), bool) {
	key := fmt.Sprintf("vp:plan_schedule_lock:%s", planID)
	token := uuid.New().String()

	ok, err := l.rc.SetNX(ctx, key, token, ttl)
	if err != nil || !ok {
		return func() {}, false
	}

	release := func() {
		// Only drop our own lock; an expired lock may belong to a newer run.
		val, err := l.rc.Get(context.Background(), key)
		if err == nil && val == token {
			_ = l.rc.Del(context.Background(), key)
		}
	}
	return release, true
}
