package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	appcfg "github.com/visapath/core/internal/config"
	"github.com/visapath/core/internal/models"
	"github.com/visapath/core/internal/pkg/taskqueue"
)

const taskTypeDraft = "generate_draft"

var (
	ErrProviderDisabled = errors.New("AI provider is not configured")
	ErrTopicNotFound    = errors.New("topic not found")
)

// Service generates article drafts for planned topics through the
// configured AI provider. Generation runs as a background task; callers
// poll the task for the result.
type Service struct {
	db     *gorm.DB
	cfg    *appcfg.AIConfig
	tasks  *taskqueue.Service
	logger *zap.Logger
}

func NewService(db *gorm.DB, cfg *appcfg.AIConfig, tasks *taskqueue.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, cfg: cfg, tasks: tasks, logger: logger.Named("AI")}
}

type draftPayload struct {
	TopicID string `json:"topic_id"`
}

type draftResult struct {
	DraftID string `json:"draft_id"`
}

// EnqueueDraftGeneration schedules draft generation for the topic. A second
// call while the first is still pending returns the existing task.
func (s *Service) EnqueueDraftGeneration(ctx context.Context, topicID string) (*taskqueue.Task, error) {
	if !s.cfg.Provider.Enabled {
		return nil, ErrProviderDisabled
	}

	var topic models.TopicModel
	if err := s.db.Preload("Plan").Preload("Plan.Country").
		Where("id = ?", topicID).First(&topic).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}

	task, err := s.tasks.Enqueue(ctx, taskTypeDraft, draftPayload{TopicID: topicID}, "ai-draft:"+topicID)
	if err != nil {
		return nil, err
	}
	if task.Status == taskqueue.TaskPending {
		go s.runDraftTask(task.ID, &topic)
	}
	return task, nil
}

func (s *Service) GetTask(ctx context.Context, id string) (*taskqueue.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// runDraftTask executes one generation task to completion. It owns its own
// context; the enqueueing request has already returned.
func (s *Service) runDraftTask(taskID string, topic *models.TopicModel) {
	ctx := context.Background()
	if err := s.tasks.UpdateStatus(ctx, taskID, taskqueue.TaskRunning, nil, ""); err != nil {
		s.logger.Warn("mark task running failed", zap.String("task_id", taskID), zap.Error(err))
	}

	draft, err := s.generateDraft(ctx, topic)
	if err != nil {
		s.logger.Warn("draft generation failed",
			zap.String("task_id", taskID),
			zap.String("topic_id", topic.ID),
			zap.Error(err))
		if uerr := s.tasks.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, nil, err.Error()); uerr != nil {
			s.logger.Warn("mark task failed failed", zap.String("task_id", taskID), zap.Error(uerr))
		}
		return
	}

	if err := s.tasks.UpdateStatus(ctx, taskID, taskqueue.TaskCompleted, draftResult{DraftID: draft.ID}, ""); err != nil {
		s.logger.Warn("mark task completed failed", zap.String("task_id", taskID), zap.Error(err))
	}
	s.logger.Info("draft generated",
		zap.String("topic_id", topic.ID),
		zap.String("draft_id", draft.ID))
}

func (s *Service) generateDraft(ctx context.Context, topic *models.TopicModel) (*models.DraftContentModel, error) {
	countryName := ""
	if topic.Plan != nil && topic.Plan.Country != nil {
		countryName = topic.Plan.Country.Name
	}

	body, err := generateText(ctx, &s.cfg.Provider, draftSystemPrompt,
		buildDraftPrompt(topic.Title, topic.Angle, topic.Keyword, countryName))
	if err != nil {
		return nil, err
	}

	var keywords models.StringSlice
	if kw := strings.TrimSpace(topic.Keyword); kw != "" {
		keywords = models.StringSlice{kw}
	}

	var draft models.DraftContentModel
	err = s.db.Transaction(func(tx *gorm.DB) error {
		existing := tx.Where("topic_id = ?", topic.ID).First(&draft).Error
		switch {
		case existing == nil:
			// Regeneration replaces the body but never touches a draft
			// that already went live.
			if draft.Status == models.DraftPublished {
				return fmt.Errorf("draft already published")
			}
			return tx.Model(&draft).Updates(map[string]any{
				"title":  topic.Title,
				"body":   body,
				"status": models.DraftReview,
			}).Error
		case errors.Is(existing, gorm.ErrRecordNotFound):
			draft = models.DraftContentModel{
				TopicID:  topic.ID,
				Title:    topic.Title,
				Body:     body,
				Keywords: keywords,
				Status:   models.DraftReview,
			}
			if err := tx.Create(&draft).Error; err != nil {
				return err
			}
			return tx.Model(&models.TopicModel{}).
				Where("id = ? AND status = ?", topic.ID, models.TopicPending).
				Update("status", models.TopicGenerated).Error
		default:
			return existing
		}
	})
	if err != nil {
		return nil, err
	}
	return &draft, nil
}
