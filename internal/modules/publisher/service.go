package publisher

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/visapath/core/internal/models"
	"github.com/visapath/core/internal/pkg/clock"
)

// Store is the persistence surface the executor needs. ListDue must return
// drafts with auto_publish set, status approved, a scheduled date on or
// before today and no blog_id yet, with Topic and Topic.Plan loaded.
type Store interface {
	ListDue(ctx context.Context, today time.Time) ([]models.DraftContentModel, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	CreateArticle(ctx context.Context, article *models.BlogPostModel) error
	DeleteArticle(ctx context.Context, blogID string) error
	CreateRoute(ctx context.Context, route *models.RouteModel) error
	LinkCountry(ctx context.Context, blogID, countryID string) error
	// MarkDraftPublished sets status/blog_id/published_at only when blog_id
	// is still NULL and reports whether the row was won.
	MarkDraftPublished(ctx context.Context, draftID, blogID string, at time.Time) (bool, error)
	MarkTopicPublished(ctx context.Context, topicID string) error
}

// CacheInvalidator purges cached representations of the given public paths.
type CacheInvalidator interface {
	PurgePaths(ctx context.Context, paths ...string) error
}

type noopInvalidator struct{}

func (noopInvalidator) PurgePaths(context.Context, ...string) error { return nil }

// Service promotes due drafts into published articles once per trigger
// cycle. Safe to invoke repeatedly: the blog_id guard makes a rerun on the
// same day a no-op.
type Service struct {
	store  Store
	cache  CacheInvalidator
	clk    clock.Clock
	logger *zap.Logger
}

func NewService(store Store, cache CacheInvalidator, clk clock.Clock, logger *zap.Logger) *Service {
	if cache == nil {
		cache = noopInvalidator{}
	}
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, cache: cache, clk: clk, logger: logger.Named("AutoPublish")}
}

// RunDailyPublish promotes every draft due on or before today. Drafts whose
// trigger day was missed are published retroactively rather than skipped.
// Per-item failures are isolated into the report; they never abort the batch.
func (s *Service) RunDailyPublish(ctx context.Context) (*PublishReport, error) {
	today := clock.Today(s.clk)
	due, err := s.store.ListDue(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("list due drafts: %w", err)
	}

	report := &PublishReport{
		ScheduledCount: len(due),
		Published:      []PublishedEntry{},
		Failed:         []FailedEntry{},
	}
	for i := range due {
		entry, warnings, err := s.publishOne(ctx, &due[i])
		report.Warnings = append(report.Warnings, warnings...)
		if err != nil {
			s.logger.Warn("draft publish failed",
				zap.String("draft_id", due[i].ID),
				zap.Error(err))
			report.Failed = append(report.Failed, FailedEntry{ContentID: due[i].ID, Reason: err.Error()})
			continue
		}
		report.Published = append(report.Published, *entry)
	}
	report.PublishedCount = len(report.Published)
	report.FailedCount = len(report.Failed)

	s.logger.Info("auto-publish run finished",
		zap.String("date", today.Format("2006-01-02")),
		zap.Int("scheduled", report.ScheduledCount),
		zap.Int("published", report.PublishedCount),
		zap.Int("failed", report.FailedCount))
	return report, nil
}

func (s *Service) publishOne(ctx context.Context, draft *models.DraftContentModel) (*PublishedEntry, []Warning, error) {
	article, err := s.buildArticle(ctx, draft)
	if err != nil {
		return nil, nil, err
	}
	if err := s.store.CreateArticle(ctx, article); err != nil {
		return nil, nil, fmt.Errorf("create article: %w", err)
	}

	var warnings []Warning
	warn := func(stage string, err error) {
		s.logger.Warn("secondary publish step failed",
			zap.String("draft_id", draft.ID),
			zap.String("stage", stage),
			zap.Error(err))
		warnings = append(warnings, Warning{ContentID: draft.ID, Stage: stage, Reason: err.Error()})
	}

	route := &models.RouteModel{ModelID: article.ID, Type: models.RouteBlogPost, Slug: article.Slug}
	if err := s.store.CreateRoute(ctx, route); err != nil {
		warn("route", err)
	}
	if countryID := draftCountryID(draft); countryID != "" {
		if err := s.store.LinkCountry(ctx, article.ID, countryID); err != nil {
			warn("country", err)
		}
	}

	won, err := s.store.MarkDraftPublished(ctx, draft.ID, article.ID, s.clk.Now())
	if err != nil {
		return nil, warnings, fmt.Errorf("mark draft published: %w", err)
	}
	if !won {
		// A concurrent run already published this draft. Drop the
		// duplicate article so the catalog keeps exactly one.
		if derr := s.store.DeleteArticle(ctx, article.ID); derr != nil {
			warn("cleanup", derr)
		}
		return nil, warnings, fmt.Errorf("draft already published by a concurrent run")
	}

	if err := s.store.MarkTopicPublished(ctx, draft.TopicID); err != nil {
		warn("topic", err)
	}
	if err := s.cache.PurgePaths(ctx, "/api/v1/articles", "/api/v1/articles/"+article.Slug); err != nil {
		warn("cache", err)
	}

	return &PublishedEntry{
		ContentID: draft.ID,
		BlogID:    article.ID,
		Slug:      article.Slug,
		Title:     article.Title,
	}, warnings, nil
}

// buildArticle shapes the routable article out of the draft. CountryID is
// attached in a later step so a country-link failure stays non-fatal.
func (s *Service) buildArticle(ctx context.Context, draft *models.DraftContentModel) (*models.BlogPostModel, error) {
	title := draft.Title
	if title == "" && draft.Topic != nil {
		title = draft.Topic.Title
	}
	if title == "" {
		return nil, fmt.Errorf("draft has no title")
	}

	slug, err := s.uniqueSlug(ctx, Slugify(title), draft.ID)
	if err != nil {
		return nil, err
	}
	return &models.BlogPostModel{
		Slug:     slug,
		Title:    title,
		Body:     draft.Body,
		Keywords: draft.Keywords,
		Category: Categorize(title, draft.Keywords),
	}, nil
}

func (s *Service) uniqueSlug(ctx context.Context, base, draftID string) (string, error) {
	exists, err := s.store.SlugExists(ctx, base)
	if err != nil {
		return "", fmt.Errorf("check slug: %w", err)
	}
	if !exists {
		return base, nil
	}
	suffix := draftID
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return base + "-" + suffix, nil
}

func draftCountryID(draft *models.DraftContentModel) string {
	if draft.Topic != nil && draft.Topic.Plan != nil {
		return draft.Topic.Plan.CountryID
	}
	return ""
}
