package planner

import (
	"context"
	"time"

	"github.com/visapath/core/internal/models"
	"go.uber.org/zap"
)

// Store is the slice of the content repository the scheduler needs.
type Store interface {
	// GetPlan returns the plan or (nil, nil) when absent.
	GetPlan(ctx context.Context, planID string) (*models.ContentPlanModel, error)
	// ListSchedulable returns the plan's approved and in-review drafts,
	// oldest first. Creation order is the publish order.
	ListSchedulable(ctx context.Context, planID string) ([]models.DraftContentModel, error)
	// SaveDraftSchedule persists a draft's schedule fields.
	SaveDraftSchedule(ctx context.Context, draft *models.DraftContentModel) error
	// SavePlanSchedule persists the plan's cadence, start date and auto flag.
	SavePlanSchedule(ctx context.Context, plan *models.ContentPlanModel) error
}

// Locker serializes schedule runs per plan. Schedule assignment reads then
// rewrites the whole ordered draft set, so two concurrent runs against the
// same plan would interleave orders.
type Locker interface {
	// Acquire returns a release func and whether the lock was obtained.
	Acquire(ctx context.Context, planID string, ttl time.Duration) (func(), bool)
}

const scheduleLockTTL = time.Minute

// Service assigns publish dates and order to a plan's drafts.
type Service struct {
	store  Store
	locker Locker
	logger *zap.Logger
}

func NewService(store Store, locker Locker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if locker == nil {
		locker = noopLocker{}
	}
	return &Service{store: store, locker: locker, logger: logger.Named("PlanScheduler")}
}

// SchedulePlan distributes every schedulable draft of the plan across the
// calendar starting at startDate: one per day or one per week, in creation
// order. In-review drafts are promoted to approved, since placing them on
// the schedule implies acceptance, and auto-publish is switched on for every
// scheduled item. The same inputs on an unmodified catalog always produce
// the same assignment.
func (s *Service) SchedulePlan(ctx context.Context, planID, startDate string, frequency models.PlanFrequency) (*ScheduleManifest, error) {
	start, err := parseStartDate(startDate)
	if err != nil {
		return nil, ErrBadStartDate
	}
	if !frequency.Valid() {
		return nil, ErrBadFrequency
	}

	release, ok := s.locker.Acquire(ctx, planID, scheduleLockTTL)
	if !ok {
		return nil, ErrScheduleInProgress
	}
	defer release()

	plan, err := s.store.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	drafts, err := s.store.ListSchedulable(ctx, planID)
	if err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, ErrNoContent
	}

	manifest := &ScheduleManifest{
		PlanID:    planID,
		StartDate: formatDate(start),
		Frequency: frequency,
	}

	endDate := start
	for i := range drafts {
		draft := &drafts[i]
		publishDate := assignedDate(start, frequency, i)

		draft.ScheduledPublishDate = &publishDate
		draft.PublishOrder = i + 1
		draft.AutoPublish = true
		if draft.Status == models.DraftReview {
			draft.Status = models.DraftApproved
		}

		if err := s.store.SaveDraftSchedule(ctx, draft); err != nil {
			s.logger.Warn("draft schedule write failed",
				zap.String("content_id", draft.ID),
				zap.Error(err))
			manifest.Failed = append(manifest.Failed, FailedEntry{
				ContentID: draft.ID,
				Reason:    err.Error(),
			})
			continue
		}

		if publishDate.After(endDate) {
			endDate = publishDate
		}
		manifest.Schedule = append(manifest.Schedule, ScheduleEntry{
			ContentID:   draft.ID,
			PublishDate: formatDate(publishDate),
			Order:       draft.PublishOrder,
		})
	}

	plan.StartPublishDate = &start
	plan.PublishFrequency = frequency
	plan.AutoSchedule = true
	if err := s.store.SavePlanSchedule(ctx, plan); err != nil {
		return nil, err
	}

	manifest.ScheduledCount = len(manifest.Schedule)
	manifest.EndDate = formatDate(endDate)

	s.logger.Info("plan scheduled",
		zap.String("plan_id", planID),
		zap.String("frequency", string(frequency)),
		zap.Int("scheduled", manifest.ScheduledCount),
		zap.Int("failed", len(manifest.Failed)))
	return manifest, nil
}

// assignedDate computes the i-th slot from the start date using UTC
// calendar arithmetic, never local time.
func assignedDate(start time.Time, frequency models.PlanFrequency, i int) time.Time {
	if frequency == models.FrequencyWeekly {
		return start.AddDate(0, 0, i*7)
	}
	return start.AddDate(0, 0, i)
}

func parseStartDate(raw string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", raw, time.UTC)
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

type noopLocker struct{}

func (noopLocker) Acquire(context.Context, string, time.Duration) (func(), bool) {
	return func() {}, true
}
