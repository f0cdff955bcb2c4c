package planner

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/visapath/core/internal/models"
)

// fakeStore is an in-memory Store for scheduler tests.
type fakeStore struct {
	plan        *models.ContentPlanModel
	drafts      []models.DraftContentModel
	failDraftID string

	savedDrafts []models.DraftContentModel
	savedPlan   *models.ContentPlanModel
}

func (f *fakeStore) GetPlan(ctx context.Context, planID string) (*models.ContentPlanModel, error) {
	if f.plan == nil || f.plan.ID != planID {
		return nil, nil
	}
	p := *f.plan
	return &p, nil
}

func (f *fakeStore) ListSchedulable(ctx context.Context, planID string) ([]models.DraftContentModel, error) {
	out := make([]models.DraftContentModel, len(f.drafts))
	copy(out, f.drafts)
	return out, nil
}

func (f *fakeStore) SaveDraftSchedule(ctx context.Context, draft *models.DraftContentModel) error {
	if draft.ID == f.failDraftID {
		return errors.New("write failed")
	}
	f.savedDrafts = append(f.savedDrafts, *draft)
	return nil
}

func (f *fakeStore) SavePlanSchedule(ctx context.Context, plan *models.ContentPlanModel) error {
	p := *plan
	f.savedPlan = &p
	return nil
}

func newTestStore(draftCount int) *fakeStore {
	store := &fakeStore{
		plan: &models.ContentPlanModel{Base: models.Base{ID: "plan-1"}},
	}
	base := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < draftCount; i++ {
		store.drafts = append(store.drafts, models.DraftContentModel{
			Base: models.Base{
				ID:        fmt.Sprintf("draft-%d", i+1),
				CreatedAt: base.Add(time.Duration(i) * time.Hour),
			},
			Status: models.DraftApproved,
		})
	}
	return store
}

func TestSchedulePlanDailyDistribution(t *testing.T) {
	store := newTestStore(5)
	svc := NewService(store, nil, nil)

	manifest, err := svc.SchedulePlan(context.Background(), "plan-1", "2025-03-01", models.FrequencyDaily)
	if err != nil {
		t.Fatalf("SchedulePlan: %v", err)
	}

	wantDates := []string{"2025-03-01", "2025-03-02", "2025-03-03", "2025-03-04", "2025-03-05"}
	if manifest.ScheduledCount != 5 {
		t.Fatalf("scheduled_count = %d, want 5", manifest.ScheduledCount)
	}
	for i, entry := range manifest.Schedule {
		if entry.PublishDate != wantDates[i] {
			t.Errorf("schedule[%d].publish_date = %s, want %s", i, entry.PublishDate, wantDates[i])
		}
		if entry.Order != i+1 {
			t.Errorf("schedule[%d].order = %d, want %d", i, entry.Order, i+1)
		}
	}
	if manifest.EndDate != "2025-03-05" {
		t.Errorf("end_date = %s, want 2025-03-05", manifest.EndDate)
	}
}

func TestSchedulePlanWeeklyDistribution(t *testing.T) {
	store := newTestStore(5)
	svc := NewService(store, nil, nil)

	manifest, err := svc.SchedulePlan(context.Background(), "plan-1", "2025-03-01", models.FrequencyWeekly)
	if err != nil {
		t.Fatalf("SchedulePlan: %v", err)
	}

	wantDates := []string{"2025-03-01", "2025-03-08", "2025-03-15", "2025-03-22", "2025-03-29"}
	for i, entry := range manifest.Schedule {
		if entry.PublishDate != wantDates[i] {
			t.Errorf("schedule[%d].publish_date = %s, want %s", i, entry.PublishDate, wantDates[i])
		}
	}
	if manifest.EndDate != "2025-03-29" {
		t.Errorf("end_date = %s, want 2025-03-29", manifest.EndDate)
	}
}

func TestSchedulePlanIsDeterministic(t *testing.T) {
	store := newTestStore(4)
	svc := NewService(store, nil, nil)

	first, err := svc.SchedulePlan(context.Background(), "plan-1", "2025-03-01", models.FrequencyDaily)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := svc.SchedulePlan(context.Background(), "plan-1", "2025-03-01", models.FrequencyDaily)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	for i := range first.Schedule {
		if first.Schedule[i] != second.Schedule[i] {
			t.Errorf("run mismatch at %d: %+v vs %+v", i, first.Schedule[i], second.Schedule[i])
		}
	}
}

func TestSchedulePlanPromotesReviewAndSetsAutoPublish(t *testing.T) {
	store := newTestStore(2)
	store.drafts[1].Status = models.DraftReview
	svc := NewService(store, nil, nil)

	if _, err := svc.SchedulePlan(context.Background(), "plan-1", "2025-03-01", models.FrequencyDaily); err != nil {
		t.Fatalf("SchedulePlan: %v", err)
	}

	for _, saved := range store.savedDrafts {
		if saved.Status != models.DraftApproved {
			t.Errorf("draft %s status = %s, want approved", saved.ID, saved.Status)
		}
		if !saved.AutoPublish {
			t.Errorf("draft %s auto_publish not set", saved.ID)
		}
	}
	if store.savedPlan == nil || !store.savedPlan.AutoSchedule {
		t.Error("plan auto_schedule not persisted")
	}
	if store.savedPlan.PublishFrequency != models.FrequencyDaily {
		t.Errorf("plan frequency = %s, want daily", store.savedPlan.PublishFrequency)
	}
}

func TestSchedulePlanInvalidInputPerformsNoWrites(t *testing.T) {
	store := newTestStore(3)
	svc := NewService(store, nil, nil)

	if _, err := svc.SchedulePlan(context.Background(), "plan-1", "not-a-date", models.FrequencyDaily); !errors.Is(err, ErrBadStartDate) {
		t.Fatalf("err = %v, want ErrBadStartDate", err)
	}
	if _, err := svc.SchedulePlan(context.Background(), "plan-1", "2025-03-01", "monthly"); !errors.Is(err, ErrBadFrequency) {
		t.Fatalf("err = %v, want ErrBadFrequency", err)
	}
	if len(store.savedDrafts) != 0 || store.savedPlan != nil {
		t.Error("validation failure must not write anything")
	}
}

func TestSchedulePlanNoContent(t *testing.T) {
	store := newTestStore(0)
	svc := NewService(store, nil, nil)

	if _, err := svc.SchedulePlan(context.Background(), "plan-1", "2025-03-01", models.FrequencyDaily); !errors.Is(err, ErrNoContent) {
		t.Fatalf("err = %v, want ErrNoContent", err)
	}
}

func TestSchedulePlanUnknownPlan(t *testing.T) {
	store := newTestStore(3)
	svc := NewService(store, nil, nil)

	if _, err := svc.SchedulePlan(context.Background(), "ghost", "2025-03-01", models.FrequencyDaily); !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("err = %v, want ErrPlanNotFound", err)
	}
}

func TestSchedulePlanContinuesPastWriteFailure(t *testing.T) {
	store := newTestStore(3)
	store.failDraftID = "draft-2"
	svc := NewService(store, nil, nil)

	manifest, err := svc.SchedulePlan(context.Background(), "plan-1", "2025-03-01", models.FrequencyDaily)
	if err != nil {
		t.Fatalf("SchedulePlan: %v", err)
	}

	if manifest.ScheduledCount != 2 {
		t.Errorf("scheduled_count = %d, want 2", manifest.ScheduledCount)
	}
	if len(manifest.Failed) != 1 || manifest.Failed[0].ContentID != "draft-2" {
		t.Errorf("failed = %+v, want draft-2", manifest.Failed)
	}
	// draft-3 keeps its deterministic slot even though draft-2 failed.
	last := manifest.Schedule[len(manifest.Schedule)-1]
	if last.ContentID != "draft-3" || last.PublishDate != "2025-03-03" || last.Order != 3 {
		t.Errorf("last entry = %+v, want draft-3 on 2025-03-03 order 3", last)
	}
}

type blockedLocker struct{}

func (blockedLocker) Acquire(context.Context, string, time.Duration) (func(), bool) {
	return func() {}, false
}

func TestSchedulePlanLockContention(t *testing.T) {
	svc := NewService(newTestStore(1), blockedLocker{}, nil)

	if _, err := svc.SchedulePlan(context.Background(), "plan-1", "2025-03-01", models.FrequencyDaily); !errors.Is(err, ErrScheduleInProgress) {
		t.Fatalf("err = %v, want ErrScheduleInProgress", err)
	}
}
