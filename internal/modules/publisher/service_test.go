package publisher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/visapath/core/internal/models"
	"github.com/visapath/core/internal/pkg/clock"
)

// fakeStore is an in-memory Store for executor tests.
type fakeStore struct {
	drafts   map[string]*models.DraftContentModel
	articles map[string]*models.BlogPostModel
	routes   map[string]*models.RouteModel
	topics   map[string]models.TopicStatus
	country  map[string]string

	failCreateFor  string
	failRouteFor   string
	failCountryFor string
	casLoses       bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		drafts:   map[string]*models.DraftContentModel{},
		articles: map[string]*models.BlogPostModel{},
		routes:   map[string]*models.RouteModel{},
		topics:   map[string]models.TopicStatus{},
		country:  map[string]string{},
	}
}

func (f *fakeStore) addDraft(id, title string, scheduled time.Time) *models.DraftContentModel {
	d := &models.DraftContentModel{
		Base:                 models.Base{ID: id},
		TopicID:              "topic-" + id,
		Title:                title,
		Body:                 "body of " + title,
		Status:               models.DraftApproved,
		AutoPublish:          true,
		ScheduledPublishDate: &scheduled,
		Topic: &models.TopicModel{
			Base:   models.Base{ID: "topic-" + id},
			PlanID: "plan-1",
			Plan: &models.ContentPlanModel{
				Base:      models.Base{ID: "plan-1"},
				CountryID: "country-1",
			},
		},
	}
	f.drafts[id] = d
	f.topics[d.TopicID] = models.TopicApproved
	return d
}

func (f *fakeStore) ListDue(ctx context.Context, today time.Time) ([]models.DraftContentModel, error) {
	var out []models.DraftContentModel
	for _, d := range f.drafts {
		if d.AutoPublish && d.Status == models.DraftApproved && d.BlogID == nil &&
			d.ScheduledPublishDate != nil && !d.ScheduledPublishDate.After(today) {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	for _, a := range f.articles {
		if a.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateArticle(ctx context.Context, article *models.BlogPostModel) error {
	for id, d := range f.drafts {
		if d.Title == article.Title && id == f.failCreateFor {
			return errors.New("insert rejected")
		}
	}
	article.ID = "blog-for-" + article.Slug
	f.articles[article.ID] = article
	return nil
}

func (f *fakeStore) DeleteArticle(ctx context.Context, blogID string) error {
	delete(f.articles, blogID)
	delete(f.routes, blogID)
	return nil
}

func (f *fakeStore) CreateRoute(ctx context.Context, route *models.RouteModel) error {
	if f.failRouteFor != "" && f.articles[route.ModelID] != nil &&
		f.articles[route.ModelID].Slug == f.failRouteFor {
		return errors.New("route insert rejected")
	}
	f.routes[route.ModelID] = route
	return nil
}

func (f *fakeStore) LinkCountry(ctx context.Context, blogID, countryID string) error {
	if f.failCountryFor != "" && f.articles[blogID] != nil &&
		f.articles[blogID].Slug == f.failCountryFor {
		return errors.New("country link rejected")
	}
	f.country[blogID] = countryID
	return nil
}

func (f *fakeStore) MarkDraftPublished(ctx context.Context, draftID, blogID string, at time.Time) (bool, error) {
	d, ok := f.drafts[draftID]
	if !ok {
		return false, errors.New("draft missing")
	}
	if f.casLoses || d.BlogID != nil {
		return false, nil
	}
	d.BlogID = &blogID
	d.Status = models.DraftPublished
	d.PublishedAt = &at
	return true, nil
}

func (f *fakeStore) MarkTopicPublished(ctx context.Context, topicID string) error {
	f.topics[topicID] = models.TopicPublished
	return nil
}

func fixedDay() clock.Fixed {
	return clock.Fixed{T: time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)}
}

func TestRunDailyPublishPromotesDueDraft(t *testing.T) {
	store := newFakeStore()
	store.addDraft("draft-1", "Germany Work Visa Requirements", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	svc := NewService(store, nil, fixedDay(), nil)

	report, err := svc.RunDailyPublish(context.Background())
	if err != nil {
		t.Fatalf("RunDailyPublish: %v", err)
	}
	if report.PublishedCount != 1 || report.FailedCount != 0 {
		t.Fatalf("report = %+v, want 1 published 0 failed", report)
	}

	entry := report.Published[0]
	if entry.Slug != "germany-work-visa-requirements" {
		t.Errorf("slug = %s", entry.Slug)
	}
	article := store.articles[entry.BlogID]
	if article == nil {
		t.Fatal("article not persisted")
	}
	if article.Category != models.CategoryVisa {
		t.Errorf("category = %s, want visa", article.Category)
	}
	if store.routes[entry.BlogID] == nil {
		t.Error("routing entry not created")
	}
	if store.country[entry.BlogID] != "country-1" {
		t.Error("country not linked")
	}
	draft := store.drafts["draft-1"]
	if draft.Status != models.DraftPublished || draft.BlogID == nil || draft.PublishedAt == nil {
		t.Errorf("draft not fully transitioned: %+v", draft)
	}
	if store.topics[draft.TopicID] != models.TopicPublished {
		t.Error("topic not advanced to published")
	}
}

func TestRunDailyPublishIsIdempotent(t *testing.T) {
	store := newFakeStore()
	store.addDraft("draft-1", "Paris Travel Guide", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	svc := NewService(store, nil, fixedDay(), nil)

	first, err := svc.RunDailyPublish(context.Background())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.PublishedCount != 1 {
		t.Fatalf("first run published %d, want 1", first.PublishedCount)
	}

	second, err := svc.RunDailyPublish(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.ScheduledCount != 0 || second.PublishedCount != 0 {
		t.Errorf("second run = %+v, want nothing to do", second)
	}
	if len(store.articles) != 1 {
		t.Errorf("articles = %d, want exactly 1", len(store.articles))
	}
}

func TestRunDailyPublishPublishesMissedDaysRetroactively(t *testing.T) {
	store := newFakeStore()
	store.addDraft("draft-old", "Overdue Article", time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC))
	store.addDraft("draft-future", "Not Yet Due", time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC))
	svc := NewService(store, nil, fixedDay(), nil)

	report, err := svc.RunDailyPublish(context.Background())
	if err != nil {
		t.Fatalf("RunDailyPublish: %v", err)
	}
	if report.PublishedCount != 1 {
		t.Fatalf("published %d, want 1", report.PublishedCount)
	}
	if report.Published[0].ContentID != "draft-old" {
		t.Errorf("published %s, want draft-old", report.Published[0].ContentID)
	}
	if store.drafts["draft-future"].BlogID != nil {
		t.Error("future draft must stay untouched")
	}
}

func TestRunDailyPublishIsolatesItemFailure(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.addDraft("draft-a", "Article A", day)
	store.addDraft("draft-b", "Article B", day)
	store.failCreateFor = "draft-a"
	svc := NewService(store, nil, fixedDay(), nil)

	report, err := svc.RunDailyPublish(context.Background())
	if err != nil {
		t.Fatalf("RunDailyPublish: %v", err)
	}
	if report.PublishedCount != 1 || report.FailedCount != 1 {
		t.Fatalf("report = %+v, want 1 published 1 failed", report)
	}
	if report.Failed[0].ContentID != "draft-a" || report.Failed[0].Reason == "" {
		t.Errorf("failed entry = %+v", report.Failed[0])
	}
	if report.Published[0].ContentID != "draft-b" {
		t.Errorf("published entry = %+v", report.Published[0])
	}
	if store.drafts["draft-a"].Status != models.DraftApproved {
		t.Error("failed draft must keep approved status for a retry")
	}
}

func TestRunDailyPublishRouteFailureIsWarningOnly(t *testing.T) {
	store := newFakeStore()
	store.addDraft("draft-1", "Article With Bad Route", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	store.failRouteFor = "article-with-bad-route"
	svc := NewService(store, nil, fixedDay(), nil)

	report, err := svc.RunDailyPublish(context.Background())
	if err != nil {
		t.Fatalf("RunDailyPublish: %v", err)
	}
	if report.PublishedCount != 1 || report.FailedCount != 0 {
		t.Fatalf("report = %+v, want published despite route failure", report)
	}
	if len(report.Warnings) != 1 || report.Warnings[0].Stage != "route" {
		t.Errorf("warnings = %+v, want one route warning", report.Warnings)
	}
}

func TestRunDailyPublishConcurrentLoserCleansUp(t *testing.T) {
	store := newFakeStore()
	store.addDraft("draft-1", "Contested Draft", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	store.casLoses = true
	svc := NewService(store, nil, fixedDay(), nil)

	report, err := svc.RunDailyPublish(context.Background())
	if err != nil {
		t.Fatalf("RunDailyPublish: %v", err)
	}
	if report.PublishedCount != 0 || report.FailedCount != 1 {
		t.Fatalf("report = %+v, want the contested item failed", report)
	}
	if len(store.articles) != 0 {
		t.Error("duplicate article must be removed when the write is lost")
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Germany Work Visa Requirements", "germany-work-visa-requirements"},
		{"  UK  Visitor Visa: Fees & Timelines!  ", "uk-visitor-visa-fees-timelines"},
		{"2025 Schengen Updates", "2025-schengen-updates"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCategorize(t *testing.T) {
	if got := Categorize("Student Visa Checklist", nil); got != models.CategoryVisa {
		t.Errorf("got %s, want visa", got)
	}
	if got := Categorize("Weekend Trip to Lisbon", nil); got != models.CategoryTravel {
		t.Errorf("got %s, want travel", got)
	}
	if got := Categorize("Cost of Living Abroad", []string{"budget"}); got != models.CategoryGeneral {
		t.Errorf("got %s, want general", got)
	}
}
