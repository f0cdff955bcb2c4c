package freshness

import (
	"github.com/visapath/core/internal/models"
	"github.com/visapath/core/internal/pkg/clock"
	"gorm.io/gorm"
)

// Service builds refresh worklists over the published catalog.
type Service struct {
	db  *gorm.DB
	clk clock.Clock
}

func NewService(db *gorm.DB, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	return &Service{db: db, clk: clk}
}

// CatalogWorklist evaluates every published article and returns the
// priority-sorted worklist with its summary.
func (s *Service) CatalogWorklist() ([]UpdateSchedule, Summary, error) {
	var posts []models.BlogPostModel
	if err := s.db.Order("updated_at ASC").Find(&posts).Error; err != nil {
		return nil, Summary{}, err
	}

	views, err := s.viewCounts()
	if err != nil {
		return nil, Summary{}, err
	}

	items := make([]Item, 0, len(posts))
	for _, post := range posts {
		hasDates, hasPrices := DetectSignals(post.Body)
		items = append(items, Item{
			ID:          post.ID,
			LastUpdated: post.UpdatedAt,
			Category:    post.Category,
			Signals: Signals{
				PageViews:          views[post.ID],
				HasDateReferences:  hasDates,
				HasPriceReferences: hasPrices,
			},
		})
	}

	schedules := BuildWorklist(s.clk.Now(), items)
	return schedules, Summarize(schedules), nil
}

// viewCounts aggregates recorded page views per article.
func (s *Service) viewCounts() (map[string]int, error) {
	type row struct {
		BlogID string
		N      int
	}
	var rows []row
	err := s.db.Model(&models.PageViewModel{}).
		Select("blog_id, COUNT(*) AS n").
		Where("blog_id IS NOT NULL").
		Group("blog_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.BlogID] = r.N
	}
	return counts, nil
}
