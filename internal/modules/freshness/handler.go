package freshness

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/visapath/core/internal/models"
	"github.com/visapath/core/internal/pkg/clock"
	"github.com/visapath/core/internal/pkg/response"
)

// Handler exposes the update-schedule endpoints.
type Handler struct {
	svc *Service
	clk clock.Clock
}

func NewHandler(svc *Service, clk clock.Clock) *Handler {
	if clk == nil {
		clk = clock.System{}
	}
	return &Handler{svc: svc, clk: clk}
}

// RegisterRoutes mounts update-schedule routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/update-schedule", authMW)
	g.GET("", h.catalog)
	g.POST("", h.evaluateOne)
}

// catalog GET /update-schedule
func (h *Handler) catalog(c *gin.Context) {
	schedules, summary, err := h.svc.CatalogWorklist()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"schedules": schedules,
		"summary":   summary,
	})
}

type evaluateDTO struct {
	ContentID   string `json:"contentId"   binding:"required"`
	LastUpdated string `json:"lastUpdated" binding:"required"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
	PageViews   int    `json:"pageViews"`
}

// evaluateOne POST /update-schedule
// Evaluates a single not-yet-persisted item on demand.
func (h *Handler) evaluateOne(c *gin.Context) {
	var dto evaluateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	lastUpdated, err := parseTimestamp(dto.LastUpdated)
	if err != nil {
		response.BadRequest(c, "lastUpdated must be an RFC 3339 timestamp or YYYY-MM-DD date")
		return
	}

	hasDates, hasPrices := DetectSignals(dto.Content)
	schedule := Build(h.clk.Now(), Item{
		ID:          dto.ContentID,
		LastUpdated: lastUpdated,
		Category:    models.ContentCategory(dto.ContentType),
		Signals: Signals{
			PageViews:          dto.PageViews,
			HasDateReferences:  hasDates,
			HasPriceReferences: hasPrices,
		},
	})
	response.OK(c, schedule)
}

func parseTimestamp(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
