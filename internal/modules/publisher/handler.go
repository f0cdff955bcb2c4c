package publisher

import (
	"github.com/gin-gonic/gin"

	"github.com/visapath/core/internal/pkg/response"
)

// Handler exposes the cron-triggered auto-publish endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts publisher routes. The secret middleware guards the
// endpoint against anything but the trusted periodic trigger.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, secretMW gin.HandlerFunc) {
	rg.GET("/cron/auto-publish", secretMW, h.run)
}

// run GET /cron/auto-publish
func (h *Handler) run(c *gin.Context) {
	report, err := h.svc.RunDailyPublish(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, report)
}
