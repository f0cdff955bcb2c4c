package planner

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/visapath/core/internal/models"
	"github.com/visapath/core/internal/pkg/response"
)

// Handler exposes the schedule-plan endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts planner routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/plans/:id/schedule", authMW, h.schedule)
}

type scheduleDTO struct {
	StartDate string `json:"start_date" binding:"required"`
	Frequency string `json:"frequency"  binding:"required"`
}

// schedule POST /plans/:id/schedule
func (h *Handler) schedule(c *gin.Context) {
	planID := c.Param("id")
	if planID == "" {
		response.BadRequest(c, "plan id is required")
		return
	}

	var dto scheduleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	manifest, err := h.svc.SchedulePlan(c.Request.Context(), planID, dto.StartDate, models.PlanFrequency(dto.Frequency))
	if err != nil {
		switch {
		case errors.Is(err, ErrBadStartDate), errors.Is(err, ErrBadFrequency):
			response.BadRequest(c, err.Error())
		case errors.Is(err, ErrPlanNotFound):
			response.NotFoundMsg(c, err.Error())
		case errors.Is(err, ErrNoContent):
			response.UnprocessableEntity(c, err.Error())
		case errors.Is(err, ErrScheduleInProgress):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, manifest)
}
