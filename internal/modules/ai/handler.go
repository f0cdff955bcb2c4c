package ai

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/visapath/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/ai", authMW)
	g.POST("/generate", h.generate)
	g.GET("/tasks/:id", h.getTask)
}

type generateDTO struct {
	TopicID string `json:"topic_id" binding:"required"`
}

// generate POST /ai/generate
func (h *Handler) generate(c *gin.Context) {
	var dto generateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.svc.EnqueueDraftGeneration(c.Request.Context(), dto.TopicID)
	if err != nil {
		switch {
		case errors.Is(err, ErrProviderDisabled):
			response.UnprocessableEntity(c, err.Error())
		case errors.Is(err, ErrTopicNotFound):
			response.NotFoundMsg(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, task)
}

// getTask GET /ai/tasks/:id
func (h *Handler) getTask(c *gin.Context) {
	task, err := h.svc.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if task == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, task)
}
