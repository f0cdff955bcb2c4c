package plans

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/visapath/core/internal/pkg/pagination"
	"github.com/visapath/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts plan and topic management. Everything here is part
// of the admin surface.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/plans", authMW)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.DELETE("/:id", h.delete)
	g.GET("/:id/topics", h.listTopics)
	g.POST("/:id/topics", h.createTopic)

	t := rg.Group("/topics", authMW)
	t.PUT("/:id", h.updateTopic)
	t.DELETE("/:id", h.deleteTopic)
}

// list GET /plans
func (h *Handler) list(c *gin.Context) {
	list, page, err := h.svc.List(pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, list, page)
}

// get GET /plans/:id
func (h *Handler) get(c *gin.Context) {
	plan, err := h.svc.Get(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if plan == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, plan)
}

// create POST /plans
func (h *Handler) create(c *gin.Context) {
	var dto CreatePlanDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	plan, err := h.svc.Create(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, plan)
}

// delete DELETE /plans/:id
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// listTopics GET /plans/:id/topics
func (h *Handler) listTopics(c *gin.Context) {
	topics, err := h.svc.ListTopics(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, topics)
}

// createTopic POST /plans/:id/topics
func (h *Handler) createTopic(c *gin.Context) {
	var dto CreateTopicDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	topic, err := h.svc.CreateTopic(c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFoundMsg(c, "plan not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, topic)
}

// updateTopic PUT /topics/:id
func (h *Handler) updateTopic(c *gin.Context) {
	var dto UpdateTopicDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	topic, err := h.svc.UpdateTopic(c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, ErrBadTopicStatus) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if topic == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, topic)
}

// deleteTopic DELETE /topics/:id
func (h *Handler) deleteTopic(c *gin.Context) {
	if err := h.svc.DeleteTopic(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
