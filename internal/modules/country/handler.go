package country

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/visapath/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts country routes. Reads are public, mutations are
// admin only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/countries")
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", authMW, h.create)
	g.PUT("/:id", authMW, h.update)
	g.DELETE("/:id", authMW, h.delete)
}

// list GET /countries
func (h *Handler) list(c *gin.Context) {
	countries, err := h.svc.List(c.Query("featured") == "true")
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, countries)
}

// get GET /countries/:id
func (h *Handler) get(c *gin.Context) {
	country, err := h.svc.GetByIdentifier(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if country == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, country)
}

// create POST /countries
func (h *Handler) create(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	country, err := h.svc.Create(&dto)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, country)
}

// update PUT /countries/:id
func (h *Handler) update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	country, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if country == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, country)
}

// delete DELETE /countries/:id
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
