package backup

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
	g := rg.Group("/backup", authMW)
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:filename", h.download)
	g.DELETE("/:filename", h.delete)
}

// list GET /backup
func (h *Handler) list(c *gin.Context) {
	entries, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, entries)
}

// create POST /backup
func (h *Handler) create(c *gin.Context) {
	entry, err := h.svc.Create(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, entry)
}

// download GET /backup/:filename
func (h *Handler) download(c *gin.Context) {
	full, err := h.svc.Path(c.Param("filename"))
	if err != nil {
		response.NotFound(c)
		return
	}
	c.FileAttachment(full, c.Param("filename"))
}

// delete DELETE /backup/:filename
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("filename")); err != nil {
		if errors.Is(err, ErrBackupNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
