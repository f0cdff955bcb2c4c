package articles

import (
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"

	"github.com/visapath/core/internal/pkg/pagination"
	"github.com/visapath/core/internal/pkg/response"
)

type Handler struct {
	svc    *Service
	logger *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger.Named("Articles")}
}

// RegisterRoutes mounts the public article surface.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/articles")
	g.GET("", h.list)
	g.GET("/:slug", h.get)
}

// list GET /articles
func (h *Handler) list(c *gin.Context) {
	posts, page, err := h.svc.List(ListQuery{
		Category: c.Query("category"),
		Country:  c.Query("country"),
	}, pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, posts, page)
}

type articleView struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	HTML      string `json:"html,omitempty"`
	Category  string `json:"category"`
	Keywords  any    `json:"keywords"`
	Country   any    `json:"country,omitempty"`
	Read      int    `json:"read"`
	CreatedAt any    `json:"created_at"`
	UpdatedAt any    `json:"updated_at"`
}

// get GET /articles/:slug
func (h *Handler) get(c *gin.Context) {
	post, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c)
		return
	}

	view := articleView{
		ID:        post.ID,
		Slug:      post.Slug,
		Title:     post.Title,
		Body:      post.Body,
		Category:  string(post.Category),
		Keywords:  post.Keywords,
		Country:   post.Country,
		Read:      post.ReadCount,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	if c.Query("format") == "html" {
		html, err := RenderHTML(post.Body)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		view.HTML = html
	}

	path, ip, ua := c.Request.URL.Path, c.ClientIP(), c.Request.UserAgent()
	go func() {
		if err := h.svc.RecordView(post, path, ip, ua); err != nil {
			h.logger.Warn("record page view failed", zap.String("slug", post.Slug), zap.Error(err))
		}
	}()

	response.OK(c, view)
}
