package auth

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/visapath/core/internal/middleware"
	"github.com/visapath/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/auth")
	g.POST("/login", h.login)
	g.POST("/register", h.register)
	g.GET("/whoami", authMW, h.whoami)
}

// login POST /auth/login
func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, user, err := h.svc.Login(dto.Username, dto.Password, c.ClientIP())
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			response.Unauthorized(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"token": token, "user": user})
}

// register POST /auth/register
func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.svc.Register(&dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrOwnerRegistered):
			response.Conflict(c, err.Error())
		case errors.Is(err, ErrPasswordTooShort):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, user)
}

// whoami GET /auth/whoami
func (h *Handler) whoami(c *gin.Context) {
	user, err := h.svc.GetUser(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if user == nil {
		response.Unauthorized(c)
		return
	}
	response.OK(c, user)
}
