package user

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/mellowlog/core/internal/middleware"
	"github.com/mellowlog/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	auth := rg.Group("/auth")
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)

	me := rg.Group("/users/me", authMW)
	me.GET("", h.getMe)
	me.PUT("", h.updateMe)
	me.POST("/mark_welcome_seen", h.markWelcomeSeen)
	me.DELETE("/delete_account", h.deleteAccount)
}

// POST /auth/register
func (h *Handler) register(c *gin.Context) {
	var dto registerDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.svc.Register(dto)
	if err != nil {
		if errors.Is(err, errUsernameTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, user)
}

// POST /auth/login
func (h *Handler) login(c *gin.Context) {
	var dto loginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, user, err := h.svc.Login(dto.Username, dto.Password, c.ClientIP())
	if err != nil {
		if errors.Is(err, errInvalidCredentials) {
			response.Unauthorized(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"token": token,
		"user":  user,
	})
}

// GET /users/me  [auth]
func (h *Handler) getMe(c *gin.Context) {
	user, err := h.svc.GetMe(middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, user)
}

// PUT /users/me  [auth]
func (h *Handler) updateMe(c *gin.Context) {
	var dto updateMeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.svc.UpdateMe(middleware.CurrentUserID(c), dto)
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, user)
}

// POST /users/me/mark_welcome_seen  [auth]
func (h *Handler) markWelcomeSeen(c *gin.Context) {
	if err := h.svc.MarkWelcomeSeen(middleware.CurrentUserID(c)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"has_seen_welcome": true})
}

// DELETE /users/me/delete_account  [auth]
func (h *Handler) deleteAccount(c *gin.Context) {
	err := h.svc.DeleteAccount(middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
