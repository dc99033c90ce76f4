package streak

import (
	"github.com/gin-gonic/gin"
	"github.com/mellowlog/core/internal/middleware"
	"github.com/mellowlog/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/users/me/streak", authMW, h.getOwn)
}

// GET /users/me/streak  [auth]
func (h *Handler) getOwn(c *gin.Context) {
	row, err := h.svc.GetForUser(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, row)
}
