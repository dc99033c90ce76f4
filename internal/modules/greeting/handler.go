package greeting

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mellowlog/core/internal/middleware"
	"github.com/mellowlog/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/daily-greetings", authMW)
	g.GET("", h.list)
	g.POST("/today", h.today)
}

// GET /daily-greetings  [auth]
func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.ListForUser(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

// POST /daily-greetings/today  [auth]
func (h *Handler) today(c *gin.Context) {
	item, err := h.svc.GetOrCreate(c.Request.Context(), middleware.CurrentUserID(c), time.Now())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, item)
}
