package journal

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/mellowlog/core/internal/middleware"
	"github.com/mellowlog/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/journals", authMW)
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.POST("/:id/process_emotions", h.processEmotions)
	g.GET("/:id/mood_stat", h.getMoodStat)
	g.GET("/:id/insight", h.getInsight)

	rg.GET("/insights", authMW, h.listInsights)
	rg.GET("/mood_stats", authMW, h.listMoodStats)
}

// GET /journals  [auth]
func (h *Handler) list(c *gin.Context) {
	entries, err := h.svc.List(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, entries)
}

// POST /journals  [auth]
func (h *Handler) create(c *gin.Context) {
	var dto createJournalDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry, err := h.svc.Create(middleware.CurrentUserID(c), dto)
	if err != nil {
		if errors.Is(err, errTitleOrContent) || errors.Is(err, errInvalidDate) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, entry)
}

// GET /journals/:id  [auth]
func (h *Handler) get(c *gin.Context) {
	entry, err := h.svc.Get(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, errEntryNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, entry)
}

// PUT /journals/:id  [auth]
func (h *Handler) update(c *gin.Context) {
	var dto updateJournalDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), dto)
	if err != nil {
		switch {
		case errors.Is(err, errEntryNotFound):
			response.NotFound(c)
		case errors.Is(err, errTitleOrContent), errors.Is(err, errInvalidDate):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, entry)
}

// DELETE /journals/:id  [auth]
func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, errEntryNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// POST /journals/:id/process_emotions  [auth]
func (h *Handler) processEmotions(c *gin.Context) {
	entry, err := h.svc.ProcessEmotions(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, errEntryNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, entry)
}

// GET /journals/:id/mood_stat  [auth]
func (h *Handler) getMoodStat(c *gin.Context) {
	stat, err := h.svc.GetMoodStat(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, errEntryNotFound) || errors.Is(err, errMoodStatMissing) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, stat)
}

// GET /journals/:id/insight  [auth]
func (h *Handler) getInsight(c *gin.Context) {
	insight, err := h.svc.GetInsight(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, errEntryNotFound) || errors.Is(err, errInsightMissing) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, insight)
}

// GET /mood_stats  [auth]
func (h *Handler) listMoodStats(c *gin.Context) {
	items, err := h.svc.ListMoodStats(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

// GET /insights  [auth]
func (h *Handler) listInsights(c *gin.Context) {
	items, err := h.svc.ListInsights(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}
