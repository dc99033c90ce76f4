package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mellowlog/core/internal/middleware"
	"github.com/mellowlog/core/internal/modules/advice"
	"github.com/mellowlog/core/internal/modules/auth/user"
	"github.com/mellowlog/core/internal/modules/emotion"
	"github.com/mellowlog/core/internal/modules/greeting"
	"github.com/mellowlog/core/internal/modules/journal"
	"github.com/mellowlog/core/internal/modules/streak"
	"github.com/mellowlog/core/internal/pkg/completion"
	pkgredis "github.com/mellowlog/core/internal/pkg/redis"
	"github.com/mellowlog/core/internal/pkg/response"
)

func (a *App) registerRoutes(rc *pkgredis.Client, client completion.Client, loc *time.Location) {
	a.router.NoRoute(func(c *gin.Context) { response.NotFound(c) })
	a.router.NoMethod(func(c *gin.Context) { response.MethodNotAllowed(c) })

	a.router.GET("/", func(c *gin.Context) {
		response.OK(c, gin.H{
			"name":    "mellowlog-core",
			"version": "v2",
		})
	})

	api := a.router.Group("/api/v2")
	api.Use(middleware.RateLimit(rc.Raw()))

	authMW := middleware.Auth()

	streakSvc := streak.NewService(a.db)
	journalSvc := journal.NewService(
		a.db,
		emotion.NewExtractor(client, a.logger),
		advice.NewGenerator(client, a.logger),
		streakSvc,
		loc,
		a.logger,
	)
	greetingSvc := greeting.NewService(a.db, client, rc, loc, a.logger)
	userSvc := user.NewService(a.db)

	user.NewHandler(userSvc).RegisterRoutes(api, authMW)
	journal.NewHandler(journalSvc).RegisterRoutes(api, authMW)
	streak.NewHandler(streakSvc).RegisterRoutes(api, authMW)
	greeting.NewHandler(greetingSvc).RegisterRoutes(api, authMW)
}
