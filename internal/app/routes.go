package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/visapath/core/internal/middleware"
	"github.com/visapath/core/internal/modules/ai"
	"github.com/visapath/core/internal/modules/articles"
	"github.com/visapath/core/internal/modules/auth"
	"github.com/visapath/core/internal/modules/backup"
	"github.com/visapath/core/internal/modules/country"
	"github.com/visapath/core/internal/modules/freshness"
	"github.com/visapath/core/internal/modules/planner"
	"github.com/visapath/core/internal/modules/plans"
	"github.com/visapath/core/internal/modules/publisher"
	"github.com/visapath/core/internal/pkg/response"
	"github.com/visapath/core/internal/pkg/taskqueue"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	// Rate limiting and idempotence run on every route (requires Redis).
	r.Use(middleware.RateLimit(a.rc.Raw()))
	r.Use(middleware.Idempotence(a.rc.Raw()))

	api := r.Group(apiPrefix)
	api.Use(middleware.OptionalAuth())
	api.Use(middleware.HTTPCache(a.rc.Raw(), middleware.HTTPCacheOptions{
		TTL:     30 * time.Second,
		Disable: a.cfg.IsDev(),
		SkipPaths: []string{
			apiPrefix + "/auth",
			apiPrefix + "/cron",
			apiPrefix + "/plans",
			apiPrefix + "/topics",
			apiPrefix + "/update-schedule",
			apiPrefix + "/ai",
			apiPrefix + "/backup",
		},
	}))

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": "pong"})
	})

	// Auth + admin account
	auth.NewHandler(auth.NewService(db, a.clk)).RegisterRoutes(api, authMW)

	// Public site surface
	country.NewHandler(country.NewService(db)).RegisterRoutes(api, authMW)
	articles.NewHandler(articles.NewService(db), a.logger).RegisterRoutes(api)

	// Planning and scheduling
	plans.NewHandler(plans.NewService(db)).RegisterRoutes(api, authMW)
	planner.NewHandler(planner.NewService(
		planner.NewStore(db),
		planner.NewLocker(a.rc),
		a.logger,
	)).RegisterRoutes(api, authMW)

	// Auto-publish trigger, guarded by the shared cron secret.
	publisher.NewHandler(a.publishService()).
		RegisterRoutes(api, middleware.CronSecret(a.cfg.CronSecret))

	// Refresh worklist
	freshness.NewHandler(freshness.NewService(db, a.clk), a.clk).RegisterRoutes(api, authMW)

	// Draft generation
	taskSvc := taskqueue.NewService(a.rc)
	ai.NewHandler(ai.NewService(db, &a.cfg.AI, taskSvc, a.logger)).RegisterRoutes(api, authMW)

	// Backups
	backup.NewHandler(a.backupService()).RegisterRoutes(api, authMW)
}

func (a *App) publishService() *publisher.Service {
	return publisher.NewService(
		publisher.NewGormStore(a.db),
		publisher.NewRedisInvalidator(a.rc.Raw()),
		a.clk,
		a.logger,
	)
}

func (a *App) backupService() *backup.Service {
	return backup.NewService(a.db, &a.cfg.Backup, a.cfg.Database.DSNValue(), a.clk, a.logger)
}
