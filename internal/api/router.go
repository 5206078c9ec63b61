package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"separator-tco-backend/config"
	"separator-tco-backend/internal/mw"
)

const (
	sweepInterval = time.Minute
	visitorIdle   = 10 * time.Minute
)

// NewRouter creates and configures a new Gin router. Idle rate limit
// entries are evicted until ctx is cancelled.
func NewRouter(ctx context.Context, handler *Handler, cfg config.ServerConfig) *gin.Engine {
	r := gin.Default()

	limiter := mw.NewIPRateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)
	go limiter.RunSweeper(ctx, sweepInterval, visitorIdle)

	cacheStore := cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	caching := mw.Cache(cacheStore, cfg.CacheTTL)

	r.GET("/api/healthz", handler.Health)

	// API group
	api := r.Group("/api")
	api.Use(limiter.Middleware(), mw.Invalidate(cacheStore))
	{
		api.GET("/catalog", caching, handler.ListCatalog)
		api.GET("/catalog/:model/breakdown", caching, handler.CatalogBreakdown)
		api.POST("/tco", handler.CalculateTCO)

		api.GET("/projects", caching, handler.ListProjects)
		api.POST("/projects", handler.CreateProject)
		api.GET("/projects/:id", caching, handler.GetProject)
		api.DELETE("/projects/:id", handler.DeleteProject)
		api.POST("/projects/:id/machines", handler.AddMachine)
		api.DELETE("/projects/:id/machines/:machine_id", handler.DeleteMachine)

		api.GET("/projects/:id/shortlist", handler.GetShortlist)
		api.GET("/projects/:id/shortlist/stored", handler.GetStoredShortlist)
		api.POST("/projects/:id/refresh", handler.RefreshShortlist)
		api.GET("/projects/:id/compare", handler.CompareShortlist)
	}

	return r
}
