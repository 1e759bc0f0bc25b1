package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xyaoaf/flight-route-map/airports"
	"github.com/xyaoaf/flight-route-map/config"
	"github.com/xyaoaf/flight-route-map/db"
	"github.com/xyaoaf/flight-route-map/pkg/cache"
	"github.com/xyaoaf/flight-route-map/pkg/health"
	"github.com/xyaoaf/flight-route-map/pkg/metrics"
	"github.com/xyaoaf/flight-route-map/pkg/middleware"
	"github.com/xyaoaf/flight-route-map/routes"
	"github.com/xyaoaf/flight-route-map/worker"
)

// LogStore persists uploaded flight logs and airport overrides. *db.Store
// satisfies it.
type LogStore interface {
	SaveLog(ctx context.Context, name string, raw []byte, rs []routes.Route) (db.FlightLog, error)
	GetLog(ctx context.Context, id uuid.UUID) (db.FlightLog, error)
	ListLogs(ctx context.Context, limit int) ([]db.LogSummary, error)
	DeleteLog(ctx context.Context, id uuid.UUID) error
	AirportOverrides(ctx context.Context) ([]airports.Airport, error)
	UpsertAirports(ctx context.Context, rows []airports.Airport) error
}

// Deps are the collaborators the handlers need. Store may be nil, in which
// case the saved-log endpoints answer 503.
type Deps struct {
	Config    *config.Config
	Tables    *airports.Holder
	Routes    *cache.RouteCache
	Responses *cache.CacheManager
	Refresher *worker.Refresher
	Store     LogStore
	Health    *health.HealthChecker
	Metrics   *metrics.Collector
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, d *Deps) {
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics(d.Metrics))

	router.GET("/health", healthHandler(d.Health.CheckHealth))
	router.GET("/health/ready", healthHandler(d.Health.CheckReadiness))
	router.GET("/health/live", healthHandler(d.Health.CheckLiveness))
	router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	router.GET("/version", getVersion())

	static := middleware.ResponseCache(d.Responses, middleware.CacheConfig{
		TTL:       cache.StaticTTL,
		KeyPrefix: d.Config.CacheConfig.Prefix,
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/airports", static, listAirports(d.Tables))
		v1.GET("/airports/:code", getAirport(d.Tables))
		v1.GET("/distance", static, getDistance(d.Tables))

		v1.POST("/map", postMap(d))
		v1.POST("/stats", postStats(d))
		v1.GET("/map/default", getDefaultMap(d))
		v1.GET("/stats/default", getDefaultStats(d))

		logs := v1.Group("/logs", requireStore(d.Store))
		{
			logs.POST("", createLog(d))
			logs.GET("", listLogs(d.Store))
			logs.GET("/:id", getLog(d.Store))
			logs.GET("/:id/map", getLogMap(d))
			logs.GET("/:id/stats", getLogStats(d))
			logs.DELETE("/:id", deleteLog(d.Store))
		}

		admin := v1.Group("/admin", middleware.AdminAuth(d.Config.AdminAuthConfig))
		{
			admin.POST("/refresh", refreshDefault(d.Refresher))
			admin.DELETE("/cache", clearCache(d.Responses))
			admin.PUT("/airports", requireStore(d.Store), putAirports(d))
		}
	}
}

func healthHandler(check func(context.Context) health.HealthReport) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := check(c.Request.Context())
		status := http.StatusOK
		if report.Status != health.StatusUp {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, report)
	}
}

func requireStore(store LogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "saved flight logs require PostgreSQL (set DB_ENABLED)"})
			return
		}
		c.Next()
	}
}
