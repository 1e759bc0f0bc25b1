package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xyaoaf/flight-route-map/airports"
	"github.com/xyaoaf/flight-route-map/pkg/cache"
	"github.com/xyaoaf/flight-route-map/pkg/logger"
	"github.com/xyaoaf/flight-route-map/worker"
)

func refreshDefault(r *worker.Refresher) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := r.Refresh(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"refreshed_at": snap.RefreshedAt,
			"flights":      snap.Map.Stats.Flights,
			"routes":       len(snap.Map.Routes),
			"missing":      snap.Map.Stats.Missing,
		})
	}
}

func clearCache(cm *cache.CacheManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := cm.Clear(c.Request.Context()); err != nil {
			logger.WithContext(c.Request.Context()).Error(err, "Failed to clear cache")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cache"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// putAirports stores airport overrides and swaps in a table that includes them.
func putAirports(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rows []airports.Airport
		if err := c.ShouldBindJSON(&rows); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(rows) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no airports given"})
			return
		}
		for _, a := range rows {
			if err := a.Validate(); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		ctx := c.Request.Context()
		if err := d.Store.UpsertAirports(ctx, rows); err != nil {
			if errors.Is(err, airports.ErrInvalidAirport) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			logger.WithContext(ctx).Error(err, "Failed to store airport overrides")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store airport overrides"})
			return
		}

		overrides, err := d.Store.AirportOverrides(ctx)
		if err != nil {
			logger.WithContext(ctx).Error(err, "Failed to reload airport overrides")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reload airport overrides"})
			return
		}
		table, err := airports.Default().Merge(overrides)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		d.Tables.Store(table)
		if err := d.Responses.Clear(ctx); err != nil {
			logger.WithContext(ctx).Warn("Clearing response cache after airport update failed", "error", err)
		}
		if _, err := d.Refresher.Refresh(ctx); err != nil {
			logger.WithContext(ctx).Warn("Refresh after airport update failed", "error", err)
		}
		c.JSON(http.StatusOK, gin.H{"airports": table.Len(), "overrides": len(overrides)})
	}
}
