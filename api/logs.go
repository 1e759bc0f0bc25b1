package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xyaoaf/flight-route-map/db"
	"github.com/xyaoaf/flight-route-map/pkg/logger"
)

func createLog(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		rs, raw, ok := uploadedRoutes(c, d)
		if !ok {
			return
		}
		name := strings.TrimSpace(c.Query("name"))
		if name == "" {
			if fh, err := c.FormFile("file"); err == nil {
				name = fh.Filename
			}
		}

		saved, err := d.Store.SaveLog(c.Request.Context(), name, raw, rs)
		if err != nil {
			logger.WithContext(c.Request.Context()).Error(err, "Failed to save flight log")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save flight log"})
			return
		}
		c.Header("Location", "/api/v1/logs/"+saved.ID.String())
		c.JSON(http.StatusCreated, db.LogSummary{
			ID:        saved.ID,
			Name:      saved.Name,
			Flights:   saved.Flights,
			CreatedAt: saved.CreatedAt,
		})
	}
}

func listLogs(store LogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if err != nil || limit < 1 || limit > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 500"})
			return
		}
		logs, err := store.ListLogs(c.Request.Context(), limit)
		if err != nil {
			logger.WithContext(c.Request.Context()).Error(err, "Failed to list flight logs")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list flight logs"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"logs": logs})
	}
}

// loadLog resolves the :id parameter. On failure it has already written the
// response.
func loadLog(c *gin.Context, store LogStore) (db.FlightLog, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
		return db.FlightLog{}, false
	}
	log, err := store.GetLog(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrLogNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "flight log not found"})
			return db.FlightLog{}, false
		}
		logger.WithContext(c.Request.Context()).Error(err, "Failed to load flight log", "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load flight log"})
		return db.FlightLog{}, false
	}
	return log, true
}

func getLog(store LogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if log, ok := loadLog(c, store); ok {
			c.JSON(http.StatusOK, log)
		}
	}
}

func getLogMap(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts, err := mapOptions(c, d)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log, ok := loadLog(c, d.Store)
		if !ok {
			return
		}
		renderMap(c, log.Routes, d.Tables.Table(), opts)
	}
}

func getLogStats(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		log, ok := loadLog(c, d.Store)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, buildStats(log.Routes, d.Tables.Table(), d.Config.MapConfig.TopAirports))
	}
}

func deleteLog(store LogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
			return
		}
		if err := store.DeleteLog(c.Request.Context(), id); err != nil {
			if errors.Is(err, db.ErrLogNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "flight log not found"})
				return
			}
			logger.WithContext(c.Request.Context()).Error(err, "Failed to delete flight log", "id", id)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete flight log"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
