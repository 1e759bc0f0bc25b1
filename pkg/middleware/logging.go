package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xyaoaf/flight-route-map/pkg/logger"
)

// RequestLogger writes one access-log line per request. The level follows the
// response class: 5xx at error, 4xx at warn, the rest at info. The request ID
// comes from the context set by RequestID.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		log := logger.WithContext(c.Request.Context()).WithFields(map[string]interface{}{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    status,
			"latency":   time.Since(start),
			"client_ip": c.ClientIP(),
			"bytes":     c.Writer.Size(),
		})
		if q := c.Request.URL.RawQuery; q != "" {
			log = log.WithField("query", q)
		}
		if len(c.Errors) > 0 {
			log = log.WithField("errors", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error(nil, "HTTP request")
		case status >= http.StatusBadRequest:
			log.Warn("HTTP request")
		default:
			log.Info("HTTP request")
		}
	}
}

// Recovery turns a panic into a JSON 500 and logs it.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.WithContext(c.Request.Context()).Error(nil, "Panic recovered",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}
