package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xyaoaf/flight-route-map/config"
)

// AdminAuth guards the admin group. With auth disabled every request passes;
// otherwise a bearer token or basic credentials are required.
func AdminAuth(cfg config.AdminAuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled || adminAuthorized(cfg, c.Request) {
			c.Next()
			return
		}
		c.Header("WWW-Authenticate", `Basic realm="flightmap admin"`)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin credentials required"})
	}
}

func adminAuthorized(cfg config.AdminAuthConfig, r *http.Request) bool {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok && cfg.Token != "" {
		return secureEqual(token, cfg.Token)
	}
	if cfg.Username == "" || cfg.Password == "" {
		return false
	}
	user, pass, ok := r.BasicAuth()
	// evaluate both so timing does not reveal which one mismatched
	userOK := secureEqual(user, cfg.Username)
	passOK := secureEqual(pass, cfg.Password)
	return ok && userOK && passOK
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
