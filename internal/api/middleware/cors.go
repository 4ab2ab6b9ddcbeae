package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ConfigCORS allows read-only cross-origin access from the given origins.
// An empty list, or one holding "*", allows every origin.
func ConfigCORS(allowedDomains []string) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:     []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(allowedDomains) == 0 || slices.Contains(allowedDomains, "*") {
		conf.AllowAllOrigins = true
	} else {
		conf.AllowOrigins = allowedDomains
	}

	return cors.New(conf)
}
