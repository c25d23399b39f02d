package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/storebooks/internal/config"
)

// headers every client of the books API needs, whatever the configuration says
var requiredHeaders = []string{"Content-Type", "Idempotency-Key", "X-Request-ID"}

// CORSMiddleware creates a CORS middleware from the configured origins, methods and headers.
// An origin of "*" opens the API to any dashboard.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:  cfg.AllowedMethods,
		AllowHeaders:  slices.Clone(cfg.AllowedHeaders),
		ExposeHeaders: []string{"Content-Length", "X-Request-ID", "X-Idempotency-Replayed"},
		MaxAge:        12 * time.Hour,
	}

	if slices.Contains(cfg.AllowedOrigins, "*") || len(cfg.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}

	if len(corsConfig.AllowMethods) == 0 {
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	}

	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Accept", "Origin")
	for _, h := range requiredHeaders {
		if !slices.Contains(corsConfig.AllowHeaders, h) {
			corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, h)
		}
	}

	return cors.New(corsConfig)
}
