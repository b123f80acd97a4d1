package http

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// The codec API only takes JSON POSTs; GET is kept for health probes from browsers.
var (
	corsAllowMethods  = []string{"GET", "POST"}
	corsAllowHeaders  = []string{"Content-Type", "X-Request-Id"}
	corsExposeHeaders = []string{"X-Request-Id", "Retry-After"}
)

// newCORSMiddleware returns nil when there is no origin to allow.
func newCORSMiddleware(allowOrigins string, logger *slog.Logger) gin.HandlerFunc {
	origins := parseOrigins(allowOrigins)
	if len(origins) == 0 {
		logger.Warn("CORS enabled but CORS_ALLOW_ORIGINS has no origins, skipping")
		return nil
	}

	logger.Info("CORS enabled", slog.Any("origins", origins))

	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  corsAllowMethods,
		AllowHeaders:  corsAllowHeaders,
		ExposeHeaders: corsExposeHeaders,
		MaxAge:        12 * time.Hour,
	})
}

// parseOrigins splits a comma-separated list, dropping blanks and duplicates.
func parseOrigins(s string) []string {
	var origins []string
	for part := range strings.SplitSeq(s, ",") {
		origin := strings.TrimSpace(part)
		if origin == "" || slices.Contains(origins, origin) {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
