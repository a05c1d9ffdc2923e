package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/horo-ai/horo/pkg/ratelimiter"
)

// SetupRouter configures and returns a Gin engine with all routes registered.
// A nil limiter disables per-tenant rate limiting.
func SetupRouter(h *Handler, limiter *ratelimiter.PerTenant) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", TenantHeader},
	}))
	if limiter != nil {
		r.Use(TenantRateLimit(limiter))
	}

	r.POST("/upload", h.UploadDocument)
	r.POST("/query", h.QueryDocuments)
	r.GET("/documents", h.ListDocuments)
	r.GET("/health", h.HealthCheck)

	return r
}
