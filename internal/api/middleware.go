package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/horo-ai/horo/pkg/ratelimiter"
)

// TenantRateLimit rejects requests whose tenant has exhausted its token
// bucket. Requests without a tenant header pass through; the handlers reject
// those themselves.
func TenantRateLimit(limiter *ratelimiter.PerTenant) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(TenantHeader)
		if tenantID != "" && !limiter.Allow(tenantID) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
