package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	tenantIDKey = contextKey("tenantID")
	actorIDKey  = contextKey("actorID")

	// Headers set by the upstream gateway after tenant resolution and
	// authentication. The ledger never infers tenant from ambient state; it
	// only translates these headers into explicit parameters.
	TenantIDHeader = "X-Tenant-ID"
	ActorIDHeader  = "X-Actor-ID"
)

// TenantContextMiddleware extracts the tenant and actor identifiers from the
// request headers and stores them in the Gin context. Requests without a
// tenant are rejected before they reach any handler.
func TenantContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(TenantIDHeader)
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + TenantIDHeader + " header"})
			return
		}
		c.Set(string(tenantIDKey), tenantID)

		if actorID := c.GetHeader(ActorIDHeader); actorID != "" {
			c.Set(string(actorIDKey), actorID)
		}

		c.Next()
	}
}

// GetTenantIDFromContext retrieves the tenant ID placed by TenantContextMiddleware.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(tenantIDKey))
	if !exists {
		return "", false
	}
	tenantID, ok := val.(string)
	return tenantID, ok && tenantID != ""
}

// GetActorIDFromContext retrieves the acting user's ID, if the gateway supplied one.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(actorIDKey))
	if !exists {
		return "", false
	}
	actorID, ok := val.(string)
	return actorID, ok && actorID != ""
}
