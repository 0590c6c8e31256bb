package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ScopeMiddleware reads the tenant scope headers and sets them in the
// request context. Authorization is enforced upstream; this service only
// needs the already-scoped identifiers.
func ScopeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID := c.GetHeader("X-Org-ID")
		userID := c.GetHeader("X-User-ID")
		if orgID == "" || userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing X-Org-ID or X-User-ID header"})
			c.Abort()
			return
		}

		c.Set("orgId", orgID)
		c.Set("userId", userID)
		c.Next()
	}
}
