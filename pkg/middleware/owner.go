package middleware

import (
	"github.com/gin-gonic/gin"
)

// NewOwnerMiddleware reads the caller identity forwarded by the
// platform's auth gateway and sets it as ownerID. Token verification
// itself happens at the gateway, not here.
func NewOwnerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("ownerID", c.GetHeader("X-Owner-ID"))
		c.Next()
	}
}
