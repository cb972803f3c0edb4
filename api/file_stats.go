package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statsOwner resolves which owner a stats request is scoped to, falling
// back to the caller's own ID when no query param is given. The cache
// middleware must key on the same resolution, otherwise one owner's
// cached body gets served to another.
func statsOwner(c *gin.Context) string {
	if owner := c.Query("owner"); owner != "" {
		return owner
	}
	return c.GetString("ownerID")
}

// FileStats reports storage usage totals. Without an owner query it
// covers the whole store, with one it scopes to that owner.
func (a *API) FileStats(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	ownerID := statsOwner(c)

	stats, err := a.Stats.Get(c.Request.Context(), ownerID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load storage stats", zap.String("owner", ownerID), zap.Error(err))
		return
	}

	c.Header("Cache-Control", "max-age=30")
	c.JSON(http.StatusOK, stats)
}
