package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UploadDelete removes one attempt's audit row. Upload records are
// never cleaned up automatically, this is the explicit way to do it.
func (a *API) UploadDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	ownerID := c.MustGet("ownerID").(string)

	uploadID := c.Param("id")
	if uploadID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No upload ID provided",
			"requestID": requestID,
		})
		return
	}

	rec, err := a.Store.GetUpload(c.Request.Context(), uploadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Upload not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch upload record", zap.Error(err))
		return
	}

	if rec.OwnerID != ownerID {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Upload not found. It either doesn't exist or you don't own it",
			"requestID": requestID,
		})
		return
	}

	if err := a.Store.DeleteUpload(c.Request.Context(), uploadID); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete upload record", zap.Error(err))
		return
	}

	c.Status(http.StatusOK)
}
