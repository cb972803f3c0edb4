package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileDelete removes a file's metadata row and its blob. Only the
// owner may delete. The row goes first so the file stops being visible
// even if the blob delete fails, a later cleanup can always re-run it.
func (a *API) FileDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	ownerID := c.MustGet("ownerID").(string)

	fileID := c.Param("id")
	if fileID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "ID is missing",
			"requestID": requestID,
		})
		return
	}

	file, err := a.Store.GetFile(c.Request.Context(), fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "File not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if file exists", zap.Error(err))
		return
	}

	if file.OwnerID != ownerID {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "File not found. It either doesn't exist or you don't own it",
			"requestID": requestID,
		})
		return
	}

	if err := a.Store.DeleteFile(c.Request.Context(), fileID); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete file row", zap.Error(err))
		return
	}

	if err := a.Blobs.Delete(c.Request.Context(), file.StoragePath); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete blob", zap.String("path", file.StoragePath), zap.Error(err))
		return
	}

	c.Status(http.StatusOK)
}
