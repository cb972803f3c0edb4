package api

import (
	"errors"
	"net/http"

	"bitwise74/ingest-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileStreamURL returns the stable playback URL for a file.
func (a *API) FileStreamURL(c *gin.Context) {
	a.fileURL(c, func(f *model.StoredFile) gin.H {
		return gin.H{"url": f.StreamURL()}
	})
}

// FileDownloadURL returns the stable attachment-download URL for a file.
func (a *API) FileDownloadURL(c *gin.Context) {
	a.fileURL(c, func(f *model.StoredFile) gin.H {
		return gin.H{"url": f.DownloadURL()}
	})
}

func (a *API) fileURL(c *gin.Context, body func(*model.StoredFile) gin.H) {
	requestID := c.MustGet("requestID").(string)

	fileID := c.Param("id")
	if fileID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No file ID provided",
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

		zap.L().Error("Failed to fetch file from db", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, body(file))
}
