package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileServe streams a file's bytes straight out of the blob store. With
// ?download=1 the response carries an attachment disposition under the
// file's original name.
func (a *API) FileServe(c *gin.Context) {
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

		zap.L().Error("Failed to check if file exists", zap.String("id", fileID), zap.Error(err))
		return
	}

	rc, err := a.Blobs.Open(c.Request.Context(), file.StoragePath)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open blob", zap.String("path", file.StoragePath), zap.Error(err))
		return
	}
	defer rc.Close()

	download, _ := strconv.ParseBool(c.DefaultQuery("download", "0"))

	headers := map[string]string{}
	if download {
		headers["Content-Disposition"] = fmt.Sprintf("attachment; filename=%q", file.OriginalName)
	}

	c.DataFromReader(http.StatusOK, file.Size, file.Format, rc, headers)
}
