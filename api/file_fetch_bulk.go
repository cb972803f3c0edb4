package api

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AZ = A - Z as in alphabetic same for ZA
var validSortOpts = []string{"newest", "oldest", "az", "za", "size-asc", "size-desc"}

func (a *API) FileFetchBulk(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	ownerID := c.MustGet("ownerID").(string)

	pageStr := c.DefaultQuery("page", "0")
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Page is not a valid integer",
			"requestID": requestID,
		})
		return
	}

	if page < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Page can't be negative",
			"requestID": requestID,
		})
		return
	}

	limitStr := c.DefaultQuery("limit", "20")
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Limit is not a valid integer",
			"requestID": requestID,
		})
		return
	}

	if limit <= 0 || limit > 100 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Limit must be between 1 and 100",
			"requestID": requestID,
		})
		return
	}

	sort := strings.ToLower(c.DefaultQuery("sort", "newest"))
	if !slices.Contains(validSortOpts, sort) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid sorting option",
			"requestID": requestID,
		})
		return
	}

	order := ""

	switch sort {
	case "newest":
		order = "uploaded_at desc"
	case "oldest":
		order = "uploaded_at asc"
	case "az":
		order = "original_name"
	case "za":
		order = "original_name desc"
	case "size-asc":
		order = "size asc"
	case "size-desc":
		order = "size desc"
	}

	entries, err := a.Store.ListFilesByOwner(c.Request.Context(), ownerID, page*limit, limit, order)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to lookup owner files", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, entries)
}
