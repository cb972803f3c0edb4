package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"bitwise74/ingest-api/internal/model"
	"bitwise74/ingest-api/internal/service"
	"bitwise74/ingest-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MovieUpload accepts one multipart ingestion request: a "video" file,
// an optional "poster" file and a "metadata" JSON field. It blocks
// until the attempt is ready or failed, there's no partial outcome.
func (a *API) MovieUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	ownerID := c.MustGet("ownerID").(string)

	if !strings.HasPrefix(c.Request.Header.Get("Content-Type"), "multipart/form-data") {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request",
			"requestID": requestID,
		})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		// A body we can't parse is the client's framing problem
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed multipart body",
			"requestID": requestID,
		})

		zap.L().Warn("Failed to parse multipart form", zap.Error(err))
		return
	}

	videos := form.File["video"]
	if len(videos) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No video provided",
			"requestID": requestID,
		})
		return
	}
	videoHeader := videos[0]

	metaFields := form.Value["metadata"]
	if len(metaFields) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No metadata provided",
			"requestID": requestID,
		})
		return
	}

	var meta model.MovieMetadata
	if err := json.Unmarshal([]byte(metaFields[0]), &meta); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Metadata is not valid JSON",
			"requestID": requestID,
		})
		return
	}

	video, err := videoHeader.Open()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open video part", zap.Error(err))
		return
	}
	defer video.Close()

	in := &service.UploadInput{
		Video:     video,
		VideoName: videoHeader.Filename,
		VideoSize: videoHeader.Size,
		Meta:      meta,
		OwnerID:   ownerID,
	}

	if posters := form.File["poster"]; len(posters) > 0 {
		poster, err := posters[0].Open()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to open poster part", zap.Error(err))
			return
		}
		defer poster.Close()

		in.Poster = poster
		in.PosterName = posters[0].Filename
		in.PosterSize = posters[0].Size
	}

	res, err := a.Uploader.Do(c.Request.Context(), in)
	if err != nil {
		if validators.IsValidationError(err) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Ingestion failed", zap.String("owner", ownerID), zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, res)
}
