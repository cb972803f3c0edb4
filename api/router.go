// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"bitwise74/ingest-api/catalog"
	"bitwise74/ingest-api/db"
	"bitwise74/ingest-api/internal/service"
	"bitwise74/ingest-api/internal/store"
	"bitwise74/ingest-api/pkg/middleware"
	"bitwise74/ingest-api/storage"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var cacheStore = persist.NewMemoryStore(time.Minute)

type API struct {
	Router   *gin.Engine
	Store    *store.GormStore
	Blobs    storage.Store
	Uploader *service.Uploader
	Stats    *service.Stats
}

func NewRouter() (*API, error) {
	a := &API{}

	gdb, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.Store = store.NewGormStore(gdb)

	makeLogger()

	switch viper.GetString("storage.type") {
	case "s3":
		a.Blobs, err = storage.NewS3()
	default:
		a.Blobs, err = storage.NewLocal(viper.GetString("storage.local.path"))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob store, %w", err)
	}

	cat := catalog.New(
		viper.GetString("catalog.url"),
		time.Duration(viper.GetInt("catalog.timeout"))*time.Second,
	)

	a.Uploader = service.NewUploader(a.Store, a.Store, a.Blobs, cat)
	a.Stats = service.NewStats(a.Store)

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Owner-ID"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		middleware.NewOwnerMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("ownerID"); v != "" {
					fields = append(fields, zap.String("ownerID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	a.Router.MaxMultipartMemory = 8 << 20

	maxUploadSize := viper.GetInt64("upload.max_size")

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)
	}

	movies := main.Group("/movies")
	{
		// POST /api/movies		-> Ingests a movie (video + optional poster + metadata)
		movies.POST("", middleware.BodySizeLimiter(maxUploadSize+(16<<20)), a.MovieUpload)
	}

	files := main.Group("/files")
	{
		// GET /api/files/stats		-> Storage usage totals, global or per owner
		files.GET("/stats", cacheForOwner(30), a.FileStats)

		// GET /api/files/bulk		-> Pages through an owner's files
		files.GET("/bulk", a.FileFetchBulk)

		// GET /api/files/:id		-> Serves the actual bytes
		files.GET("/:id", a.FileServe)

		// GET /api/files/:id/metadata	-> Public metadata of one file
		files.GET("/:id/metadata", cacheFor(30), a.FileMetadata)

		// GET /api/files/:id/stream-url	-> Derived playback URL
		files.GET("/:id/stream-url", a.FileStreamURL)

		// GET /api/files/:id/download-url	-> Derived download URL
		files.GET("/:id/download-url", a.FileDownloadURL)

		// DELETE /api/files/:id	-> Deletes a file and its blob
		files.DELETE("/:id", a.FileDelete)
	}

	uploads := main.Group("/uploads")
	{
		// GET /api/uploads/:id		-> Status of one ingestion attempt
		uploads.GET("/:id", a.UploadFetch)

		// DELETE /api/uploads/:id	-> Audit cleanup of an attempt record
		uploads.DELETE("/:id", a.UploadDelete)
	}

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(cacheStore, time.Second*time.Duration(sec))
}

// cacheForOwner caches per owner scope. Plain URI keying would let a
// request without an owner query hit a body cached for someone else
func cacheForOwner(sec int) gin.HandlerFunc {
	return cache.Cache(cacheStore, time.Second*time.Duration(sec),
		cache.WithCacheStrategyByRequest(func(c *gin.Context) (bool, cache.Strategy) {
			return true, cache.Strategy{
				CacheKey: c.Request.RequestURI + "|owner=" + statsOwner(c),
			}
		}),
	)
}
