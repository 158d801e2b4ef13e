package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/soporte-insights/backend/internal/ai"
	"github.com/soporte-insights/backend/internal/config"
	"github.com/soporte-insights/backend/internal/dataset"
	"github.com/soporte-insights/backend/internal/http/handlers"
	"github.com/soporte-insights/backend/internal/http/middleware"
	"github.com/soporte-insights/backend/internal/normalize"

	_ "github.com/soporte-insights/backend/docs"
)

func Router(cfg config.Config, store *dataset.Store, assistant ai.Assistant, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	delimiter := ';'
	if cfg.CSVDelimiter != "" {
		delimiter = rune(cfg.CSVDelimiter[0])
	}

	h := &handlers.Handler{
		Store:     store,
		Assistant: assistant,
		Validator: validator.New(),
		Logger:    logger,
		Tables:    normalize.DefaultTables(),
		Delimiter: delimiter,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.POST("/datasets", h.Upload)
		api.GET("/datasets/latest", h.DatasetInfo)
		api.GET("/datasets/:id", h.DatasetInfo)
		api.GET("/datasets/:id/filters", h.Filters)
		api.GET("/datasets/:id/analytics", h.Analytics)
		api.GET("/datasets/:id/summary", h.Summary)
		api.GET("/datasets/:id/temporal", h.Temporal)
		api.GET("/datasets/:id/classification", h.Classification)
		api.GET("/datasets/:id/efficiency", h.Efficiency)
		api.GET("/datasets/:id/text", h.Text)
		api.GET("/datasets/:id/correlation", h.Correlation)
		api.POST("/datasets/:id/insights", h.Insights)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.DELETE("/datasets/:id", h.DatasetDelete)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
