package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/checkin/internal/server/http/handlers"
	"github.com/polkiloo/checkin/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StatusFacade, verifier middleware.TokenVerifier, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	status := handlers.NewStatusHandler(facade)
	engine.GET("/healthz", status.Health)

	api := engine.Group("/api")
	api.Use(middleware.TokenRequired(verifier))
	api.GET("/report", status.Report)
	api.POST("/runs", status.Trigger)

	return engine
}
