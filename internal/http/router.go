package http

import (
	"log/slog"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go.ngs.io/suntimes-api/internal/metrics"
	"go.ngs.io/suntimes-api/internal/usecase"
)

// SetupRouter creates and configures the Gin router.
func SetupRouter(sunTimesUC *usecase.SunTimesUseCase, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(metrics.Middleware())

	// Setup CORS middleware.
	corsConfig := cors.DefaultConfig()

	// Default to allow all origins if not specified.
	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if allowedOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}

	router.Use(cors.New(corsConfig))

	handler := NewHandler(sunTimesUC, logger)

	// API v1 routes.
	v1 := router.Group("/v1")
	sun := v1.Group("/sun")
	sun.GET("/times", handler.GetSunTimes)
	sun.GET("/daylength", handler.GetDayLength)

	v1.GET("/places", handler.GetPlaces)

	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return router
}
