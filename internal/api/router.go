package api

import (
	"github.com/dt-hbtn/chordgen-api/internal/api/handlers"
	apimiddleware "github.com/dt-hbtn/chordgen-api/internal/api/middleware"
	"github.com/dt-hbtn/chordgen-api/internal/config"
	"github.com/dt-hbtn/chordgen-api/internal/metrics"
	"github.com/dt-hbtn/chordgen-api/internal/middleware"
	"github.com/dt-hbtn/chordgen-api/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps are the long-lived clients the routes share.
// DB and CloudWatch may be nil.
type Deps struct {
	DB            *gorm.DB
	Credentials   services.CredentialStore
	SentryMetrics *metrics.SentryMetrics
	CloudWatch    *metrics.Client
}

func SetupRouter(cfg *config.Config, deps Deps, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(deps.SentryMetrics, deps.CloudWatch))

	// Health check
	healthHandler := handlers.NewHealthHandler(deps.DB)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	auth := authMiddleware(cfg, deps.Credentials)

	// Token exchange only makes sense with real credentials
	if cfg.TokensEnabled() && !cfg.IsAuthDisabled() {
		tokenHandler := handlers.NewTokenHandler(cfg)
		router.POST("/api/token", auth, tokenHandler.Issue)
	}

	chordService := services.NewChordService(deps.SentryMetrics, deps.CloudWatch)
	chordHandler := handlers.NewChordHandler(cfg, chordService)

	api := router.Group("/api")
	api.Use(auth)
	{
		api.GET("/status", chordHandler.Status)
		api.POST("/generate", chordHandler.Generate)
		api.POST("/generate/midi", chordHandler.MIDI)
		api.GET("/qualities", chordHandler.Qualities)
	}

	return router
}

func authMiddleware(cfg *config.Config, store services.CredentialStore) gin.HandlerFunc {
	if cfg.IsAuthDisabled() {
		return apimiddleware.NoAuth()
	}
	return middleware.Authenticate(store, cfg)
}
