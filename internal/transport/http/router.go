package httptransport

import (
	"time"

	gincors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"moversmove/backend/internal/config"
	"moversmove/backend/internal/health"
	"moversmove/backend/internal/middleware"
	"moversmove/backend/internal/monitoring"
	"moversmove/backend/internal/service"
)

// RouterDependencies holds everything the router needs wired in.
type RouterDependencies struct {
	Config            *config.Config
	SubmissionService *service.SubmissionService
	HealthChecker     *health.Checker
	Logger            *zap.Logger
}

// NewRouter creates the Gin engine with the full middleware stack and routes.
func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.BodySizeLimit(middleware.DefaultBodyLimit))
	// Coarse global backstop; the per-client quota is enforced inside the
	// pipeline.
	router.Use(middleware.Throttle(rate.Limit(50), 100))

	corsConfig := gincors.Config{
		AllowOrigins:     deps.Config.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, origin := range corsConfig.AllowOrigins {
		if origin == "*" {
			corsConfig.AllowCredentials = false
			break
		}
	}
	router.Use(gincors.New(corsConfig))

	handler := NewSubmissionHandler(deps.SubmissionService, deps.Logger)

	api := router.Group("/api")
	{
		api.POST("/contact", handler.Contact)
		api.POST("/quote", handler.Quote)
		api.POST("/faq-question", handler.FAQ)
	}

	router.GET("/live", gin.WrapF(deps.HealthChecker.LiveEndpoint))
	router.GET("/ready", gin.WrapF(deps.HealthChecker.ReadyEndpoint))
	router.GET("/metrics", gin.WrapH(monitoring.Handler()))

	return router
}
