package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jewelscan/internal/config"
	"jewelscan/internal/handler"
	"jewelscan/internal/middleware"
	"jewelscan/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	log *zap.Logger,
	corsCfg config.CORSConfig,
	authSvc service.AuthService,
	scanH *handler.ScanHandler,
	itemH *handler.ItemHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(corsCfg.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Scanner strings are parsed statelessly; nothing here touches the ledger.
	scans := v1.Group("/scans")
	scans.POST("/parse", scanH.Parse)
	scans.POST("/parse-batch", scanH.ParseBatch)
	scans.POST("/import", scanH.Import)
	scans.POST("/revalidate", scanH.Revalidate)
	scans.POST("/export", scanH.Export)

	// Ledger routes - require a valid operator JWT
	items := v1.Group("/items")
	items.Use(middleware.AuthMiddleware(authSvc))
	items.POST("", itemH.Confirm)
	items.GET("", itemH.List)
	items.GET("/export", itemH.Export)
	items.GET("/:code", itemH.GetByCode)

	return r
}
