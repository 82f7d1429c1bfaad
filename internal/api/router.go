package api

import (
	v1 "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/api/v1"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/config"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/logger"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/rest/middleware"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/sentry"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	BillingPreview *v1.BillingPreviewHandler
	Facility       *v1.FacilityHandler
	Health         *v1.HealthHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger, sentrySvc *sentry.Service) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.RequestLogger(logger),
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.ErrorHandler(logger, sentrySvc),
	)

	router.GET("/health", handlers.Health.Health)

	// v1 routes are scoped to the company in the request headers
	v1Group := router.Group("/v1")
	v1Group.Use(
		middleware.CompanyContextMiddleware,
		middleware.SentryScopeMiddleware(cfg),
	)
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	clients := router.Group("/clients/:client_id")
	{
		clients.GET("/billing-preview", handlers.BillingPreview.GetBillingPreview)
		clients.GET("/billing-preview/export", handlers.BillingPreview.ExportCSV)
		clients.GET("/billing-preview/export-qb", handlers.BillingPreview.ExportQuickBooksCSV)
	}

	facilities := router.Group("/facilities/:facility_id")
	{
		facilities.GET("", handlers.Facility.GetFacility)
		facilities.PUT("/overrides/:year/:month", handlers.Facility.UpsertMonthlyOverride)
		facilities.DELETE("/overrides/:year/:month", handlers.Facility.DeleteMonthlyOverride)
		facilities.POST("/seasonal-rules", handlers.Facility.CreateSeasonalRule)
	}
}
