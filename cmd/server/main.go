package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/api"
	v1 "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/api/v1"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/cache"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/config"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/logger"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/postgres"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/repository"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/sentry"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/service"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewDB,

			// Repositories
			repository.NewCompanyRepository,
			repository.NewClientRepository,
			repository.NewFacilityRepository,
			repository.NewServiceLineItemRepository,
		),
		sentry.Module(),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewBillingPreviewService,
			service.NewFacilityService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(
			validator.NewValidator,
			closeDB,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	billingPreviewService service.BillingPreviewService,
	facilityService service.FacilityService,
) api.Handlers {
	return api.Handlers{
		BillingPreview: v1.NewBillingPreviewHandler(billingPreviewService, logger),
		Facility:       v1.NewFacilityHandler(facilityService, logger),
		Health:         v1.NewHealthHandler(logger),
	}
}

func closeDB(lc fx.Lifecycle, db *postgres.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			db.Close()
			return nil
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
	sentrySvc *sentry.Service,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log, sentrySvc)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
	sentrySvc *sentry.Service,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address, "mode", cfg.Deployment.Mode)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					sentrySvc.CaptureException(err)
					sentrySvc.Flush()
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}
