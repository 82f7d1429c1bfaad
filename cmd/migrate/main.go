package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/config"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/logger"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/postgres"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/sentry"
)

func main() {
	// Parse command line flags
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	timeout := flag.Duration("timeout", 5*time.Minute, "Maximum time the migration may take")
	flag.Parse()

	if *dryRun {
		fmt.Println(postgres.Schema)
		return
	}

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := postgres.NewDB(cfg, logger, sentry.NewSentryService(cfg, logger))
	if err != nil {
		logger.Fatalw("failed connecting to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	logger.Infow("applying schema",
		"host", cfg.Postgres.Host,
		"dbname", cfg.Postgres.DBName,
	)
	if err := db.ApplySchema(ctx); err != nil {
		logger.Fatalw("failed to apply schema", "error", err)
	}

	logger.Info("schema applied")
}
