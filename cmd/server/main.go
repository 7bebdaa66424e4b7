package main

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"propscout/server/config"
	"propscout/server/internal/analysis"
	"propscout/server/internal/api"
	"propscout/server/internal/database"
	"propscout/server/internal/notify"
	"propscout/server/internal/processor"
	"propscout/server/internal/queue"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	currentDir, err := os.Getwd()
	if err != nil {
		logger.WithError(err).Fatal("Failed to get current directory")
	}

	dbPath := filepath.Join(currentDir, "database", "propscout.db")
	logger.Infof("Using database at: %s", dbPath)

	db, err := database.NewDatabase(dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	if err := db.SeedSampleProperties(); err != nil {
		logger.WithError(err).Error("Failed to seed sample properties")
	}

	markets := config.NewMarketIndex()
	if cfg.Analysis.MarketProfilePath != "" {
		if err := markets.LoadMarketProfiles(cfg.Analysis.MarketProfilePath); err != nil {
			logger.WithError(err).Fatal("Failed to load market profiles")
		}
	}

	pipeline := analysis.NewPipeline(markets, cfg.Assumptions,
		cfg.Analysis.ReferenceYear, cfg.Analysis.WorkerCount, logger)

	ingestQueue := queue.NewIngestQueue(cfg.Ingestion.QueueSize, logger)
	batchProcessor := processor.NewBatchProcessor(db, ingestQueue, cfg, logger)
	batchProcessor.Start()
	defer batchProcessor.Stop()

	notifier := notify.NewService(cfg.Notify.BotToken, cfg.Notify.ChatID, logger)

	handler := api.NewHandler(db, pipeline, markets, ingestQueue, notifier, logger)

	router := gin.Default()
	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
