package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"homeworth/server/config"
	"homeworth/server/internal/api"
	"homeworth/server/internal/auth"
	"homeworth/server/internal/cache"
	"homeworth/server/internal/catalog"
	"homeworth/server/internal/database"
	"homeworth/server/internal/fmv"
	"homeworth/server/internal/guessing"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	logger.Infof("Using database at: %s", cfg.Database.Path)
	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.WithError(err).Fatal("Failed to create database directory")
		}
	}
	db, err := database.NewDatabase(cfg.Database.Path, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	refs := cache.NewReferenceCache(time.Duration(cfg.Cache.ReferenceTTLMinutes)*time.Minute, logger)

	queue := catalog.NewReferenceQueue(cfg.Import.QueueSize, logger)
	importer := catalog.NewBatchImporter(db, queue, refs, catalog.ImporterConfig{
		MaxRetries: cfg.Import.MaxRetries,
		RetryDelay: time.Duration(cfg.Import.RetryDelay) * time.Second,
	}, logger)
	importer.Start()
	queue.Start()
	defer queue.Close()

	detector := fmv.OutlierDetector{
		LowerRatio: cfg.Guessing.OutlierLowerRatio,
		UpperRatio: cfg.Guessing.OutlierUpperRatio,
	}
	gate := guessing.NewGate(db, detector, time.Duration(cfg.Guessing.CooldownDays)*24*time.Hour, logger)
	aggregator := fmv.NewAggregator(db, refs, cfg.Guessing.AnchorBlendRatio, logger)

	authService := auth.NewService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenExpiryHours)*time.Hour)
	handler := api.NewHandler(db, gate, aggregator, queue, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.CORSMiddleware(cfg.Server.AllowedOrigins))

	api.SetupRoutes(router, handler, authService)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
