package main

import (
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/perfectpick/giftrank/pkg/giftrank/catalog"
	"github.com/perfectpick/giftrank/pkg/giftrank/collections"
	"github.com/perfectpick/giftrank/pkg/giftrank/config"
	"github.com/perfectpick/giftrank/pkg/giftrank/database"
	"github.com/perfectpick/giftrank/pkg/giftrank/geo"
	"github.com/perfectpick/giftrank/pkg/giftrank/gifts"
	"github.com/perfectpick/giftrank/pkg/giftrank/models"
)

func main() {
	cfg, err := config.Load(os.Getenv("GIFTRANK_CONFIG"))
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.App.LogLevel)
	slog.SetDefault(logger)

	// Connect to database
	if err := database.Connect(cfg.DB.Path); err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("Database migrations completed")

	// Optional redis cache for geo lookups
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		logger.Info("Geo cache enabled", "addr", cfg.Redis.Addr)
	}

	resolver := geo.NewIPAPIResolver(geo.Options{
		Endpoint: cfg.Geo.Endpoint,
		Timeout:  cfg.Geo.Timeout,
		CacheTTL: cfg.Geo.CacheTTL,
		Redis:    rdb,
		Logger:   logger,
	})

	// Set up Gin router
	r := gin.Default()

	// The storefront is served from another origin
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"POST", "GET", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api")
	{
		giftsHandler := gifts.NewHandler(database.GetDB(), resolver,
			catalog.WithWindow(cfg.Search.WindowFactor, cfg.Search.WindowMin))
		giftsHandler.RegisterRoutes(api)

		collectionsHandler := collections.NewHandler(database.GetDB())
		collectionsHandler.RegisterRoutes(api)
	}

	logger.Info("Starting giftrank server", "addr", cfg.App.HTTPAddr)
	if err := r.Run(cfg.App.HTTPAddr); err != nil {
		logger.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
