package main

import (
	"inventory_manager/internal/config"
	"inventory_manager/internal/database"
	"inventory_manager/internal/handlers"
	"inventory_manager/internal/logger"
	"inventory_manager/internal/redis"
	"inventory_manager/internal/repository"
	"inventory_manager/internal/services"
	"inventory_manager/pkg/notify"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Initialize(cfg.Environment)
	defer logger.Log.Sync()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		logger.Log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Low-stock alert webhook (disabled when no URL is configured)
	notifier := notify.NewClient(cfg.NotifyWebhookURL, cfg.NotifyToken)

	// Initialize repositories
	itemRepo := repository.NewItemRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	costRepo := repository.NewCostRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	apiKeyRepo := repository.NewAPIKeyRepository(db)
	txManager := repository.NewTxManager(db)

	// Initialize services
	authService := services.NewAuthService(apiKeyRepo, redisClient, cfg.SessionTimeout)
	inventoryService := services.NewInventoryService(itemRepo, orderRepo, txManager, notifier, cfg.LowStockThreshold)
	orderService := services.NewOrderService(orderRepo, itemRepo, txManager, notifier, cfg.LowStockThreshold)
	costService := services.NewCostService(costRepo)
	categoryService := services.NewCategoryService(categoryRepo, itemRepo, txManager)
	reportService := services.NewReportService(orderRepo)
	snapshotService := services.NewSnapshotService(inventoryService, orderService, costService, categoryService, activityRepo)

	// Initialize handlers
	apiHandler := handlers.NewAPIHandler(
		authService,
		inventoryService,
		orderService,
		costService,
		categoryService,
		reportService,
		snapshotService,
		activityRepo,
	)

	// Setup routes
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(logger.RequestLogger(), gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/api/data", apiHandler.GetData)
	router.POST("/api/data", apiHandler.PostCommand)

	// Start server
	logger.Log.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Log.Fatal("Failed to start server", zap.Error(err))
	}
}
