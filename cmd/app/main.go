package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"universal-shop-backend/internal/common/cache"
	"universal-shop-backend/internal/common/config"
	"universal-shop-backend/internal/common/logger"
	"universal-shop-backend/internal/common/middleware"
	cataloghttp "universal-shop-backend/internal/features/catalog/delivery/http"
	catalogRepo "universal-shop-backend/internal/features/catalog/repository/postgres"
	catalogService "universal-shop-backend/internal/features/catalog/service"
	orderhttp "universal-shop-backend/internal/features/order/delivery/http"
	orderRepo "universal-shop-backend/internal/features/order/repository/postgres"
	orderService "universal-shop-backend/internal/features/order/service"
	userhttp "universal-shop-backend/internal/features/user/delivery/http"
	userRepo "universal-shop-backend/internal/features/user/repository/postgres"
	userService "universal-shop-backend/internal/features/user/service"
	viewhttp "universal-shop-backend/internal/features/viewhistory/delivery/http"
	viewRepo "universal-shop-backend/internal/features/viewhistory/repository/postgres"
	viewService "universal-shop-backend/internal/features/viewhistory/service"
	"universal-shop-backend/internal/notifications"
	"universal-shop-backend/internal/payments"
	"universal-shop-backend/internal/platform/postgres"
	"universal-shop-backend/internal/platform/redis"
)

// @title           Universal Shop API
// @version         1.0
// @description     API server for a Telegram Mini App storefront. All /api endpoints require init_data authentication.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey TelegramInitData
// @in header
// @name init_data
// @description Telegram Mini App init_data string for authentication

func main() {
	cfg := config.Load()

	logger.Init("universal-shop-backend", cfg.Debug)
	logger.Info().Bool("debug", cfg.Debug).Msg("starting universal shop backend")

	postgresClient, err := postgres.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer postgresClient.Close()
	logger.Info().Msg("database connection established")

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	cacheService := cache.NewCacheService(redisClient)

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create telegram bot client")
	}
	bot.Debug = cfg.Telegram.Debug
	notifier := notifications.NewService(bot, cfg.Telegram.OrderGroupID)

	paymentsBuilder, err := payments.NewBuilder(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid payment configuration")
	}

	userRepository := userRepo.NewPostgresRepository(postgresClient.GetDB())
	catalogRepository := catalogRepo.NewPostgresRepository(postgresClient.GetDB())
	viewRepository := viewRepo.NewPostgresRepository(postgresClient.GetDB())
	orderRepository := orderRepo.NewPostgresRepository(postgresClient.GetDB())

	userSvc := userService.NewUserService(userRepository, cfg.IsAdmin)
	catalogSvc := catalogService.NewCatalogService(catalogRepository, cacheService)
	viewSvc := viewService.NewViewHistoryService(viewRepository, catalogSvc)
	orderSvc := orderService.NewOrderService(orderRepository, catalogSvc, paymentsBuilder, notifier)

	logger.Info().Msg("services initialized")

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "init_data"}
	router.Use(cors.New(corsConfig))

	userHandler := userhttp.NewUserHandler(userSvc, cfg)
	catalogHandler := cataloghttp.NewCatalogHandler(catalogSvc, viewSvc, cfg)
	viewHandler := viewhttp.NewViewHistoryHandler(viewSvc)
	orderHandler := orderhttp.NewOrderHandler(orderSvc, notifier, cfg)

	// Webhooks authenticate by their own means, not init data.
	webhooks := router.Group("/api")
	orderHandler.RegisterWebhooks(webhooks)

	api := router.Group("/api")
	api.Use(middleware.TelegramInitDataMiddleware(cfg))
	api.Use(middleware.AutoCreateUser(userSvc))
	{
		userHandler.RegisterRoutes(api)
		catalogHandler.RegisterRoutes(api)
		viewHandler.RegisterRoutes(api)
		orderHandler.RegisterRoutes(api)
	}

	registerProbes(router, postgresClient, redisClient)

	logger.Info().Msg("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}

func registerProbes(router *gin.Engine, postgresClient *postgres.Client, redisClient *redis.Client) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "universal-shop-backend",
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := postgresClient.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "database"})
			return
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "redis"})
			return
		}
		c.Status(http.StatusOK)
	})
}
