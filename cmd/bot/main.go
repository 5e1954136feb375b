package main

import (
	"context"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"universal-shop-backend/internal/bot"
	"universal-shop-backend/internal/common/cache"
	"universal-shop-backend/internal/common/config"
	"universal-shop-backend/internal/common/logger"
	catalogRepo "universal-shop-backend/internal/features/catalog/repository/postgres"
	catalogService "universal-shop-backend/internal/features/catalog/service"
	orderRepo "universal-shop-backend/internal/features/order/repository/postgres"
	orderService "universal-shop-backend/internal/features/order/service"
	userRepo "universal-shop-backend/internal/features/user/repository/postgres"
	userService "universal-shop-backend/internal/features/user/service"
	"universal-shop-backend/internal/notifications"
	"universal-shop-backend/internal/payments"
	"universal-shop-backend/internal/platform/postgres"
	"universal-shop-backend/internal/platform/redis"
)

func main() {
	cfg := config.Load()

	logger.Init("universal-shop-bot", cfg.Debug)
	logger.Info().Bool("debug", cfg.Debug).Msg("starting universal shop bot")

	postgresClient, err := postgres.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer postgresClient.Close()

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	cacheService := cache.NewCacheService(redisClient)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create telegram bot client")
	}
	api.Debug = cfg.Telegram.Debug
	notifier := notifications.NewService(api, cfg.Telegram.OrderGroupID)

	paymentsBuilder, err := payments.NewBuilder(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid payment configuration")
	}

	userRepository := userRepo.NewPostgresRepository(postgresClient.GetDB())
	catalogRepository := catalogRepo.NewPostgresRepository(postgresClient.GetDB())
	orderRepository := orderRepo.NewPostgresRepository(postgresClient.GetDB())

	userSvc := userService.NewUserService(userRepository, cfg.IsAdmin)
	catalogSvc := catalogService.NewCatalogService(catalogRepository, cacheService)
	orderSvc := orderService.NewOrderService(orderRepository, catalogSvc, paymentsBuilder, notifier)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot.New(api, userSvc, orderSvc, notifier, cfg).Run(ctx)

	logger.Info().Msg("bot exited")
}
