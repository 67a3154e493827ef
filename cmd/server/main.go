package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dashboard-service/internal/achievement"
	"dashboard-service/internal/adapters/kafka"
	"dashboard-service/internal/adapters/storage"
	"dashboard-service/internal/api/handlers"
	"dashboard-service/internal/api/middleware"
	"dashboard-service/internal/api/routes"
	"dashboard-service/internal/config"
	"dashboard-service/internal/events"
	"dashboard-service/internal/leaderboard"
	"dashboard-service/internal/market"
	"dashboard-service/internal/realtime"
	"dashboard-service/internal/reward"
	"dashboard-service/internal/task"
	"dashboard-service/internal/user"

	"github.com/gin-gonic/gin"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Event fan-out to Kafka is optional; without it the emitter only
	// serves WebSocket clients.
	var publisher events.Publisher
	var producer *kafka.EventProducer
	if cfg.Kafka.Enabled {
		syncProducer, err := kafka.InitKafkaProducer(cfg.Kafka.Brokers)
		if err != nil {
			logger.Error("failed to connect to kafka", "brokers", cfg.Kafka.Brokers, "error", err)
			os.Exit(1)
		}
		producer = kafka.NewEventProducer(syncProducer, cfg.Kafka.Topic)
		publisher = producer
		logger.Info("kafka producer connected", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}

	var uploads *storage.MinIOClient
	if cfg.MinIO.Enabled {
		uploads, err = storage.NewMinIOClient(cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, cfg.MinIO.Bucket)
		if err != nil {
			logger.Error("failed to connect to minio", "endpoint", cfg.MinIO.Endpoint, "error", err)
			os.Exit(1)
		}
		logger.Info("minio client connected", "endpoint", cfg.MinIO.Endpoint, "bucket", cfg.MinIO.Bucket)
	}

	hub := realtime.NewHub(cfg.Realtime.HeartbeatInterval, logger)
	emitter := events.NewEmitter(hub, publisher, logger)

	userRepo := user.NewUserRepository()
	marketRepo := market.NewMarketRepository()
	predictionRepo := market.NewPredictionRepository()
	taskRepo := task.NewTaskRepository()
	userTaskRepo := task.NewUserTaskRepository()
	rewardRepo := reward.NewRewardRepository()
	achievementRepo := achievement.NewAchievementRepository()

	userService := user.NewUserService(userRepo, emitter, cfg.JWT.Secret, cfg.JWT.ExpirationTime)
	marketService := market.NewMarketService(marketRepo, predictionRepo, userRepo, emitter)
	leaderboardService := leaderboard.NewService(userRepo, emitter, logger)
	taskService := task.NewTaskService(taskRepo, userTaskRepo, userRepo, rewardRepo, leaderboardService, emitter, logger)
	achievementService := achievement.NewAchievementService(achievementRepo)

	scheduler, err := leaderboardService.StartWeeklyReset()
	if err != nil {
		logger.Error("failed to start weekly reset scheduler", "error", err)
		os.Exit(1)
	}

	wsRouter := realtime.NewRouter(hub, userService, logger)
	wsRouter.RegisterSnapshot(realtime.RoomLeaderboard, leaderboardService.Snapshot)
	wsRouter.RegisterSnapshot(realtime.RoomMarkets, marketService.Snapshot)
	wsRouter.RegisterSnapshot(realtime.RoomTasks, taskService.Snapshot)

	wsHandler := handlers.NewWSHandler(hub, wsRouter, userService, logger)
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	rateLimiter := middleware.NewRateLimitMiddleware()

	router := routes.NewRouter(
		user.NewUserHandler(userService, uploads),
		market.NewMarketHandler(marketService),
		task.NewTaskHandler(taskService),
		achievement.NewAchievementHandler(achievementService),
		reward.NewRewardHandler(rewardRepo),
		leaderboard.NewLeaderboardHandler(leaderboardService),
		wsHandler,
		authMiddleware,
		rateLimiter,
	)

	engine := gin.New()
	engine.Use(gin.Recovery())
	router.SetupRoutes(engine)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := scheduler.Shutdown(); err != nil {
		logger.Error("scheduler shutdown error", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka producer close error", "error", err)
		}
	}
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}
